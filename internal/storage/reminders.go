package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/models"
)

// ListRemindersOn возвращает предстоящие записи активных пользователей на дату date.
func (s *Storage) ListRemindersOn(ctx context.Context, date time.Time) ([]models.AppointmentReminder, error) {
	const op = "storage.ListRemindersOn"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT a.id, a.owner_id, u.username, u.email, u.full_name, d.name,
		     a.appointment_date, a.time_slot, a.location
		 FROM appointments a
		 JOIN users u ON u.id = a.owner_id
		 JOIN doctors d ON d.id = a.doctor_id
		 WHERE a.appointment_date = $1 AND a.status = 'upcoming' AND u.is_active
		 ORDER BY a.time_slot, a.id`, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.AppointmentReminder, 0)
	for rows.Next() {
		var (
			r   models.AppointmentReminder
			day time.Time
		)
		if err := rows.Scan(&r.AppointmentID, &r.AccountID, &r.Username, &r.Email, &r.FullName,
			&r.DoctorName, &day, &r.TimeSlot, &r.Location); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.Date = day.Format(models.DateLayout)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
