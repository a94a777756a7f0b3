package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/careconnect/internal/models"
)

// ListVisits возвращает визиты владельца, последние сначала. Пустой status
// не фильтрует по статусу, limit <= 0 снимает ограничение.
func (s *Storage) ListVisits(ctx context.Context, ownerID, status string, limit int) ([]models.Visit, error) {
	const op = "storage.ListVisits"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var lim sql.NullInt64
	if limit > 0 {
		lim = sql.NullInt64{Int64: int64(limit), Valid: true}
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT v.id, v.owner_id, v.doctor_id, d.name, v.appointment_id, v.visit_date,
		     v.time_slot, v.visit_type, v.diagnosis, v.location, v.notes, v.status, v.created_at
		 FROM visits v
		 JOIN doctors d ON d.id = v.doctor_id
		 WHERE v.owner_id = $1 AND ($2::text = '' OR v.status = $2::text)
		 ORDER BY v.visit_date DESC, v.id DESC
		 LIMIT $3`, ownerID, status, lim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Visit, 0)
	for rows.Next() {
		var (
			v             models.Visit
			appointmentID sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.DoctorID, &v.DoctorName, &appointmentID, &v.VisitDate,
			&v.TimeSlot, &v.VisitType, &v.Diagnosis, &v.Location, &v.Notes, &v.Status, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if appointmentID.Valid {
			v.AppointmentID = &appointmentID.Int64
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
