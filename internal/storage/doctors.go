package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/models"
)

const doctorColumns = `id, name, specialty, email, phone, rating, reviews_count, avatar_initials, is_available`

func scanDoctor(row rowScanner) (*models.Doctor, error) {
	var d models.Doctor
	if err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.Email, &d.Phone,
		&d.Rating, &d.ReviewsCount, &d.AvatarInitials, &d.IsAvailable); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListAvailableDoctors возвращает врачей, которые принимают пациентов.
func (s *Storage) ListAvailableDoctors(ctx context.Context) ([]models.Doctor, error) {
	const op = "storage.ListAvailableDoctors"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE is_available ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetDoctor возвращает врача по идентификатору.
func (s *Storage) GetDoctor(ctx context.Context, id int64) (*models.Doctor, error) {
	const op = "storage.GetDoctor"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	d, err := scanDoctor(s.DB.QueryRowContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return d, nil
}

// BookedSlots возвращает занятые слоты врача на дату.
func (s *Storage) BookedSlots(ctx context.Context, doctorID int64, date time.Time) ([]string, error) {
	const op = "storage.BookedSlots"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT time_slot FROM appointments
		 WHERE doctor_id = $1 AND appointment_date = $2 AND status <> 'cancelled'`,
		doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slots, nil
}
