package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

const appointmentSelect = `SELECT a.id, a.owner_id, a.doctor_id, d.name, d.specialty,
	a.appointment_date, a.time_slot, a.appointment_type, a.location, a.status, a.notes,
	a.created_at, a.updated_at
	FROM appointments a
	JOIN doctors d ON d.id = a.doctor_id`

func scanAppointment(row rowScanner) (*models.Appointment, error) {
	var a models.Appointment
	if err := row.Scan(&a.ID, &a.OwnerID, &a.DoctorID, &a.DoctorName, &a.Specialty,
		&a.Date, &a.TimeSlot, &a.Type, &a.Location, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Storage) queryAppointments(ctx context.Context, op, query string, args ...any) ([]models.Appointment, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateAppointment сохраняет запись к врачу. Занятый слот дает apperr.ErrConflict.
func (s *Storage) CreateAppointment(ctx context.Context, a models.Appointment) (*models.Appointment, error) {
	const op = "storage.CreateAppointment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var id int64
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO appointments (owner_id, doctor_id, appointment_date, time_slot,
		     appointment_type, location, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		a.OwnerID, a.DoctorID, a.Date, a.TimeSlot, a.Type, a.Location, a.Status, a.Notes).Scan(&id)
	if err != nil {
		return nil, mapError(op, err, apperr.ErrConflict)
	}
	return s.GetAppointment(ctx, id)
}

// GetAppointment возвращает запись по идентификатору.
func (s *Storage) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	const op = "storage.GetAppointment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	a, err := scanAppointment(s.DB.QueryRowContext(ctx, appointmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return a, nil
}

// ListAppointments возвращает записи владельца, новые сначала.
// Пустой ownerID возвращает записи всех пользователей.
func (s *Storage) ListAppointments(ctx context.Context, ownerID string) ([]models.Appointment, error) {
	const op = "storage.ListAppointments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	return s.queryAppointments(ctx, op,
		appointmentSelect+` WHERE ($1 = '' OR a.owner_id::text = $1)
		 ORDER BY a.appointment_date DESC, a.id DESC`, ownerID)
}

// ListUpcomingAppointments возвращает неотмененные и незавершенные записи начиная с даты from.
func (s *Storage) ListUpcomingAppointments(ctx context.Context, ownerID string, from time.Time) ([]models.Appointment, error) {
	const op = "storage.ListUpcomingAppointments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	return s.queryAppointments(ctx, op,
		appointmentSelect+` WHERE a.owner_id = $1 AND a.status = 'upcoming' AND a.appointment_date >= $2
		 ORDER BY a.appointment_date, a.id`, ownerID, from)
}

// RescheduleAppointment переносит запись, если она еще в статусе upcoming.
func (s *Storage) RescheduleAppointment(ctx context.Context, id int64, date time.Time, slot string) (*models.Appointment, error) {
	const op = "storage.RescheduleAppointment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE appointments
		 SET appointment_date = $2, time_slot = $3, updated_at = NOW()
		 WHERE id = $1 AND status = 'upcoming'`,
		id, date, slot)
	if err != nil {
		return nil, mapError(op, err, apperr.ErrConflict)
	}
	if err := expectAffected(op, res, apperr.ErrConflict); err != nil {
		return nil, err
	}
	return s.GetAppointment(ctx, id)
}

// CancelAppointment отменяет запись. Повторная или конкурентная отмена дает apperr.ErrConflict.
func (s *Storage) CancelAppointment(ctx context.Context, id int64) error {
	const op = "storage.CancelAppointment"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE appointments SET status = 'cancelled', updated_at = NOW()
		 WHERE id = $1 AND status <> 'cancelled'`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(op, res, apperr.ErrConflict)
}

// CompleteAppointment закрывает прием и создает визит в одной транзакции.
func (s *Storage) CompleteAppointment(ctx context.Context, id int64, v models.Visit) (*models.Visit, error) {
	const op = "storage.CompleteAppointment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx dbtx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE appointments SET status = 'completed', updated_at = NOW()
			 WHERE id = $1 AND status = 'upcoming'`, id)
		if err != nil {
			return err
		}
		if err := expectAffected(op, res, apperr.ErrConflict); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx,
			`INSERT INTO visits (owner_id, doctor_id, appointment_id, visit_date, time_slot,
			     visit_type, diagnosis, location, notes, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING id, created_at`,
			v.OwnerID, v.DoctorID, id, v.VisitDate, v.TimeSlot,
			v.VisitType, v.Diagnosis, v.Location, v.Notes, v.Status).Scan(&v.ID, &v.CreatedAt)
	})
	if err != nil {
		return nil, mapError(op, err, apperr.ErrConflict)
	}
	v.AppointmentID = &id
	return &v, nil
}
