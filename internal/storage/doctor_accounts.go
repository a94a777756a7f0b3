package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// CreateDoctorAccount в одной транзакции создает учетную запись персонала и
// привязанную к ней карточку врача.
func (s *Storage) CreateDoctorAccount(ctx context.Context, a models.Account, specialty string) (*models.Account, error) {
	const op = "storage.CreateDoctorAccount"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var created *models.Account
	err := s.withTx(ctx, func(tx dbtx) error {
		row := tx.QueryRowContext(ctx,
			`INSERT INTO users (username, email, password_hash, full_name, role,
			     student_id, institution, program, phone)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING `+accountColumns,
			a.Username, a.Email, a.PasswordHash, a.FullName, a.Role,
			nullString(a.StudentID), nullString(a.Institution), nullString(a.Program), nullString(a.Phone))
		acc, err := scanAccount(row)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO doctors (name, specialty, email, phone, avatar_initials, account_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			acc.FullName, specialty, acc.Email, a.Phone, initials(acc.FullName), acc.ID); err != nil {
			return err
		}
		created = acc
		return nil
	})
	if err != nil {
		return nil, mapError(op, err, apperr.ErrDuplicateAccount)
	}
	return created, nil
}

// GetDoctorByAccount возвращает карточку врача, привязанную к учетной записи.
func (s *Storage) GetDoctorByAccount(ctx context.Context, accountID string) (*models.Doctor, error) {
	const op = "storage.GetDoctorByAccount"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	d, err := scanDoctor(s.DB.QueryRowContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE account_id = $1`, accountID))
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return d, nil
}

// ListDoctorAppointments возвращает предстоящие приемы врача: только на дату
// from при onlyDate, иначе начиная с from.
func (s *Storage) ListDoctorAppointments(ctx context.Context, doctorID int64, from time.Time, onlyDate bool) ([]models.DoctorAppointment, error) {
	const op = "storage.ListDoctorAppointments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	dateCond := `a.appointment_date >= $2`
	if onlyDate {
		dateCond = `a.appointment_date = $2`
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT a.id, COALESCE(NULLIF(u.full_name, ''), 'Unknown'), COALESCE(u.student_id, 'N/A'),
		     a.appointment_date, a.time_slot, a.appointment_type, a.status, a.notes
		 FROM appointments a
		 JOIN users u ON u.id = a.owner_id
		 WHERE a.doctor_id = $1 AND a.status = 'upcoming' AND `+dateCond+`
		 ORDER BY a.appointment_date, a.id`, doctorID, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.DoctorAppointment, 0)
	for rows.Next() {
		var (
			d    models.DoctorAppointment
			date time.Time
		)
		if err := rows.Scan(&d.ID, &d.PatientName, &d.PatientID, &date,
			&d.TimeSlot, &d.Type, &d.Status, &d.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		d.Date = date.Format(models.DateLayout)
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// initials первые буквы двух первых слов имени, например "SC" для "Sarah Chen".
func initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) >= 2 {
		a := []rune(parts[0])
		b := []rune(parts[1])
		return strings.ToUpper(string(a[0]) + string(b[0]))
	}
	r := []rune(strings.TrimSpace(name))
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.Map(unicode.ToUpper, string(r))
}
