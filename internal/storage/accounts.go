package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

const accountColumns = `id, username, email, password_hash, full_name, role,
	COALESCE(student_id, ''), COALESCE(institution, ''), COALESCE(program, ''),
	COALESCE(phone, ''), date_of_birth, COALESCE(gender, ''), is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a   models.Account
		dob sql.NullTime
	)
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.FullName, &a.Role,
		&a.StudentID, &a.Institution, &a.Program, &a.Phone, &dob, &a.Gender,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if dob.Valid {
		a.DateOfBirth = &dob.Time
	}
	return &a, nil
}

// CreateAccount сохраняет новую учетную запись. Занятые username, email или
// student_id дают apperr.ErrDuplicateAccount.
func (s *Storage) CreateAccount(ctx context.Context, a models.Account) (*models.Account, error) {
	const op = "storage.CreateAccount"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO users (username, email, password_hash, full_name, role,
			      student_id, institution, program, phone)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + accountColumns
	row := s.DB.QueryRowContext(ctx, query,
		a.Username, a.Email, a.PasswordHash, a.FullName, a.Role,
		nullString(a.StudentID), nullString(a.Institution), nullString(a.Program), nullString(a.Phone))

	created, err := scanAccount(row)
	if err != nil {
		return nil, mapError(op, err, apperr.ErrDuplicateAccount)
	}
	return created, nil
}

// GetAccountByUsername возвращает учетную запись по логину, в том числе неактивную.
func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	const op = "storage.GetAccountByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM users WHERE username = $1`
	a, err := scanAccount(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return a, nil
}

// GetAccountByID возвращает учетную запись по идентификатору.
func (s *Storage) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	const op = "storage.GetAccountByID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM users WHERE id = $1`
	a, err := scanAccount(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return a, nil
}

// UpdateProfile меняет только переданные поля профиля.
func (s *Storage) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.Account, error) {
	const op = "storage.UpdateProfile"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE users
			  SET full_name = COALESCE($2, full_name),
			      phone = COALESCE($3, phone),
			      date_of_birth = COALESCE($4, date_of_birth),
			      gender = COALESCE($5, gender),
			      institution = COALESCE($6, institution),
			      program = COALESCE($7, program),
			      updated_at = NOW()
			  WHERE id = $1 AND is_active
			  RETURNING ` + accountColumns
	row := s.DB.QueryRowContext(ctx, query, id,
		upd.FullName, upd.Phone, upd.DateOfBirth, upd.Gender, upd.Institution, upd.Program)

	a, err := scanAccount(row)
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return a, nil
}

// DeactivateAccount выключает учетную запись. Записи аккаунтов не удаляются.
func (s *Storage) DeactivateAccount(ctx context.Context, id string) error {
	const op = "storage.DeactivateAccount"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(op, res, apperr.ErrNotFound)
}

// GetEmergencyContact возвращает экстренный контакт аккаунта.
func (s *Storage) GetEmergencyContact(ctx context.Context, accountID string) (*models.EmergencyContact, error) {
	const op = "storage.GetEmergencyContact"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT name, relationship, phone, COALESCE(email, '')
			  FROM emergency_contacts WHERE account_id = $1`
	var c models.EmergencyContact
	if err := s.DB.QueryRowContext(ctx, query, accountID).
		Scan(&c.Name, &c.Relationship, &c.Phone, &c.Email); err != nil {
		return nil, mapError(op, err, nil)
	}
	return &c, nil
}

// UpsertEmergencyContact создает или заменяет экстренный контакт.
func (s *Storage) UpsertEmergencyContact(ctx context.Context, accountID string, c models.EmergencyContact) (*models.EmergencyContact, error) {
	const op = "storage.UpsertEmergencyContact"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO emergency_contacts (account_id, name, relationship, phone, email)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (account_id) DO UPDATE
			  SET name = EXCLUDED.name,
			      relationship = EXCLUDED.relationship,
			      phone = EXCLUDED.phone,
			      email = EXCLUDED.email,
			      updated_at = NOW()
			  RETURNING name, relationship, phone, COALESCE(email, '')`
	var out models.EmergencyContact
	if err := s.DB.QueryRowContext(ctx, query, accountID, c.Name, c.Relationship, c.Phone, nullString(c.Email)).
		Scan(&out.Name, &out.Relationship, &out.Phone, &out.Email); err != nil {
		return nil, mapError(op, err, nil)
	}
	return &out, nil
}
