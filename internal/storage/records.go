package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

const recordColumns = `id, owner_id, record_type, name, description, severity,
	diagnosed_date, is_active, created_at, updated_at`

func scanRecord(row rowScanner) (*models.MedicalRecord, error) {
	var (
		r         models.MedicalRecord
		diagnosed sql.NullTime
	)
	if err := row.Scan(&r.ID, &r.OwnerID, &r.Type, &r.Name, &r.Description, &r.Severity,
		&diagnosed, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if diagnosed.Valid {
		r.DiagnosedDate = &diagnosed.Time
	}
	return &r, nil
}

// ListActiveRecords возвращает активные записи медицинской карты владельца.
func (s *Storage) ListActiveRecords(ctx context.Context, ownerID string) ([]models.MedicalRecord, error) {
	const op = "storage.ListActiveRecords"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM medical_records
		 WHERE owner_id = $1 AND is_active
		 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.MedicalRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateRecord добавляет запись в медицинскую карту.
func (s *Storage) CreateRecord(ctx context.Context, ownerID string, in models.RecordInput) (*models.MedicalRecord, error) {
	const op = "storage.CreateRecord"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO medical_records (owner_id, record_type, name, description, severity, diagnosed_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+recordColumns,
		ownerID, in.Type, in.Name, in.Description, in.Severity, in.DiagnosedDate)
	r, err := scanRecord(row)
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return r, nil
}

// GetRecord возвращает активную запись по идентификатору.
func (s *Storage) GetRecord(ctx context.Context, id int64) (*models.MedicalRecord, error) {
	const op = "storage.GetRecord"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	r, err := scanRecord(s.DB.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM medical_records WHERE id = $1 AND is_active`, id))
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return r, nil
}

// UpdateRecord заменяет содержимое активной записи.
func (s *Storage) UpdateRecord(ctx context.Context, id int64, in models.RecordInput) (*models.MedicalRecord, error) {
	const op = "storage.UpdateRecord"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx,
		`UPDATE medical_records
		 SET record_type = $2, name = $3, description = $4, severity = $5,
		     diagnosed_date = $6, updated_at = NOW()
		 WHERE id = $1 AND is_active
		 RETURNING `+recordColumns,
		id, in.Type, in.Name, in.Description, in.Severity, in.DiagnosedDate)
	r, err := scanRecord(row)
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return r, nil
}

// DeactivateRecord скрывает запись, не удаляя ее.
func (s *Storage) DeactivateRecord(ctx context.Context, id int64) error {
	const op = "storage.DeactivateRecord"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE medical_records SET is_active = FALSE, updated_at = NOW()
		 WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(op, res, apperr.ErrNotFound)
}

// DeleteRecord удаляет запись безвозвратно.
func (s *Storage) DeleteRecord(ctx context.Context, id int64) error {
	const op = "storage.DeleteRecord"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(op, res, apperr.ErrNotFound)
}

// GetRecordAnyState возвращает запись независимо от is_active.
func (s *Storage) GetRecordAnyState(ctx context.Context, id int64) (*models.MedicalRecord, error) {
	const op = "storage.GetRecordAnyState"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	r, err := scanRecord(s.DB.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM medical_records WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return r, nil
}
