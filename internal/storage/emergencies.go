package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/careconnect/internal/models"
)

const emergencyColumns = `id, owner_id, emergency_type, description, location,
	latitude, longitude, status, priority, created_at, resolved_at`

func scanEmergency(row rowScanner) (*models.EmergencyRequest, error) {
	var (
		e          models.EmergencyRequest
		lat, lon   sql.NullFloat64
		resolvedAt sql.NullTime
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Type, &e.Description, &e.Location,
		&lat, &lon, &e.Status, &e.Priority, &e.CreatedAt, &resolvedAt); err != nil {
		return nil, err
	}
	if lat.Valid {
		e.Latitude = &lat.Float64
	}
	if lon.Valid {
		e.Longitude = &lon.Float64
	}
	if resolvedAt.Valid {
		e.ResolvedAt = &resolvedAt.Time
	}
	return &e, nil
}

func (s *Storage) queryEmergencies(ctx context.Context, op, query string, args ...any) ([]models.EmergencyRequest, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.EmergencyRequest, 0)
	for rows.Next() {
		e, err := scanEmergency(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateEmergency сохраняет экстренный вызов со статусом active.
func (s *Storage) CreateEmergency(ctx context.Context, ownerID string, in models.EmergencyInput, priority string) (*models.EmergencyRequest, error) {
	const op = "storage.CreateEmergency"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx,
		`INSERT INTO emergency_requests (owner_id, emergency_type, description, location,
		     latitude, longitude, status, priority)
		 VALUES ($1, $2, $3, $4, $5, $6, 'active', $7)
		 RETURNING `+emergencyColumns,
		ownerID, in.Type, in.Description, in.Location, in.Latitude, in.Longitude, priority)
	e, err := scanEmergency(row)
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return e, nil
}

// GetEmergency возвращает вызов по идентификатору.
func (s *Storage) GetEmergency(ctx context.Context, id int64) (*models.EmergencyRequest, error) {
	const op = "storage.GetEmergency"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	e, err := scanEmergency(s.DB.QueryRowContext(ctx,
		`SELECT `+emergencyColumns+` FROM emergency_requests WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return e, nil
}

// ListEmergenciesByOwner возвращает вызовы владельца, новые сначала.
func (s *Storage) ListEmergenciesByOwner(ctx context.Context, ownerID string) ([]models.EmergencyRequest, error) {
	const op = "storage.ListEmergenciesByOwner"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	return s.queryEmergencies(ctx, op,
		`SELECT `+emergencyColumns+` FROM emergency_requests
		 WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`, ownerID)
}

// ListOpenEmergencies возвращает все незакрытые вызовы, старые сначала.
func (s *Storage) ListOpenEmergencies(ctx context.Context) ([]models.EmergencyRequest, error) {
	const op = "storage.ListOpenEmergencies"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	return s.queryEmergencies(ctx, op,
		`SELECT `+emergencyColumns+` FROM emergency_requests
		 WHERE status <> 'resolved' ORDER BY created_at, id`)
}

// UpdateEmergencyStatus меняет статус вызова. Закрытый вызов больше не меняется.
func (s *Storage) UpdateEmergencyStatus(ctx context.Context, id int64, status models.EmergencyStatus) (*models.EmergencyRequest, error) {
	const op = "storage.UpdateEmergencyStatus"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx,
		`UPDATE emergency_requests
		 SET status = $2,
		     resolved_at = CASE WHEN $2 = 'resolved' THEN NOW() ELSE NULL END
		 WHERE id = $1 AND status <> 'resolved'
		 RETURNING `+emergencyColumns, id, status)
	e, err := scanEmergency(row)
	if err != nil {
		return nil, mapError(op, err, nil)
	}
	return e, nil
}
