// Package emergency экстренные вызовы и их передача дежурной службе.
package emergency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/careconnect/internal/lib/access"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/lib/metrics"
	"github.com/magabrotheeeer/careconnect/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

const defaultPriority = "high"

// Repository хранилище вызовов.
type Repository interface {
	CreateEmergency(ctx context.Context, ownerID string, in models.EmergencyInput, priority string) (*models.EmergencyRequest, error)
	GetEmergency(ctx context.Context, id int64) (*models.EmergencyRequest, error)
	ListEmergenciesByOwner(ctx context.Context, ownerID string) ([]models.EmergencyRequest, error)
	ListOpenEmergencies(ctx context.Context) ([]models.EmergencyRequest, error)
	UpdateEmergencyStatus(ctx context.Context, id int64, status models.EmergencyStatus) (*models.EmergencyRequest, error)
}

// Publisher публикует события в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service экстренные вызовы.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
}

// New создает сервис. publisher может быть nil, тогда события только логируются.
func New(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, log: log}
}

// Create сохраняет вызов и уведомляет дежурную службу. Сбой публикации
// не отменяет вызов.
func (s *Service) Create(ctx context.Context, id models.Identity, in models.EmergencyInput) (*models.EmergencyRequest, error) {
	const op = "emergency.Create"

	if !in.Type.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("invalid emergency type %q", in.Type))
	}

	created, err := s.repo.CreateEmergency(ctx, id.AccountID, in, defaultPriority)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("emergency_id", created.ID),
		slog.String("type", string(created.Type)),
	)
	log.Warn("emergency request created", slog.String("account_id", id.AccountID))

	if s.publisher == nil {
		metrics.EmergencyPublished.WithLabelValues("skipped").Inc()
		return created, nil
	}

	event := models.EmergencyEvent{
		RequestID:   created.ID,
		AccountID:   id.AccountID,
		Username:    id.Username,
		Type:        created.Type,
		Description: created.Description,
		Location:    created.Location,
		Latitude:    created.Latitude,
		Longitude:   created.Longitude,
		Priority:    created.Priority,
		CreatedAt:   created.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, rabbitmq.EmergencyRoutingKey(string(created.Type)), event); err != nil {
		metrics.EmergencyPublished.WithLabelValues("failed").Inc()
		log.Error("failed to publish emergency event", sl.Err(err))
		return created, nil
	}
	metrics.EmergencyPublished.WithLabelValues("ok").Inc()
	return created, nil
}

// List возвращает вызовы субъекта. Персонал и администратор видят все незакрытые вызовы.
func (s *Service) List(ctx context.Context, id models.Identity) ([]models.EmergencyRequest, error) {
	const op = "emergency.List"

	var (
		list []models.EmergencyRequest
		err  error
	)
	if access.Can(id.Role, access.ViewAllEmergencies) {
		list, err = s.repo.ListOpenEmergencies(ctx)
	} else {
		list, err = s.repo.ListEmergenciesByOwner(ctx, id.AccountID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// UpdateStatus меняет статус вызова. Закрытый вызов не меняется.
func (s *Service) UpdateStatus(ctx context.Context, id models.Identity, emergencyID int64, status models.EmergencyStatus) (*models.EmergencyRequest, error) {
	const op = "emergency.UpdateStatus"

	if err := access.Require(id, access.ResolveEmergency); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !status.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("invalid status %q", status))
	}

	current, err := s.repo.GetEmergency(ctx, emergencyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if current.Status == models.EmergencyResolved {
		return nil, fmt.Errorf("%s: already resolved: %w", op, apperr.ErrConflict)
	}

	updated, err := s.repo.UpdateEmergencyStatus(ctx, emergencyID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("emergency status changed",
		slog.Int64("emergency_id", emergencyID),
		slog.String("status", string(status)),
		slog.String("by", id.AccountID))
	return updated, nil
}
