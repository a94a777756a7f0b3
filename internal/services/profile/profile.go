// Package profile профиль владельца токена и его экстренный контакт.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Repository хранилище профилей.
type Repository interface {
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.Account, error)
	GetEmergencyContact(ctx context.Context, accountID string) (*models.EmergencyContact, error)
	UpsertEmergencyContact(ctx context.Context, accountID string, c models.EmergencyContact) (*models.EmergencyContact, error)
}

// Service операции над собственным профилем.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает сервис профиля.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Get возвращает профиль вместе с экстренным контактом, если он есть.
func (s *Service) Get(ctx context.Context, id models.Identity) (*models.PublicProfile, error) {
	const op = "profile.Get"

	account, err := s.repo.GetAccountByID(ctx, id.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profile := account.Public()

	contact, err := s.repo.GetEmergencyContact(ctx, id.AccountID)
	switch {
	case err == nil:
		profile.EmergencyContact = contact
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &profile, nil
}

// Update меняет переданные поля профиля.
func (s *Service) Update(ctx context.Context, id models.Identity, upd models.ProfileUpdate) (*models.PublicProfile, error) {
	const op = "profile.Update"

	if upd.Empty() {
		return nil, apperr.Validation("no fields to update")
	}
	account, err := s.repo.UpdateProfile(ctx, id.AccountID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("profile updated", slog.String("account_id", id.AccountID))
	profile := account.Public()
	return &profile, nil
}

// SetEmergencyContact создает или заменяет экстренный контакт.
func (s *Service) SetEmergencyContact(ctx context.Context, id models.Identity, c models.EmergencyContact) (*models.EmergencyContact, error) {
	const op = "profile.SetEmergencyContact"

	saved, err := s.repo.UpsertEmergencyContact(ctx, id.AccountID, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}
