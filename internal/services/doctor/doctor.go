// Package doctor справочник врачей и свободные слоты приема.
package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

const (
	availableCacheKey = "doctors:available"
	availableCacheTTL = 10 * time.Minute
)

// Repository хранилище врачей.
type Repository interface {
	ListAvailableDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, id int64) (*models.Doctor, error)
	BookedSlots(ctx context.Context, doctorID int64, date time.Time) ([]string, error)
}

// Cache кэш справочника.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service справочник врачей.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает сервис врачей.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// ListAvailable возвращает принимающих врачей. Сбой кэша не мешает ответу.
func (s *Service) ListAvailable(ctx context.Context) ([]models.Doctor, error) {
	const op = "doctor.ListAvailable"

	var cached []models.Doctor
	found, err := s.cache.Get(ctx, availableCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read doctors from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	doctors, err := s.repo.ListAvailableDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, availableCacheKey, doctors, availableCacheTTL); err != nil {
		s.log.Warn("failed to cache doctors", sl.Err(err))
	}
	return doctors, nil
}

// AvailableSlots возвращает незанятые слоты врача на дату date (YYYY-MM-DD).
func (s *Service) AvailableSlots(ctx context.Context, doctorID int64, date string) (*models.AvailableSlots, error) {
	const op = "doctor.AvailableSlots"

	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, apperr.Validation("date must be in YYYY-MM-DD format")
	}
	if _, err := s.repo.GetDoctor(ctx, doctorID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booked, err := s.repo.BookedSlots(ctx, doctorID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	free := make([]string, 0, len(models.TimeSlots))
	for _, slot := range models.TimeSlots {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return &models.AvailableSlots{DoctorID: doctorID, Date: date, Slots: free}, nil
}
