// Package visit история приемов.
package visit

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/careconnect/internal/models"
)

// DefaultRecentLimit сколько последних визитов отдается по умолчанию.
const DefaultRecentLimit = 3

// Repository хранилище визитов.
type Repository interface {
	ListVisits(ctx context.Context, ownerID, status string, limit int) ([]models.Visit, error)
}

// Service история приемов субъекта.
type Service struct {
	repo Repository
}

// New создает сервис визитов.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// History возвращает все визиты субъекта со сводкой по статусам.
func (s *Service) History(ctx context.Context, id models.Identity) (*models.VisitHistory, error) {
	const op = "visit.History"

	visits, err := s.repo.ListVisits(ctx, id.AccountID, "", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := models.VisitStats{Total: len(visits)}
	for _, v := range visits {
		switch models.AppointmentStatus(v.Status) {
		case models.AppointmentUpcoming:
			stats.Upcoming++
		case models.AppointmentCompleted:
			stats.Completed++
		case models.AppointmentCancelled:
			stats.Cancelled++
		}
	}
	return &models.VisitHistory{Visits: visits, Statistics: stats}, nil
}

// Recent возвращает не больше limit последних завершенных визитов. limit <= 0 заменяется значением по умолчанию.
func (s *Service) Recent(ctx context.Context, id models.Identity, limit int) ([]models.Visit, error) {
	const op = "visit.Recent"

	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	visits, err := s.repo.ListVisits(ctx, id.AccountID, string(models.AppointmentCompleted), limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return visits, nil
}
