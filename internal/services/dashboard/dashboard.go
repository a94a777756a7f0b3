// Package dashboard кабинет врача: пациенты на сегодня и предстоящее расписание.
//
// Врач находится по учетной записи субъекта. Персонал без карточки врача
// получает apperr.ErrNotFound.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/lib/access"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Repository хранилище врачей и их приемов.
type Repository interface {
	GetDoctorByAccount(ctx context.Context, accountID string) (*models.Doctor, error)
	ListDoctorAppointments(ctx context.Context, doctorID int64, from time.Time, onlyDate bool) ([]models.DoctorAppointment, error)
}

// Service кабинет врача.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New создает сервис кабинета врача.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock подменяет источник времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// TodayPatients возвращает предстоящие на сегодня приемы врача в порядке слотов.
func (s *Service) TodayPatients(ctx context.Context, id models.Identity) ([]models.DoctorAppointment, error) {
	const op = "dashboard.TodayPatients"

	doc, err := s.doctorOf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := s.repo.ListDoctorAppointments(ctx, doc.ID, s.today(), true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sortBySlot(list)
	return list, nil
}

// Schedule возвращает все предстоящие приемы врача начиная с сегодняшнего дня.
func (s *Service) Schedule(ctx context.Context, id models.Identity) (*models.DoctorSchedule, error) {
	const op = "dashboard.Schedule"

	doc, err := s.doctorOf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := s.repo.ListDoctorAppointments(ctx, doc.ID, s.today(), false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sortBySlot(list)
	return &models.DoctorSchedule{
		DoctorName:   doc.Name,
		Specialty:    doc.Specialty,
		Appointments: list,
	}, nil
}

func (s *Service) doctorOf(ctx context.Context, id models.Identity) (*models.Doctor, error) {
	if err := access.Require(id, access.ViewDoctorSchedule); err != nil {
		return nil, err
	}
	doc, err := s.repo.GetDoctorByAccount(ctx, id.AccountID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("doctor profile not found: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return doc, nil
}

func (s *Service) today() time.Time {
	now := s.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// sortBySlot упорядочивает по дате и положению слота в сетке: "02:00 PM" после "12:30 PM".
func sortBySlot(list []models.DoctorAppointment) {
	order := make(map[string]int, len(models.TimeSlots))
	for i, slot := range models.TimeSlots {
		order[slot] = i
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		return order[list[i].TimeSlot] < order[list[j].TimeSlot]
	})
}
