// Package reminder периодически рассылает напоминания о приемах на завтра.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Repository источник записей для напоминаний.
type Repository interface {
	ListRemindersOn(ctx context.Context, date time.Time) ([]models.AppointmentReminder, error)
}

// Publisher публикует событие в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service публикует напоминания о завтрашних приемах.
type Service struct {
	repo      Repository
	publisher Publisher
	interval  time.Duration
	log       *slog.Logger
	now       func() time.Time
}

// New создает сервис напоминаний с периодом interval.
func New(repo Repository, publisher Publisher, interval time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		log:       log,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Run выполняет рассылку сразу и затем каждые interval, пока не отменен ctx.
func (s *Service) Run(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	if _, err := s.SendTomorrow(ctx); err != nil {
		s.log.Error("failed to send appointment reminders", sl.Err(err))
	}
}

// SendTomorrow публикует напоминания о приемах на следующий день и
// возвращает число отправленных. Ошибка публикации одного события
// не прерывает рассылку.
func (s *Service) SendTomorrow(ctx context.Context) (int, error) {
	const op = "reminder.SendTomorrow"

	now := s.now()
	y, m, d := now.AddDate(0, 0, 1).Date()
	tomorrow := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	reminders, err := s.repo.ListRemindersOn(ctx, tomorrow)
	if err != nil {
		return 0, err
	}
	if len(reminders) == 0 {
		s.log.Info("no appointments to remind about", slog.String("date", tomorrow.Format(models.DateLayout)))
		return 0, nil
	}

	sent := 0
	for _, r := range reminders {
		if err := s.publisher.Publish(ctx, rabbitmq.ReminderRoutingKey, r); err != nil {
			s.log.Error("failed to publish reminder",
				slog.String("op", op),
				slog.Int64("appointment_id", r.AppointmentID),
				sl.Err(err))
			continue
		}
		sent++
	}
	s.log.Info("appointment reminders published", slog.Int("count", sent), slog.Int("found", len(reminders)))
	return sent, nil
}
