// Package appointment запись к врачу: бронирование, перенос, отмена и закрытие приема.
package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/lib/access"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// rescheduleWindow ближе этого срока до начала приема запись не переносится.
const rescheduleWindow = 12 * time.Hour

const defaultType = "General Consultation"

// Repository хранилище записей.
type Repository interface {
	CreateAppointment(ctx context.Context, a models.Appointment) (*models.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*models.Appointment, error)
	ListAppointments(ctx context.Context, ownerID string) ([]models.Appointment, error)
	ListUpcomingAppointments(ctx context.Context, ownerID string, from time.Time) ([]models.Appointment, error)
	RescheduleAppointment(ctx context.Context, id int64, date time.Time, slot string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id int64) error
	CompleteAppointment(ctx context.Context, id int64, v models.Visit) (*models.Visit, error)
}

// Doctors источник сведений о враче.
type Doctors interface {
	GetDoctor(ctx context.Context, id int64) (*models.Doctor, error)
}

// Service операции над записями.
type Service struct {
	repo    Repository
	doctors Doctors
	log     *slog.Logger
	now     func() time.Time
}

// New создает сервис записей.
func New(repo Repository, doctors Doctors, log *slog.Logger) *Service {
	return &Service{repo: repo, doctors: doctors, log: log, now: time.Now}
}

// WithClock подменяет источник времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func view(a *models.Appointment) models.AppointmentView {
	return models.AppointmentView{Appointment: a, Date: a.DateString()}
}

// List возвращает записи субъекта. Администратор видит все записи.
func (s *Service) List(ctx context.Context, id models.Identity) ([]models.AppointmentView, error) {
	const op = "appointment.List"

	owner := id.AccountID
	if access.Can(id.Role, access.BypassOwnership) {
		owner = ""
	}
	list, err := s.repo.ListAppointments(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views := make([]models.AppointmentView, 0, len(list))
	for i := range list {
		views = append(views, view(&list[i]))
	}
	return views, nil
}

// Upcoming возвращает предстоящие записи субъекта с признаком возможности переноса.
func (s *Service) Upcoming(ctx context.Context, id models.Identity) ([]models.AppointmentView, error) {
	const op = "appointment.Upcoming"

	now := s.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	list, err := s.repo.ListUpcomingAppointments(ctx, id.AccountID, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views := make([]models.AppointmentView, 0, len(list))
	for i := range list {
		v := view(&list[i])
		if start, err := s.startOf(list[i].Date, list[i].TimeSlot); err == nil {
			hours := start.Sub(now).Hours()
			can := hours > rescheduleWindow.Hours()
			v.HoursUntil = &hours
			v.CanReschedule = &can
		}
		views = append(views, v)
	}
	return views, nil
}

// Get возвращает запись, если субъект ее владелец или может обходить владение.
func (s *Service) Get(ctx context.Context, id models.Identity, appointmentID int64) (*models.AppointmentView, error) {
	const op = "appointment.Get"

	a, err := s.owned(ctx, id, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	v := view(a)
	return &v, nil
}

func (s *Service) owned(ctx context.Context, id models.Identity, appointmentID int64) (*models.Appointment, error) {
	a, err := s.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := access.CheckOwner(id, a.OwnerID); err != nil {
		return nil, err
	}
	return a, nil
}

// startOf момент начала слота. Дата из базы приходит в UTC, слоты заданы
// в часовом поясе сервиса.
func (s *Service) startOf(date time.Time, slot string) (time.Time, error) {
	y, m, d := date.Date()
	return models.SlotStart(time.Date(y, m, d, 0, 0, 0, 0, s.now().Location()), slot)
}

// parseSlot проверяет дату и слот и возвращает дату приема.
func (s *Service) parseSlot(date, slot string) (time.Time, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return time.Time{}, apperr.Validation("date must be in YYYY-MM-DD format")
	}
	if !models.ValidTimeSlot(slot) {
		return time.Time{}, apperr.Validation(fmt.Sprintf("invalid time slot %q", slot))
	}

	start, err := s.startOf(day, slot)
	if err != nil {
		return time.Time{}, apperr.Validation(err.Error())
	}
	if !start.After(s.now()) {
		return time.Time{}, apperr.Validation("appointment must be in the future")
	}
	return day, nil
}

// Book записывает субъекта к врачу. Занятый слот дает apperr.ErrConflict.
func (s *Service) Book(ctx context.Context, id models.Identity, req models.BookingRequest) (*models.AppointmentView, error) {
	const op = "appointment.Book"

	day, err := s.parseSlot(req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctors.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !doctor.IsAvailable {
		return nil, apperr.Validation("doctor is not available for appointments")
	}

	apptType := req.Type
	if apptType == "" {
		apptType = defaultType
	}

	created, err := s.repo.CreateAppointment(ctx, models.Appointment{
		OwnerID:  id.AccountID,
		DoctorID: doctor.ID,
		Date:     day,
		TimeSlot: req.TimeSlot,
		Type:     apptType,
		Location: fmt.Sprintf("Campus Health Center, Room %d01", doctor.ID),
		Status:   models.AppointmentUpcoming,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("appointment booked",
		slog.Int64("appointment_id", created.ID),
		slog.Int64("doctor_id", doctor.ID),
		slog.String("account_id", id.AccountID))
	v := view(created)
	return &v, nil
}

// Reschedule переносит запись на другую дату и слот.
func (s *Service) Reschedule(ctx context.Context, id models.Identity, appointmentID int64, date, slot string) (*models.AppointmentView, error) {
	const op = "appointment.Reschedule"

	a, err := s.owned(ctx, id, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if a.Status != models.AppointmentUpcoming {
		return nil, fmt.Errorf("%s: appointment is %s: %w", op, a.Status, apperr.ErrConflict)
	}
	if start, err := s.startOf(a.Date, a.TimeSlot); err == nil && start.Sub(s.now()) <= rescheduleWindow {
		return nil, apperr.Validation("cannot reschedule appointments within 12 hours")
	}

	day, err := s.parseSlot(date, slot)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.RescheduleAppointment(ctx, appointmentID, day, slot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("appointment rescheduled", slog.Int64("appointment_id", appointmentID))
	v := view(updated)
	return &v, nil
}

// Cancel отменяет запись.
func (s *Service) Cancel(ctx context.Context, id models.Identity, appointmentID int64) error {
	const op = "appointment.Cancel"

	if _, err := s.owned(ctx, id, appointmentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CancelAppointment(ctx, appointmentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("appointment cancelled",
		slog.Int64("appointment_id", appointmentID),
		slog.String("by", id.AccountID))
	return nil
}

// Complete закрывает прием и заносит визит в историю владельца записи.
func (s *Service) Complete(ctx context.Context, id models.Identity, appointmentID int64, c models.VisitCompletion) (*models.Visit, error) {
	const op = "appointment.Complete"

	if err := access.Require(id, access.CompleteAppointment); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a, err := s.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if a.Status != models.AppointmentUpcoming {
		return nil, fmt.Errorf("%s: appointment is %s: %w", op, a.Status, apperr.ErrConflict)
	}

	visit, err := s.repo.CompleteAppointment(ctx, appointmentID, models.Visit{
		OwnerID:    a.OwnerID,
		DoctorID:   a.DoctorID,
		DoctorName: a.DoctorName,
		VisitDate:  a.Date,
		TimeSlot:   a.TimeSlot,
		VisitType:  a.Type,
		Diagnosis:  c.Diagnosis,
		Location:   a.Location,
		Notes:      c.Notes,
		Status:     string(models.AppointmentCompleted),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("appointment completed",
		slog.Int64("appointment_id", appointmentID),
		slog.Int64("visit_id", visit.ID))
	return visit, nil
}
