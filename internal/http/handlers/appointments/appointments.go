// Package appointments реализует HTTP-обработчики записей к врачу.
//
// Проверки владения и ролей выполняет сервис, обработчик только разбирает
// запрос и сопоставляет ошибки со статусами.
package appointments

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Service описывает бизнес-логику записи на прием.
type Service interface {
	List(ctx context.Context, id models.Identity) ([]models.AppointmentView, error)
	Upcoming(ctx context.Context, id models.Identity) ([]models.AppointmentView, error)
	Get(ctx context.Context, id models.Identity, appointmentID int64) (*models.AppointmentView, error)
	Book(ctx context.Context, id models.Identity, req models.BookingRequest) (*models.AppointmentView, error)
	Reschedule(ctx context.Context, id models.Identity, appointmentID int64, date, slot string) (*models.AppointmentView, error)
	Cancel(ctx context.Context, id models.Identity, appointmentID int64) error
	Complete(ctx context.Context, id models.Identity, appointmentID int64, c models.VisitCompletion) (*models.Visit, error)
}

// BookRequest запись к врачу.
type BookRequest struct {
	DoctorID int64  `json:"doctor_id" validate:"required,gt=0"`
	Date     string `json:"appointment_date" validate:"required" example:"2026-03-04"`
	TimeSlot string `json:"appointment_time" validate:"required" example:"10:30 AM"`
	Type     string `json:"type,omitempty" validate:"max=100"`
	Notes    string `json:"notes,omitempty"`
}

// RescheduleRequest перенос записи.
type RescheduleRequest struct {
	Date     string `json:"appointment_date" validate:"required" example:"2026-03-05"`
	TimeSlot string `json:"appointment_time" validate:"required" example:"02:00 PM"`
}

// CompleteRequest итог приема.
type CompleteRequest struct {
	Diagnosis string `json:"diagnosis,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Handler обрабатывает HTTP-запросы записей на прием.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler записей на прием.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// List godoc
// @Summary Мои записи
// @Description Администратор видит все записи.
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.AppointmentView}
// @Failure 401 {object} response.ErrorResponse
// @Router /appointments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.appointments.List")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	res, err := h.service.List(r.Context(), id)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Upcoming godoc
// @Summary Предстоящие записи
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.AppointmentView}
// @Failure 401 {object} response.ErrorResponse
// @Router /appointments/upcoming [get]
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.appointments.Upcoming")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	res, err := h.service.Upcoming(r.Context(), id)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Get godoc
// @Summary Запись по идентификатору
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response{data=models.AppointmentView}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /appointments/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.appointments.Get")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	appointmentID, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	res, err := h.service.Get(r.Context(), id, appointmentID)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Book godoc
// @Summary Записаться к врачу
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BookRequest true "Врач, дата и слот"
// @Success 201 {object} response.Response{data=models.AppointmentView}
// @Failure 404 {object} response.ErrorResponse "Врач не найден"
// @Failure 409 {object} response.ErrorResponse "Слот занят"
// @Failure 422 {object} response.ErrorResponse
// @Router /appointments [post]
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.appointments.Book")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	var req BookRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Book(r.Context(), id, models.BookingRequest{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Type:     req.Type,
		Notes:    req.Notes,
	})
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.Created(w, r, res)
}

// Reschedule godoc
// @Summary Перенести запись
// @Description Нельзя перенести отмененную запись или запись, до которой меньше 12 часов.
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Param request body RescheduleRequest true "Новые дата и слот"
// @Success 200 {object} response.Response{data=models.AppointmentView}
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /appointments/{id} [put]
func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.appointments.Reschedule")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	appointmentID, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	var req RescheduleRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Reschedule(r.Context(), id, appointmentID, req.Date, req.TimeSlot)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Cancel godoc
// @Summary Отменить запись
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Уже отменена"
// @Router /appointments/{id} [delete]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.appointments.Cancel")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	appointmentID, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	if err := h.service.Cancel(r.Context(), id, appointmentID); err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, map[string]any{"message": "appointment cancelled", "id": appointmentID})
}

// Complete godoc
// @Summary Закрыть прием
// @Description Доступно персоналу и администратору. Создает запись в истории визитов.
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Param request body CompleteRequest false "Диагноз и заметки"
// @Success 200 {object} response.Response{data=models.Visit}
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /appointments/{id}/complete [post]
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.appointments.Complete")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	appointmentID, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	var req CompleteRequest
	if r.ContentLength != 0 && !request.Decode(w, r, log, nil, &req) {
		return
	}

	visit, err := h.service.Complete(r.Context(), id, appointmentID, models.VisitCompletion{
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
	})
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	log.Info("appointment completed", slog.Int64("appointment_id", appointmentID))
	response.OK(w, r, visit)
}
