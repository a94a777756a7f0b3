// Package doctordashboard реализует HTTP-обработчики кабинета врача.
package doctordashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Service описывает бизнес-логику кабинета врача.
type Service interface {
	TodayPatients(ctx context.Context, id models.Identity) ([]models.DoctorAppointment, error)
	Schedule(ctx context.Context, id models.Identity) (*models.DoctorSchedule, error)
}

// Handler обрабатывает запросы кабинета врача.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает обработчик кабинета врача.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Patients godoc
// @Summary Пациенты врача на сегодня
// @Tags Doctor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.DoctorAppointment}
// @Failure 403 {object} response.ErrorResponse "Только для персонала"
// @Failure 404 {object} response.ErrorResponse "Нет карточки врача"
// @Router /doctor/patients [get]
func (h *Handler) Patients(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.doctordashboard.Patients")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	res, err := h.service.TodayPatients(r.Context(), id)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Schedule godoc
// @Summary Расписание врача
// @Tags Doctor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.DoctorSchedule}
// @Failure 403 {object} response.ErrorResponse "Только для персонала"
// @Failure 404 {object} response.ErrorResponse "Нет карточки врача"
// @Router /doctor/schedule [get]
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.doctordashboard.Schedule")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	res, err := h.service.Schedule(r.Context(), id)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}
