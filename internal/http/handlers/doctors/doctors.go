// Package doctors реализует публичные HTTP-обработчики справочника врачей.
package doctors

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Service описывает бизнес-логику справочника врачей.
type Service interface {
	ListAvailable(ctx context.Context) ([]models.Doctor, error)
	AvailableSlots(ctx context.Context, doctorID int64, date string) (*models.AvailableSlots, error)
}

// Handler обрабатывает HTTP-запросы справочника врачей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler справочника.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// List godoc
// @Summary Доступные врачи
// @Tags Doctors
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Doctor}
// @Router /doctors [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.doctors.List")

	res, err := h.service.ListAvailable(r.Context())
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Slots godoc
// @Summary Свободные слоты врача на дату
// @Tags Doctors
// @Produce json
// @Param id path int true "ID врача"
// @Param date query string true "Дата YYYY-MM-DD"
// @Success 200 {object} response.Response{data=models.AvailableSlots}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /doctors/{id}/available-slots [get]
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.doctors.Slots")

	doctorID, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		response.FromError(w, r, log, apperr.Validation("date query parameter is required"))
		return
	}

	res, err := h.service.AvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}
