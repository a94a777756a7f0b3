// Package emergency реализует HTTP-обработчики экстренных вызовов.
package emergency

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Service описывает бизнес-логику экстренных вызовов.
type Service interface {
	Create(ctx context.Context, id models.Identity, in models.EmergencyInput) (*models.EmergencyRequest, error)
	List(ctx context.Context, id models.Identity) ([]models.EmergencyRequest, error)
	UpdateStatus(ctx context.Context, id models.Identity, emergencyID int64, status models.EmergencyStatus) (*models.EmergencyRequest, error)
}

// CreateRequest новый экстренный вызов.
type CreateRequest struct {
	Type        string   `json:"type" validate:"required" example:"medical"`
	Description string   `json:"description" validate:"max=2000"`
	Location    string   `json:"location,omitempty" validate:"max=255" example:"Library, 2nd floor"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// StatusRequest смена статуса вызова.
type StatusRequest struct {
	Status string `json:"status" validate:"required" example:"responded"`
}

// Handler обрабатывает HTTP-запросы экстренных вызовов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Create godoc
// @Summary Экстренный вызов
// @Description Создает вызов и передает его дежурной службе.
// @Tags Emergency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "Тип: medical, security, mental_health или other"
// @Success 201 {object} response.Response{data=models.EmergencyRequest}
// @Failure 422 {object} response.ErrorResponse
// @Router /emergency [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.emergency.Create")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	var req CreateRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Create(r.Context(), id, models.EmergencyInput{
		Type:        models.EmergencyType(req.Type),
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.Created(w, r, res)
}

// List godoc
// @Summary Экстренные вызовы
// @Description Студент видит свои вызовы, персонал все открытые.
// @Tags Emergency
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.EmergencyRequest}
// @Router /emergency [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.emergency.List")

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

// UpdateStatus godoc
// @Summary Сменить статус вызова
// @Tags Emergency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID вызова"
// @Param request body StatusRequest true "responded или resolved"
// @Success 200 {object} response.Response{data=models.EmergencyRequest}
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /emergency/{id}/status [put]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.emergency.UpdateStatus")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	emergencyID, ok := request.IDParam(w, r, log, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.UpdateStatus(r.Context(), id, emergencyID, models.EmergencyStatus(req.Status))
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}
