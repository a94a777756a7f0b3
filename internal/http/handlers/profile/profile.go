// Package profile реализует HTTP-обработчики профиля текущего пользователя.
package profile

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Service бизнес-логика профиля.
type Service interface {
	Get(ctx context.Context, id models.Identity) (*models.PublicProfile, error)
	Update(ctx context.Context, id models.Identity, upd models.ProfileUpdate) (*models.PublicProfile, error)
	SetEmergencyContact(ctx context.Context, id models.Identity, c models.EmergencyContact) (*models.EmergencyContact, error)
}

// Deactivator закрывает аккаунт.
type Deactivator interface {
	Deactivate(ctx context.Context, id models.Identity) error
}

// UpdateRequest частичное обновление, отсутствующие поля не меняются.
type UpdateRequest struct {
	FullName    *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	DateOfBirth *string `json:"date_of_birth,omitempty" example:"2003-05-17"`
	Gender      *string `json:"gender,omitempty" validate:"omitempty,max=20"`
	Institution *string `json:"institution,omitempty" validate:"omitempty,max=255"`
	Program     *string `json:"program,omitempty" validate:"omitempty,max=255"`
}

// ContactRequest контакт для экстренной связи.
type ContactRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Relationship string `json:"relationship" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"required,max=20"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
}

// Handler обрабатывает HTTP-запросы профиля.
type Handler struct {
	log         *slog.Logger
	service     Service
	deactivator Deactivator
	validate    *validator.Validate
}

// New создает Handler профиля. deactivator отвечает за удаление аккаунта.
func New(log *slog.Logger, service Service, deactivator Deactivator) *Handler {
	return &Handler{
		log:         log,
		service:     service,
		deactivator: deactivator,
		validate:    validator.New(),
	}
}

// Get godoc
// @Summary Мой профиль
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.PublicProfile}
// @Failure 401 {object} response.ErrorResponse
// @Router /profile [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.profile.Get")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, p)
}

// Update godoc
// @Summary Обновить профиль
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRequest true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.PublicProfile}
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /profile/update [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.profile.Update")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	var req UpdateRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	upd := models.ProfileUpdate{
		FullName:    req.FullName,
		Phone:       req.Phone,
		Gender:      req.Gender,
		Institution: req.Institution,
		Program:     req.Program,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(models.DateLayout, *req.DateOfBirth)
		if err != nil {
			response.FromError(w, r, log, apperr.Validation("date_of_birth must be in YYYY-MM-DD format"))
			return
		}
		upd.DateOfBirth = &dob
	}

	p, err := h.service.Update(r.Context(), id, upd)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	log.Info("profile updated")
	response.OK(w, r, p)
}

// SetEmergencyContact godoc
// @Summary Контакт для экстренной связи
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ContactRequest true "Контакт"
// @Success 200 {object} response.Response{data=models.EmergencyContact}
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /profile/emergency-contact [put]
func (h *Handler) SetEmergencyContact(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.profile.SetEmergencyContact")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	var req ContactRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	c, err := h.service.SetEmergencyContact(r.Context(), id, models.EmergencyContact(req))
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, c)
}

// Deactivate godoc
// @Summary Закрыть аккаунт
// @Description Деактивирует аккаунт и отзывает текущий токен.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /profile [delete]
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.profile.Deactivate")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	if err := h.deactivator.Deactivate(r.Context(), id); err != nil {
		response.FromError(w, r, log, err)
		return
	}
	log.Info("account deactivated", slog.String("username", id.Username))
	response.OK(w, r, map[string]string{"message": "account deactivated"})
}
