// Package register реализует HTTP-обработчик регистрации аккаунта.
//
// Регистрация не выдает токен: клиент входит отдельным запросом /auth/login.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Request — входные данные для регистрации
type Request struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=128"`
	FullName    string `json:"full_name" validate:"required,max=255"`
	Role        string `json:"role,omitempty" validate:"omitempty,oneof=student staff admin"`
	StudentID   string `json:"student_id,omitempty" validate:"max=50"`
	Institution string `json:"institution,omitempty" validate:"max=255"`
	Program     string `json:"program,omitempty" validate:"max=255"`
	Phone       string `json:"phone,omitempty" validate:"max=20"`
	Specialty   string `json:"specialization,omitempty" validate:"max=255"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, reg models.Registration) (*models.PublicProfile, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
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

// ServeHTTP godoc
// @Summary Регистрация аккаунта
// @Description Создает аккаунт студента. Токен не выдается. Персонал со специализацией получает карточку врача.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные аккаунта"
// @Success 201 {object} response.Response{data=models.PublicProfile}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Роль недоступна для самостоятельной регистрации"
// @Failure 409 {object} response.ErrorResponse "Логин, email или студенческий номер заняты"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := request.Logger(h.log, r, op)

	var req Request
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	profile, err := h.service.Register(r.Context(), models.Registration{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Role:        models.Role(req.Role),
		StudentID:   req.StudentID,
		Institution: req.Institution,
		Program:     req.Program,
		Phone:       req.Phone,
		Specialty:   req.Specialty,
	})
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("account registered", slog.String("username", profile.Username))
	response.Created(w, r, profile)
}
