// Package login реализует HTTP-обработчик входа по логину и паролю.
//
// Неизвестный логин, неактивный аккаунт и неверный пароль дают одинаковый ответ 401.
package login

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Request — структура входных данных для авторизации.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по имени и паролю. Возвращает bearer-токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response{data=models.LoginResult}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := request.Logger(h.log, r, op)

	var req Request
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("user logged in", slog.String("username", req.Username))
	response.OK(w, r, res)
}
