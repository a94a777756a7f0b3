// Package logout реализует HTTP-обработчик отзыва текущего токена.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Service описывает бизнес-логику выхода из аккаунта.
type Service interface {
	Logout(ctx context.Context, id models.Identity) error
}

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler выхода.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Отзывает токен, с которым пришел запрос.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := request.Logger(h.log, r, op)

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	if err := h.service.Logout(r.Context(), id); err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("token revoked", slog.String("username", id.Username))
	response.OK(w, r, map[string]string{"message": "logged out"})
}
