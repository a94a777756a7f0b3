// Package visits реализует HTTP-обработчики истории визитов.
package visits

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// maxRecentLimit верхняя граница параметра limit.
const maxRecentLimit = 50

// Service описывает бизнес-логику истории визитов.
type Service interface {
	History(ctx context.Context, id models.Identity) (*models.VisitHistory, error)
	Recent(ctx context.Context, id models.Identity, limit int) ([]models.Visit, error)
}

// Handler обрабатывает HTTP-запросы истории визитов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler истории визитов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// All godoc
// @Summary История визитов
// @Tags Visits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.VisitHistory}
// @Router /visits/all [get]
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.visits.All")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}
	res, err := h.service.History(r.Context(), id)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Recent godoc
// @Summary Последние визиты
// @Tags Visits
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Сколько визитов вернуть (по умолчанию 3)"
// @Success 200 {object} response.Response{data=[]models.Visit}
// @Failure 422 {object} response.ErrorResponse
// @Router /visits/recent [get]
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.visits.Recent")

	id, ok := request.Identity(w, r, log)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRecentLimit {
			response.FromError(w, r, log, apperr.Validation("limit must be between 1 and 50"))
			return
		}
		limit = n
	}

	res, err := h.service.Recent(r.Context(), id, limit)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}
