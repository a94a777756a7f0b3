// Package health реализует проверку живости сервиса и его зависимостей.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
)

const pingTimeout = 2 * time.Second

// Pinger зависимость, доступность которой входит в ответ.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает HTTP-запросы проверки состояния.
type Handler struct {
	log     *slog.Logger
	service string
	deps    map[string]Pinger
}

// New создает Handler для сервиса service, пингующий зависимости deps.
func New(log *slog.Logger, service string, deps map[string]Pinger) *Handler {
	return &Handler{log: log, service: service, deps: deps}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.health")

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	status := "healthy"
	components := make(map[string]string, len(h.deps))
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			log.Warn("dependency is down", slog.String("dependency", name), sl.Err(err))
			components[name] = "down"
			status = "degraded"
			continue
		}
		components[name] = "up"
	}

	if status != "healthy" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status":       status,
		"service":      h.service,
		"dependencies": components,
	}))
}
