package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/careconnect/internal/http/response"
)

// RateLimitMiddleware ограничивает частоту запросов общим для группы маршрутов лимитером.
func RateLimitMiddleware(log *slog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("too many requests",
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				w.Header().Set("Retry-After", "1")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error(response.MsgTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
