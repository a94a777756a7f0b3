// Package middlewarectx содержит HTTP middleware для проверки JWT токенов
// и передачи аутентифицированного субъекта в обработчики через контекст.
//
// JWTMiddleware требует заголовок Authorization: Bearer, OptionalJWTMiddleware
// пропускает запрос без заголовка как анонимный, но отклоняет присланный
// невалидный токен.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey ключ аутентифицированного субъекта в контексте.
const IdentityKey Key = "identity"

// Service проверяет токен и возвращает его владельца.
type Service interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// WithIdentity кладет субъекта в контекст.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFrom достает субъекта из контекста.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(models.Identity)
	return id, ok
}

// bearerToken возвращает токен и признак того, что заголовок вообще был.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}

func authenticate(auth Service, log *slog.Logger, optional bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, present := bearerToken(r)
			if !present && optional {
				next.ServeHTTP(w, r)
				return
			}
			if token == "" {
				response.FromError(w, r, log, apperr.ErrMissingCredential)
				return
			}

			id, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				response.FromError(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), *id)))
		})
	}
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, добавляет субъекта в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(auth Service, log *slog.Logger) func(http.Handler) http.Handler {
	return authenticate(auth, log, false)
}

// OptionalJWTMiddleware как JWTMiddleware, но запрос без заголовка проходит анонимно.
func OptionalJWTMiddleware(auth Service, log *slog.Logger) func(http.Handler) http.Handler {
	return authenticate(auth, log, true)
}
