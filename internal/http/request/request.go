// Package request разбирает общие части HTTP-запросов: тело, параметры пути и субъект.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/careconnect/internal/http/middlewarectx"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// maxBodyBytes предел размера тела запроса.
const maxBodyBytes = 1 << 20

// Logger логгер обработчика с op и request_id.
func Logger(log *slog.Logger, r *http.Request, op string) *slog.Logger {
	return log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Decode читает JSON-тело в dst и проверяет его валидатором.
// При ошибке ответ уже записан и возвращается false.
func Decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, v *validator.Validate, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		response.BadRequest(w, r, log, err)
		return false
	}
	if v == nil {
		return true
	}
	if err := v.Struct(dst); err != nil {
		response.Invalid(w, r, log, err)
		return false
	}
	return true
}

// Identity возвращает субъекта запроса или пишет 401.
func Identity(w http.ResponseWriter, r *http.Request, log *slog.Logger) (models.Identity, bool) {
	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.FromError(w, r, log, apperr.ErrMissingCredential)
		return models.Identity{}, false
	}
	return id, true
}

// OptionalIdentity возвращает субъекта, если запрос аутентифицирован.
func OptionalIdentity(r *http.Request) *models.Identity {
	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		return nil
	}
	return &id
}

// IDParam читает положительный целый параметр пути name.
func IDParam(w http.ResponseWriter, r *http.Request, log *slog.Logger, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		response.FromError(w, r, log, apperr.Validation("invalid "+name+" in path"))
		return 0, false
	}
	return id, true
}
