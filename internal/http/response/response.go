// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Тексты, которые уходят клиенту. Детали ошибки остаются в логе.
const (
	MsgInvalidBody     = "invalid request body"
	MsgUnauthenticated = "could not validate credentials"
	MsgInvalidLogin    = "incorrect username or password"
	MsgForbidden       = "not enough permissions"
	MsgNotFound        = "resource not found"
	MsgConflict        = "resource state conflict"
	MsgDuplicate       = "username, email or student id already registered"
	MsgGatewayTimeout  = "chatbot provider timed out"
	MsgGatewayError    = "chatbot provider failed"
	MsgInternal        = "internal error"
	MsgTooManyRequests = "too many requests"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// Status сопоставляет доменную ошибку со статусом ответа и текстом для клиента.
func Status(err error) (int, string) {
	if msg, ok := apperr.Message(err); ok {
		return http.StatusUnprocessableEntity, msg
	}
	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidLogin
	case errors.Is(err, apperr.ErrMissingCredential),
		errors.Is(err, apperr.ErrUnauthenticated),
		errors.Is(err, apperr.ErrAccountNotFound):
		return http.StatusUnauthorized, MsgUnauthenticated
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, MsgForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, MsgNotFound
	case errors.Is(err, apperr.ErrDuplicateAccount):
		return http.StatusConflict, MsgDuplicate
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, MsgConflict
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperr.ErrGatewayTimeout):
		return http.StatusGatewayTimeout, MsgGatewayTimeout
	case errors.Is(err, apperr.ErrGatewayError):
		return http.StatusBadGateway, MsgGatewayError
	}
	return http.StatusInternalServerError, MsgInternal
}

// FromError пишет ответ с ошибкой. Внутренние ошибки логируются как Error,
// ожидаемые доменные как Info.
func FromError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway && status != http.StatusGatewayTimeout {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Info("request rejected", slog.Int("status", status), sl.Err(err))
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}

// BadRequest ответ на тело запроса, которое не удалось разобрать.
func BadRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Info("failed to decode request body", sl.Err(err))
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Error(MsgInvalidBody))
}

// Invalid ответ на ошибки валидатора.
func Invalid(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Info("validation failed", sl.Err(err))
	render.Status(r, http.StatusUnprocessableEntity)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		render.JSON(w, r, ValidationError(verrs))
		return
	}
	render.JSON(w, r, Error(err.Error()))
}

// OK ответ с данными и статусом 200.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	render.JSON(w, r, StatusOKWithData(data))
}

// Created ответ с данными и статусом 201.
func Created(w http.ResponseWriter, r *http.Request, data any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, StatusOKWithData(data))
}
