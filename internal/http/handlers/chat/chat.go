// Package chat реализует HTTP-обработчики ассистента центра здоровья.
//
// Аутентификация на этих маршрутах может быть необязательной, поэтому субъект
// берется из контекста, если он там есть.
package chat

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/careconnect/internal/http/request"
	"github.com/magabrotheeeer/careconnect/internal/http/response"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Service описывает бизнес-логику чат-бота.
type Service interface {
	Reply(ctx context.Context, id *models.Identity, req models.ChatRequest) (*models.ChatReply, error)
	SymptomCheck(ctx context.Context, symptom string) (*models.SymptomAdvice, error)
	ClearConversation(ctx context.Context, id *models.Identity, conversationID string) error
	Health() models.ChatHealth
}

// MessageRequest сообщение ассистенту.
type MessageRequest struct {
	Message        string                  `json:"message" validate:"required,max=4000" example:"I have a headache since morning"`
	ConversationID string                  `json:"conversation_id,omitempty" validate:"max=64"`
	UserContext    *models.ChatUserContext `json:"user_context,omitempty"`
}

// SymptomRequest симптом для разовой проверки.
type SymptomRequest struct {
	Symptom string `json:"symptom" validate:"required,max=1000" example:"sore throat"`
}

// ClearRequest очистка истории диалога.
type ClearRequest struct {
	ConversationID string `json:"conversation_id" validate:"required,max=64"`
}

// Handler обрабатывает HTTP-запросы чат-бота.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler поверх шлюза чат-бота.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Message godoc
// @Summary Сообщение ассистенту
// @Description Продолжает диалог или начинает новый, если conversation_id не передан.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body MessageRequest true "Сообщение"
// @Success 200 {object} response.Response{data=models.ChatReply}
// @Failure 403 {object} response.ErrorResponse "Чужой диалог"
// @Failure 429 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Failure 504 {object} response.ErrorResponse
// @Router /chat/ [post]
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.chat.Message")

	var req MessageRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	reply, err := h.service.Reply(r.Context(), request.OptionalIdentity(r), models.ChatRequest{
		Message:        req.Message,
		ConversationID: req.ConversationID,
		UserContext:    req.UserContext,
	})
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	if reply.UrgencyAlert != nil {
		log.Warn("urgent chat message", slog.String("conversation_id", reply.ConversationID))
	}
	response.OK(w, r, reply)
}

// SymptomCheck godoc
// @Summary Проверка симптома
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body SymptomRequest true "Симптом"
// @Success 200 {object} response.Response{data=models.SymptomAdvice}
// @Failure 502 {object} response.ErrorResponse
// @Failure 504 {object} response.ErrorResponse
// @Router /chat/symptom-check [post]
func (h *Handler) SymptomCheck(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.chat.SymptomCheck")

	var req SymptomRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}
	advice, err := h.service.SymptomCheck(r.Context(), req.Symptom)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, advice)
}

// ClearConversation godoc
// @Summary Очистить историю диалога
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ClearRequest true "Диалог"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Router /chat/conversation [delete]
func (h *Handler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.chat.ClearConversation")

	var req ClearRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}
	if err := h.service.ClearConversation(r.Context(), request.OptionalIdentity(r), req.ConversationID); err != nil {
		response.FromError(w, r, log, err)
		return
	}
	response.OK(w, r, map[string]string{"message": "conversation cleared"})
}

// Health godoc
// @Summary Режим ассистента
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Response{data=models.ChatHealth}
// @Router /chat/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(h.service.Health()))
}
