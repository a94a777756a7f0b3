// Package chat шлюз к языковой модели для ассистента центра здоровья.
//
// Без ключа модели сервис работает в ограниченном режиме и отвечает
// заготовками по ключевым словам.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/lib/metrics"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

const (
	ModeAI       = "ai"
	ModeFallback = "fallback"

	// HistoryWindow сколько последних сообщений диалога уходит в модель.
	HistoryWindow = 10
	// HistoryLimit сколько сообщений диалога хранится.
	HistoryLimit = 20
)

// Provider языковая модель.
type Provider interface {
	Complete(ctx context.Context, p models.Prompt) (*models.Completion, error)
	Model() string
}

// History хранилище диалогов.
type History interface {
	AppendMessages(ctx context.Context, conversationID string, msgs ...models.ChatMessage) error
	History(ctx context.Context, conversationID string, n int) ([]models.ChatMessage, error)
	ClaimConversation(ctx context.Context, conversationID, ownerID string) (bool, error)
	DeleteConversation(ctx context.Context, conversationID string) error
}

// Service ассистент. provider == nil включает ограниченный режим.
type Service struct {
	provider Provider
	history  History
	timeout  time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// New создает сервис ассистента.
func New(provider Provider, history History, timeout time.Duration, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		history:  history,
		timeout:  timeout,
		log:      log,
		now:      time.Now,
	}
}

// Mode текущий режим работы.
func (s *Service) Mode() string {
	if s.provider == nil {
		return ModeFallback
	}
	return ModeAI
}

func ownerOf(id *models.Identity) string {
	if id == nil {
		return ""
	}
	return id.AccountID
}

func (s *Service) claim(ctx context.Context, id *models.Identity, conversationID string) error {
	ok, err := s.history.ClaimConversation(ctx, conversationID, ownerOf(id))
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrForbidden
	}
	return nil
}

func (s *Service) complete(ctx context.Context, p models.Prompt) (*models.Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	out, err := s.provider.Complete(ctx, p)
	switch {
	case err == nil:
		metrics.ObserveProvider("ok", started)
	case errors.Is(err, apperr.ErrGatewayTimeout):
		metrics.ObserveProvider("timeout", started)
	default:
		metrics.ObserveProvider("error", started)
	}
	return out, err
}

// Reply отвечает на сообщение в рамках диалога. id == nil означает анонимный запрос.
func (s *Service) Reply(ctx context.Context, id *models.Identity, req models.ChatRequest) (*models.ChatReply, error) {
	const op = "chat.Reply"

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperr.Validation("message is required")
	}
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	if err := s.claim(ctx, id, conversationID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reply := &models.ChatReply{ConversationID: conversationID, Mode: s.Mode()}
	if urgency := AnalyzeUrgency(message); urgency.IsUrgent {
		reply.UrgencyAlert = &urgency
	}

	if s.provider == nil {
		reply.Reply = FallbackReply(message)
		return reply, nil
	}

	history, err := s.history.History(ctx, conversationID, HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userCtx := req.UserContext
	if userCtx == nil && id != nil {
		userCtx = &models.ChatUserContext{Name: id.FullName, StudentID: id.StudentID}
	}

	out, err := s.complete(ctx, models.Prompt{
		System:  buildSystem(userCtx),
		History: history,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	if err := s.history.AppendMessages(ctx, conversationID,
		models.ChatMessage{Role: models.ChatRoleUser, Content: message, Timestamp: now},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: out.Text, Timestamp: now},
	); err != nil {
		s.log.Warn("failed to save conversation",
			slog.String("conversation_id", conversationID), sl.Err(err))
	}

	reply.Reply = out.Text
	reply.TokensUsed = out.TokensUsed
	reply.Model = out.Model
	return reply, nil
}

// SymptomCheck разовый совет по симптому без истории диалога.
func (s *Service) SymptomCheck(ctx context.Context, symptom string) (*models.SymptomAdvice, error) {
	const op = "chat.SymptomCheck"

	symptom = strings.TrimSpace(symptom)
	if symptom == "" {
		return nil, apperr.Validation("symptom is required")
	}

	advice := &models.SymptomAdvice{
		Symptom: symptom,
		Urgency: AnalyzeUrgency(symptom),
		Mode:    s.Mode(),
	}
	if s.provider == nil {
		advice.Advice = FallbackReply(symptom)
		return advice, nil
	}

	out, err := s.complete(ctx, models.Prompt{
		System:  systemPrompt,
		Message: fmt.Sprintf(symptomTemplate, symptom),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	advice.Advice = out.Text
	advice.TokensUsed = out.TokensUsed
	return advice, nil
}

// ClearConversation удаляет историю диалога, если он принадлежит субъекту.
func (s *Service) ClearConversation(ctx context.Context, id *models.Identity, conversationID string) error {
	const op = "chat.ClearConversation"

	if conversationID == "" {
		return apperr.Validation("conversation_id is required")
	}
	if err := s.claim(ctx, id, conversationID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.history.DeleteConversation(ctx, conversationID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Health состояние ассистента.
func (s *Service) Health() models.ChatHealth {
	h := models.ChatHealth{Status: "operational", Mode: s.Mode()}
	if s.provider != nil {
		h.Model = s.provider.Model()
	}
	return h
}
