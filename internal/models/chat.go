package models

import "time"

// ChatMessage сообщение диалога с ассистентом.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatUserContext сведения о пользователе, которые подмешиваются в подсказку.
type ChatUserContext struct {
	Name      string `json:"name,omitempty"`
	StudentID string `json:"student_id,omitempty"`
}

// ChatRequest запрос к ассистенту.
type ChatRequest struct {
	Message        string
	ConversationID string
	UserContext    *ChatUserContext
}

// Urgency результат анализа срочности.
type Urgency struct {
	IsUrgent       bool   `json:"is_urgent"`
	Level          string `json:"urgency_level"`
	Recommendation string `json:"recommendation,omitempty"`
}

// ChatReply ответ ассистента.
type ChatReply struct {
	Reply          string   `json:"reply"`
	ConversationID string   `json:"conversation_id"`
	TokensUsed     int      `json:"tokens_used"`
	Model          string   `json:"model,omitempty"`
	Mode           string   `json:"mode"`
	UrgencyAlert   *Urgency `json:"urgency_alert,omitempty"`
}

// SymptomAdvice ответ на проверку симптома.
type SymptomAdvice struct {
	Symptom    string  `json:"symptom"`
	Advice     string  `json:"advice"`
	Urgency    Urgency `json:"urgency"`
	TokensUsed int     `json:"tokens_used"`
	Mode       string  `json:"mode"`
}

// ChatHealth состояние шлюза.
type ChatHealth struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
	Model  string `json:"model,omitempty"`
}

// Prompt запрос к языковой модели.
type Prompt struct {
	System  string
	History []ChatMessage
	Message string
}

// Completion ответ языковой модели.
type Completion struct {
	Text       string
	TokensUsed int
	Model      string
}
