package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/careconnect/internal/http/middlewarectx"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Reply(ctx context.Context, id *models.Identity, req models.ChatRequest) (*models.ChatReply, error) {
	args := m.Called(ctx, id, req)
	out, _ := args.Get(0).(*models.ChatReply)
	return out, args.Error(1)
}

func (m *ServiceMock) SymptomCheck(ctx context.Context, symptom string) (*models.SymptomAdvice, error) {
	args := m.Called(ctx, symptom)
	out, _ := args.Get(0).(*models.SymptomAdvice)
	return out, args.Error(1)
}

func (m *ServiceMock) ClearConversation(ctx context.Context, id *models.Identity, conversationID string) error {
	return m.Called(ctx, id, conversationID).Error(0)
}

func (m *ServiceMock) Health() models.ChatHealth {
	return m.Called().Get(0).(models.ChatHealth)
}

var maria = models.Identity{AccountID: "acc-2", Username: "maria", Role: models.RoleStudent}

func post(h http.HandlerFunc, body string, id *models.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat/", strings.NewReader(body))
	if id != nil {
		req = req.WithContext(middlewarectx.WithIdentity(req.Context(), *id))
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandler_Message(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		identity   *models.Identity
		setup      func(m *ServiceMock)
		wantStatus int
		wantError  string
	}{
		{
			name: "анонимное сообщение",
			body: `{"message":"hello"}`,
			setup: func(m *ServiceMock) {
				m.On("Reply", mock.Anything, (*models.Identity)(nil), models.ChatRequest{Message: "hello"}).
					Return(&models.ChatReply{Reply: "Hi!", ConversationID: "c-1", Mode: "fallback"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "срочное сообщение",
			body:     `{"message":"chest pain","conversation_id":"c-2"}`,
			identity: &maria,
			setup: func(m *ServiceMock) {
				m.On("Reply", mock.Anything, &maria, models.ChatRequest{Message: "chest pain", ConversationID: "c-2"}).
					Return(&models.ChatReply{Reply: "Call 911", ConversationID: "c-2", Mode: "ai",
						UrgencyAlert: &models.Urgency{IsUrgent: true, Level: "high"}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "чужой диалог",
			body:     `{"message":"hi","conversation_id":"c-3"}`,
			identity: &maria,
			setup: func(m *ServiceMock) {
				m.On("Reply", mock.Anything, &maria, mock.Anything).Return(nil, apperr.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "таймаут модели",
			body: `{"message":"hi"}`,
			setup: func(m *ServiceMock) {
				m.On("Reply", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperr.ErrGatewayTimeout)
			},
			wantStatus: http.StatusGatewayTimeout,
			wantError:  "chatbot provider timed out",
		},
		{
			name: "ошибка модели",
			body: `{"message":"hi"}`,
			setup: func(m *ServiceMock) {
				m.On("Reply", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperr.ErrGatewayError)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "пустое сообщение",
			body:       `{"message":""}`,
			setup:      func(*ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)

			rec := post(New(sl.NewDiscard(), svc).Message, tt.body, tt.identity)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantError, got["error"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_SymptomCheck(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("SymptomCheck", mock.Anything, "sore throat").Return(&models.SymptomAdvice{
		Symptom: "sore throat", Advice: "Drink warm fluids.", Urgency: models.Urgency{Level: "normal"},
	}, nil)

	rec := post(New(sl.NewDiscard(), svc).SymptomCheck, `{"symptom":"sore throat"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"urgency_level":"normal"`)
}

func TestHandler_ClearConversation(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("ClearConversation", mock.Anything, &maria, "c-1").Return(nil)

	rec := post(New(sl.NewDiscard(), svc).ClearConversation, `{"conversation_id":"c-1"}`, &maria)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = post(New(sl.NewDiscard(), svc).ClearConversation, `{}`, &maria)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Health(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Health").Return(models.ChatHealth{Status: "operational", Mode: "fallback"})

	rec := httptest.NewRecorder()
	New(sl.NewDiscard(), svc).Health(rec, httptest.NewRequest(http.MethodGet, "/chat/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"status":"operational","mode":"fallback"}}`, rec.Body.String())
}
