package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	args := m.Called(ctx, username, password)
	resp, _ := args.Get(0).(*models.LoginResult)
	return resp, args.Error(1)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	result := &models.LoginResult{
		AccessToken: "tok",
		TokenType:   "bearer",
		ExpiresIn:   86400,
		User:        models.PublicProfile{Username: "alexandra", Role: models.RoleStudent},
	}

	tests := []struct {
		name           string
		body           string
		mockResp       *models.LoginResult
		mockErr        error
		callService    bool
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "успешный вход",
			body:           `{"username":"alexandra","password":"password123"}`,
			mockResp:       result,
			callService:    true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "неверный пароль",
			body:           `{"username":"alexandra","password":"wrong"}`,
			mockErr:        apperr.ErrInvalidCredentials,
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "incorrect username or password",
		},
		{
			name:           "нет логина",
			body:           `{"password":"password123"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Username is a required field",
		},
		{
			name:           "битый json",
			body:           `{"username":`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "внутренняя ошибка",
			body:           `{"username":"alexandra","password":"password123"}`,
			mockErr:        errors.New("db down"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(sl.NewDiscard(), authMock)
			if tt.callService {
				authMock.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(tt.mockResp, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				data := got["data"].(map[string]any)
				assert.Equal(t, "tok", data["access_token"])
				assert.Equal(t, "bearer", data["token_type"])
				assert.EqualValues(t, 86400, data["expires_in"])
			}
			authMock.AssertExpectations(t)
		})
	}
}
