package logout

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/careconnect/internal/http/middlewarectx"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Logout(ctx context.Context, id models.Identity) error {
	return m.Called(ctx, id).Error(0)
}

func TestLogoutHandler(t *testing.T) {
	id := models.Identity{AccountID: "acc-1", Username: "alexandra", TokenID: "jti-1"}

	tests := []struct {
		name       string
		identity   bool
		mockErr    error
		wantStatus int
	}{
		{name: "успешный выход", identity: true, wantStatus: http.StatusOK},
		{name: "без субъекта", wantStatus: http.StatusUnauthorized},
		{name: "redis недоступен", identity: true, mockErr: errors.New("redis down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			if tt.identity {
				svc.On("Logout", mock.Anything, id).Return(tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			if tt.identity {
				req = req.WithContext(middlewarectx.WithIdentity(req.Context(), id))
			}
			rec := httptest.NewRecorder()

			New(sl.NewDiscard(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
