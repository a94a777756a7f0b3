package visits

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/careconnect/internal/http/middlewarectx"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) History(ctx context.Context, id models.Identity) (*models.VisitHistory, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.VisitHistory)
	return out, args.Error(1)
}

func (m *ServiceMock) Recent(ctx context.Context, id models.Identity, limit int) ([]models.Visit, error) {
	args := m.Called(ctx, id, limit)
	out, _ := args.Get(0).([]models.Visit)
	return out, args.Error(1)
}

var alexandra = models.Identity{AccountID: "acc-1", Username: "alexandra", Role: models.RoleStudent}

func withIdentity(r *http.Request) *http.Request {
	return r.WithContext(middlewarectx.WithIdentity(r.Context(), alexandra))
}

func TestHandler_All(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("History", mock.Anything, alexandra).Return(&models.VisitHistory{
		Visits:     []models.Visit{{ID: 1, Status: "completed"}},
		Statistics: models.VisitStats{Total: 1, Completed: 1},
	}, nil)

	rec := httptest.NewRecorder()
	New(sl.NewDiscard(), svc).All(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/visits/all", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"statistics":{"total":1,"upcoming":0,"completed":1,"cancelled":0}`)
}

func TestHandler_Recent(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantLimit  int
		wantStatus int
	}{
		{name: "по умолчанию", target: "/visits/recent", wantLimit: 0, wantStatus: http.StatusOK},
		{name: "свой лимит", target: "/visits/recent?limit=5", wantLimit: 5, wantStatus: http.StatusOK},
		{name: "ноль", target: "/visits/recent?limit=0", wantStatus: http.StatusUnprocessableEntity},
		{name: "слишком много", target: "/visits/recent?limit=500", wantStatus: http.StatusUnprocessableEntity},
		{name: "не число", target: "/visits/recent?limit=all", wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.wantStatus == http.StatusOK {
				svc.On("Recent", mock.Anything, alexandra, tt.wantLimit).Return([]models.Visit{}, nil)
			}

			rec := httptest.NewRecorder()
			New(sl.NewDiscard(), svc).Recent(rec, withIdentity(httptest.NewRequest(http.MethodGet, tt.target, nil)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
