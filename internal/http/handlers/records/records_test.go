package records

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/careconnect/internal/http/middlewarectx"
	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, id models.Identity) (*models.GroupedRecords, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.GroupedRecords)
	return out, args.Error(1)
}

func (m *ServiceMock) Add(ctx context.Context, id models.Identity, in models.RecordInput) (*models.MedicalRecord, error) {
	args := m.Called(ctx, id, in)
	out, _ := args.Get(0).(*models.MedicalRecord)
	return out, args.Error(1)
}

func (m *ServiceMock) Update(ctx context.Context, id models.Identity, recordID int64, in models.RecordInput) (*models.MedicalRecord, error) {
	args := m.Called(ctx, id, recordID, in)
	out, _ := args.Get(0).(*models.MedicalRecord)
	return out, args.Error(1)
}

func (m *ServiceMock) Deactivate(ctx context.Context, id models.Identity, recordID int64) error {
	return m.Called(ctx, id, recordID).Error(0)
}

func (m *ServiceMock) Delete(ctx context.Context, id models.Identity, recordID int64) error {
	return m.Called(ctx, id, recordID).Error(0)
}

var alexandra = models.Identity{AccountID: "acc-1", Username: "alexandra", Role: models.RoleStudent}

func router(svc Service) http.Handler {
	h := New(sl.NewDiscard(), svc)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middlewarectx.WithIdentity(req.Context(), alexandra)))
		})
	})
	r.Get("/medical-records", h.List)
	r.Post("/medical-records/entry", h.Add)
	r.Put("/medical-records/{id}", h.Update)
	r.Delete("/medical-records/{id}", h.Deactivate)
	r.Delete("/medical-records/{id}/permanent", h.Delete)
	return r
}

func do(svc Service, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	router(svc).ServeHTTP(rec, httptest.NewRequest(method, target, rd))
	return rec
}

func TestHandler_List(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("List", mock.Anything, alexandra).Return(&models.GroupedRecords{
		Allergies:   []models.MedicalRecord{{ID: 1, Type: models.RecordAllergy, Name: "Penicillin"}},
		Medications: []models.MedicalRecord{},
		Conditions:  []models.MedicalRecord{},
	}, nil)

	rec := do(svc, http.MethodGet, "/medical-records", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"medications":[]`)
	assert.Contains(t, rec.Body.String(), "Penicillin")
}

func TestHandler_Add(t *testing.T) {
	diagnosed := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		setup      func(m *ServiceMock)
		wantStatus int
	}{
		{
			name: "аллергия",
			body: `{"type":"allergy","name":"Penicillin","severity":"severe","diagnosed_date":"2024-09-01"}`,
			setup: func(m *ServiceMock) {
				m.On("Add", mock.Anything, alexandra, models.RecordInput{
					Type: models.RecordAllergy, Name: "Penicillin", Severity: "severe", DiagnosedDate: &diagnosed,
				}).Return(&models.MedicalRecord{ID: 3, Type: models.RecordAllergy, Name: "Penicillin"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "неизвестный тип",
			body: `{"type":"unknown","name":"X"}`,
			setup: func(m *ServiceMock) {
				m.On("Add", mock.Anything, alexandra, models.RecordInput{Type: "unknown", Name: "X"}).
					Return(nil, apperr.Validation(`invalid record type "unknown": must be allergy, medication or condition`))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "кривая дата",
			body:       `{"type":"condition","name":"Asthma","diagnosed_date":"01/09/2024"}`,
			setup:      func(*ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "нет названия",
			body:       `{"type":"condition"}`,
			setup:      func(*ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)

			rec := do(svc, http.MethodPost, "/medical-records/entry", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Update(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Update", mock.Anything, alexandra, int64(3), models.RecordInput{Type: models.RecordMedication, Name: "Ibuprofen"}).
		Return(nil, apperr.ErrForbidden)

	rec := do(svc, http.MethodPut, "/medical-records/3", `{"type":"medication","name":"Ibuprofen"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_Remove(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Deactivate", mock.Anything, alexandra, int64(3)).Return(nil)
	svc.On("Delete", mock.Anything, alexandra, int64(4)).Return(apperr.ErrNotFound)

	rec := do(svc, http.MethodDelete, "/medical-records/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(svc, http.MethodDelete, "/medical-records/4/permanent", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertExpectations(t)
}
