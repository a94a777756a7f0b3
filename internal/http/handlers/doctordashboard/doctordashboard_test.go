package doctordashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

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

func (m *ServiceMock) TodayPatients(ctx context.Context, id models.Identity) ([]models.DoctorAppointment, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]models.DoctorAppointment)
	return out, args.Error(1)
}

func (m *ServiceMock) Schedule(ctx context.Context, id models.Identity) (*models.DoctorSchedule, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.DoctorSchedule)
	return out, args.Error(1)
}

var drGreen = models.Identity{AccountID: "acc-doc", Username: "drgreen", Role: models.RoleStaff}

func withIdentity(r *http.Request) *http.Request {
	return r.WithContext(middlewarectx.WithIdentity(r.Context(), drGreen))
}

func TestHandler_Patients(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(m *ServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "пациенты на сегодня",
			setup: func(m *ServiceMock) {
				m.On("TodayPatients", mock.Anything, drGreen).Return([]models.DoctorAppointment{
					{ID: 7, PatientName: "Alexandra Smith", PatientID: "S2023001", TimeSlot: "10:00 AM"},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"patient_id":"S2023001"`,
		},
		{
			name: "нет карточки врача",
			setup: func(m *ServiceMock) {
				m.On("TodayPatients", mock.Anything, drGreen).Return(nil, apperr.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "не персонал",
			setup: func(m *ServiceMock) {
				m.On("TodayPatients", mock.Anything, drGreen).Return(nil, apperr.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "ошибка сервиса",
			setup: func(m *ServiceMock) {
				m.On("TodayPatients", mock.Anything, drGreen).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)

			rec := httptest.NewRecorder()
			New(sl.NewDiscard(), svc).Patients(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/doctor/patients", nil)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_Schedule(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Schedule", mock.Anything, drGreen).Return(&models.DoctorSchedule{
		DoctorName: "Dr. Green",
		Specialty:  "Dermatology",
		Appointments: []models.DoctorAppointment{
			{ID: 7, PatientName: "Alexandra Smith", Date: "2026-03-05", TimeSlot: "10:00 AM", Status: "upcoming"},
		},
	}, nil)

	rec := httptest.NewRecorder()
	New(sl.NewDiscard(), svc).Schedule(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/doctor/schedule", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"doctor_name":"Dr. Green"`)
	assert.Contains(t, rec.Body.String(), `"date":"2026-03-05"`)
}

func TestHandler_NoIdentity(t *testing.T) {
	svc := new(ServiceMock)
	h := New(sl.NewDiscard(), svc)

	rec := httptest.NewRecorder()
	h.Schedule(rec, httptest.NewRequest(http.MethodGet, "/doctor/schedule", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
}
