package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateAppointment(ctx context.Context, a models.Appointment) (*models.Appointment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *RepoMock) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *RepoMock) ListAppointments(ctx context.Context, ownerID string) ([]models.Appointment, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *RepoMock) ListUpcomingAppointments(ctx context.Context, ownerID string, from time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, ownerID, from)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *RepoMock) RescheduleAppointment(ctx context.Context, id int64, date time.Time, slot string) (*models.Appointment, error) {
	args := m.Called(ctx, id, date, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *RepoMock) CancelAppointment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) CompleteAppointment(ctx context.Context, id int64, v models.Visit) (*models.Visit, error) {
	args := m.Called(ctx, id, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

type DoctorsMock struct {
	mock.Mock
}

func (m *DoctorsMock) GetDoctor(ctx context.Context, id int64) (*models.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

var (
	now       = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	alexandra = models.Identity{AccountID: "acc-alexandra", Role: models.RoleStudent}
	bob       = models.Identity{AccountID: "acc-bob", Role: models.RoleStudent}
	nurse     = models.Identity{AccountID: "acc-nurse", Role: models.RoleStaff}
	admin     = models.Identity{AccountID: "acc-admin", Role: models.RoleAdmin}
)

func newService() (*Service, *RepoMock, *DoctorsMock) {
	repo, doctors := new(RepoMock), new(DoctorsMock)
	svc := New(repo, doctors, sl.NewDiscard()).WithClock(func() time.Time { return now })
	return svc, repo, doctors
}

func day(s string) time.Time {
	d, _ := time.Parse(models.DateLayout, s)
	return d
}

func appointmentOf(owner string, date, slot string, status models.AppointmentStatus) *models.Appointment {
	return &models.Appointment{ID: 5, OwnerID: owner, DoctorID: 1, DoctorName: "Dr. Sarah Chen",
		Date: day(date), TimeSlot: slot, Type: "General Consultation",
		Location: "Campus Health Center, Room 101", Status: status}
}

func TestService_Book(t *testing.T) {
	tests := []struct {
		name       string
		req        models.BookingRequest
		setupMocks func(r *RepoMock, d *DoctorsMock)
		wantErr    error
	}{
		{
			name: "успешная запись",
			req:  models.BookingRequest{DoctorID: 1, Date: "2026-03-03", TimeSlot: "09:30 AM"},
			setupMocks: func(r *RepoMock, d *DoctorsMock) {
				d.On("GetDoctor", mock.Anything, int64(1)).Return(&models.Doctor{ID: 1, IsAvailable: true}, nil).Once()
				r.On("CreateAppointment", mock.Anything, models.Appointment{
					OwnerID: "acc-alexandra", DoctorID: 1, Date: day("2026-03-03"), TimeSlot: "09:30 AM",
					Type: "General Consultation", Location: "Campus Health Center, Room 101",
					Status: models.AppointmentUpcoming,
				}).Return(appointmentOf("acc-alexandra", "2026-03-03", "09:30 AM", models.AppointmentUpcoming), nil).Once()
			},
		},
		{
			name:    "неверная дата",
			req:     models.BookingRequest{DoctorID: 1, Date: "03/03/2026", TimeSlot: "09:30 AM"},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "слот вне сетки",
			req:     models.BookingRequest{DoctorID: 1, Date: "2026-03-03", TimeSlot: "01:00 PM"},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "в прошлом",
			req:     models.BookingRequest{DoctorID: 1, Date: "2026-03-02", TimeSlot: "09:30 AM"},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "врач не принимает",
			req:  models.BookingRequest{DoctorID: 2, Date: "2026-03-03", TimeSlot: "09:30 AM"},
			setupMocks: func(_ *RepoMock, d *DoctorsMock) {
				d.On("GetDoctor", mock.Anything, int64(2)).Return(&models.Doctor{ID: 2, IsAvailable: false}, nil).Once()
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "нет врача",
			req:  models.BookingRequest{DoctorID: 9, Date: "2026-03-03", TimeSlot: "09:30 AM"},
			setupMocks: func(_ *RepoMock, d *DoctorsMock) {
				d.On("GetDoctor", mock.Anything, int64(9)).Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "слот занят",
			req:  models.BookingRequest{DoctorID: 1, Date: "2026-03-03", TimeSlot: "09:30 AM"},
			setupMocks: func(r *RepoMock, d *DoctorsMock) {
				d.On("GetDoctor", mock.Anything, int64(1)).Return(&models.Doctor{ID: 1, IsAvailable: true}, nil).Once()
				r.On("CreateAppointment", mock.Anything, mock.Anything).Return(nil, apperr.ErrConflict).Once()
			},
			wantErr: apperr.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, doctors := newService()
			if tt.setupMocks != nil {
				tt.setupMocks(repo, doctors)
			}

			got, err := svc.Book(context.Background(), alexandra, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2026-03-03", got.Date)
			repo.AssertExpectations(t)
			doctors.AssertExpectations(t)
		})
	}
}

func TestService_Get_Ownership(t *testing.T) {
	tests := []struct {
		name    string
		id      models.Identity
		wantErr error
	}{
		{name: "владелец", id: alexandra},
		{name: "чужой студент", id: bob, wantErr: apperr.ErrForbidden},
		{name: "персонал не обходит владение", id: nurse, wantErr: apperr.ErrForbidden},
		{name: "администратор", id: admin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService()
			repo.On("GetAppointment", mock.Anything, int64(5)).
				Return(appointmentOf("acc-alexandra", "2026-03-05", "09:30 AM", models.AppointmentUpcoming), nil).Once()

			got, err := svc.Get(context.Background(), tt.id, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), got.ID)
		})
	}
}

func TestService_List(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("ListAppointments", mock.Anything, "acc-alexandra").Return([]models.Appointment{
		*appointmentOf("acc-alexandra", "2026-03-05", "09:30 AM", models.AppointmentUpcoming),
	}, nil).Once()
	repo.On("ListAppointments", mock.Anything, "").Return([]models.Appointment{}, nil).Once()

	got, err := svc.List(context.Background(), alexandra)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-03-05", got[0].Date)

	_, err = svc.List(context.Background(), admin)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Upcoming(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("ListUpcomingAppointments", mock.Anything, "acc-alexandra", day("2026-03-02")).Return([]models.Appointment{
		*appointmentOf("acc-alexandra", "2026-03-02", "04:00 PM", models.AppointmentUpcoming),
		*appointmentOf("acc-alexandra", "2026-03-04", "09:00 AM", models.AppointmentUpcoming),
	}, nil).Once()

	got, err := svc.Upcoming(context.Background(), alexandra)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].CanReschedule)
	assert.False(t, *got[0].CanReschedule)
	assert.InDelta(t, 6.0, *got[0].HoursUntil, 0.001)

	require.NotNil(t, got[1].CanReschedule)
	assert.True(t, *got[1].CanReschedule)
}

func TestService_Reschedule(t *testing.T) {
	tests := []struct {
		name     string
		existing *models.Appointment
		id       models.Identity
		date     string
		slot     string
		wantErr  error
	}{
		{
			name:     "успешный перенос",
			existing: appointmentOf("acc-alexandra", "2026-03-05", "09:30 AM", models.AppointmentUpcoming),
			id:       alexandra,
			date:     "2026-03-06",
			slot:     "10:00 AM",
		},
		{
			name:     "меньше 12 часов",
			existing: appointmentOf("acc-alexandra", "2026-03-02", "04:00 PM", models.AppointmentUpcoming),
			id:       alexandra,
			date:     "2026-03-06",
			slot:     "10:00 AM",
			wantErr:  apperr.ErrValidation,
		},
		{
			name:     "отмененная",
			existing: appointmentOf("acc-alexandra", "2026-03-05", "09:30 AM", models.AppointmentCancelled),
			id:       alexandra,
			date:     "2026-03-06",
			slot:     "10:00 AM",
			wantErr:  apperr.ErrConflict,
		},
		{
			name:     "чужая",
			existing: appointmentOf("acc-alexandra", "2026-03-05", "09:30 AM", models.AppointmentUpcoming),
			id:       bob,
			date:     "2026-03-06",
			slot:     "10:00 AM",
			wantErr:  apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService()
			repo.On("GetAppointment", mock.Anything, int64(5)).Return(tt.existing, nil).Once()
			if tt.wantErr == nil {
				repo.On("RescheduleAppointment", mock.Anything, int64(5), day(tt.date), tt.slot).
					Return(appointmentOf("acc-alexandra", tt.date, tt.slot, models.AppointmentUpcoming), nil).Once()
			}

			got, err := svc.Reschedule(context.Background(), tt.id, 5, tt.date, tt.slot)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "RescheduleAppointment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.date, got.Date)
			assert.Equal(t, tt.slot, got.TimeSlot)
		})
	}
}

func TestService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		id        models.Identity
		cancelErr error
		wantErr   error
	}{
		{name: "владелец", id: alexandra},
		{name: "администратор", id: admin},
		{name: "другой студент", id: bob, wantErr: apperr.ErrForbidden},
		{name: "гонка отмен", id: alexandra, cancelErr: apperr.ErrConflict, wantErr: apperr.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService()
			repo.On("GetAppointment", mock.Anything, int64(5)).
				Return(appointmentOf("acc-alexandra", "2026-03-05", "09:30 AM", models.AppointmentUpcoming), nil).Once()
			if !assert.ObjectsAreEqual(tt.wantErr, apperr.ErrForbidden) {
				repo.On("CancelAppointment", mock.Anything, int64(5)).Return(tt.cancelErr).Once()
			}

			err := svc.Cancel(context.Background(), tt.id, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Complete(t *testing.T) {
	t.Run("студенту запрещено", func(t *testing.T) {
		svc, repo, _ := newService()
		_, err := svc.Complete(context.Background(), alexandra, 5, models.VisitCompletion{})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		repo.AssertNotCalled(t, "GetAppointment", mock.Anything, mock.Anything)
	})

	t.Run("персонал закрывает прием", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("GetAppointment", mock.Anything, int64(5)).
			Return(appointmentOf("acc-alexandra", "2026-03-02", "09:30 AM", models.AppointmentUpcoming), nil).Once()
		repo.On("CompleteAppointment", mock.Anything, int64(5), mock.MatchedBy(func(v models.Visit) bool {
			return v.OwnerID == "acc-alexandra" && v.Diagnosis == "Common cold" && v.Status == "completed"
		})).Return(&models.Visit{ID: 11, OwnerID: "acc-alexandra"}, nil).Once()

		got, err := svc.Complete(context.Background(), nurse, 5, models.VisitCompletion{Diagnosis: "Common cold"})
		require.NoError(t, err)
		assert.Equal(t, int64(11), got.ID)
	})

	t.Run("уже закрыт", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("GetAppointment", mock.Anything, int64(5)).
			Return(appointmentOf("acc-alexandra", "2026-03-02", "09:30 AM", models.AppointmentCompleted), nil).Once()

		_, err := svc.Complete(context.Background(), admin, 5, models.VisitCompletion{})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}
