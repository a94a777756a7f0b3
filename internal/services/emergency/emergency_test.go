package emergency

import (
	"context"
	"errors"
	"testing"

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

func (m *RepoMock) CreateEmergency(ctx context.Context, ownerID string, in models.EmergencyInput, priority string) (*models.EmergencyRequest, error) {
	args := m.Called(ctx, ownerID, in, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmergencyRequest), args.Error(1)
}

func (m *RepoMock) GetEmergency(ctx context.Context, id int64) (*models.EmergencyRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmergencyRequest), args.Error(1)
}

func (m *RepoMock) ListEmergenciesByOwner(ctx context.Context, ownerID string) ([]models.EmergencyRequest, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.EmergencyRequest), args.Error(1)
}

func (m *RepoMock) ListOpenEmergencies(ctx context.Context) ([]models.EmergencyRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.EmergencyRequest), args.Error(1)
}

func (m *RepoMock) UpdateEmergencyStatus(ctx context.Context, id int64, status models.EmergencyStatus) (*models.EmergencyRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmergencyRequest), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

var (
	alexandra = models.Identity{AccountID: "acc-alexandra", Username: "alexandra", Role: models.RoleStudent}
	nurse     = models.Identity{AccountID: "acc-nurse", Role: models.RoleStaff}
)

func TestService_Create(t *testing.T) {
	in := models.EmergencyInput{Type: models.EmergencyMedical, Location: "Library, 2nd floor"}
	created := &models.EmergencyRequest{ID: 4, OwnerID: "acc-alexandra", Type: models.EmergencyMedical,
		Location: "Library, 2nd floor", Status: models.EmergencyActive, Priority: "high"}

	tests := []struct {
		name       string
		publishErr error
	}{
		{name: "опубликован"},
		{name: "брокер недоступен", publishErr: errors.New("channel closed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, pub := new(RepoMock), new(PublisherMock)
			repo.On("CreateEmergency", mock.Anything, "acc-alexandra", in, "high").Return(created, nil).Once()
			pub.On("Publish", mock.Anything, "emergency.medical", mock.MatchedBy(func(ev models.EmergencyEvent) bool {
				return ev.RequestID == 4 && ev.Username == "alexandra" && ev.Priority == "high"
			})).Return(tt.publishErr).Once()

			got, err := New(repo, pub, sl.NewDiscard()).Create(context.Background(), alexandra, in)
			require.NoError(t, err)
			assert.Equal(t, int64(4), got.ID)
			pub.AssertExpectations(t)
		})
	}
}

func TestService_Create_InvalidType(t *testing.T) {
	repo := new(RepoMock)
	_, err := New(repo, nil, sl.NewDiscard()).Create(context.Background(), alexandra, models.EmergencyInput{Type: "fire"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	repo.AssertNotCalled(t, "CreateEmergency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_NoPublisher(t *testing.T) {
	repo := new(RepoMock)
	in := models.EmergencyInput{Type: models.EmergencySecurity}
	repo.On("CreateEmergency", mock.Anything, "acc-alexandra", in, "high").
		Return(&models.EmergencyRequest{ID: 1, Type: models.EmergencySecurity}, nil).Once()

	_, err := New(repo, nil, sl.NewDiscard()).Create(context.Background(), alexandra, in)
	require.NoError(t, err)
}

func TestService_List(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListEmergenciesByOwner", mock.Anything, "acc-alexandra").Return([]models.EmergencyRequest{{ID: 1}}, nil).Once()
	repo.On("ListOpenEmergencies", mock.Anything).Return([]models.EmergencyRequest{{ID: 1}, {ID: 2}}, nil).Once()
	svc := New(repo, nil, sl.NewDiscard())

	own, err := svc.List(context.Background(), alexandra)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.List(context.Background(), nurse)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	repo.AssertExpectations(t)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		id      models.Identity
		status  models.EmergencyStatus
		current models.EmergencyStatus
		wantErr error
	}{
		{name: "персонал закрывает", id: nurse, status: models.EmergencyResolved, current: models.EmergencyActive},
		{name: "студенту запрещено", id: alexandra, status: models.EmergencyResolved, wantErr: apperr.ErrForbidden},
		{name: "неизвестный статус", id: nurse, status: "done", wantErr: apperr.ErrValidation},
		{name: "уже закрыт", id: nurse, status: models.EmergencyResponded, current: models.EmergencyResolved, wantErr: apperr.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.current != "" {
				repo.On("GetEmergency", mock.Anything, int64(4)).
					Return(&models.EmergencyRequest{ID: 4, Status: tt.current}, nil).Once()
			}
			if tt.wantErr == nil {
				repo.On("UpdateEmergencyStatus", mock.Anything, int64(4), tt.status).
					Return(&models.EmergencyRequest{ID: 4, Status: tt.status}, nil).Once()
			}

			got, err := New(repo, nil, sl.NewDiscard()).UpdateStatus(context.Background(), tt.id, 4, tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			repo.AssertExpectations(t)
		})
	}
}
