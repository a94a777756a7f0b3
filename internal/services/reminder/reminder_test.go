package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/careconnect/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) ListRemindersOn(ctx context.Context, date time.Time) ([]models.AppointmentReminder, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppointmentReminder), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	args := m.Called(ctx, routingKey, message)
	return args.Error(0)
}

var (
	now      = time.Date(2026, 1, 31, 18, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
)

func newService(repo *RepoMock, pub *PublisherMock) *Service {
	return New(repo, pub, time.Hour, sl.NewDiscard()).WithClock(func() time.Time { return now })
}

func TestSendTomorrow(t *testing.T) {
	first := models.AppointmentReminder{AppointmentID: 1, AccountID: "acc-1", Date: "2026-02-01", TimeSlot: "09:00 AM"}
	second := models.AppointmentReminder{AppointmentID: 2, AccountID: "acc-2", Date: "2026-02-01", TimeSlot: "10:00 AM"}

	tests := []struct {
		name      string
		setup     func(repo *RepoMock, pub *PublisherMock)
		wantSent  int
		wantError bool
	}{
		{
			name: "все опубликованы",
			setup: func(repo *RepoMock, pub *PublisherMock) {
				repo.On("ListRemindersOn", mock.Anything, tomorrow).
					Return([]models.AppointmentReminder{first, second}, nil)
				pub.On("Publish", mock.Anything, rabbitmq.ReminderRoutingKey, first).Return(nil)
				pub.On("Publish", mock.Anything, rabbitmq.ReminderRoutingKey, second).Return(nil)
			},
			wantSent: 2,
		},
		{
			name: "ошибка одной публикации",
			setup: func(repo *RepoMock, pub *PublisherMock) {
				repo.On("ListRemindersOn", mock.Anything, tomorrow).
					Return([]models.AppointmentReminder{first, second}, nil)
				pub.On("Publish", mock.Anything, rabbitmq.ReminderRoutingKey, first).Return(errors.New("channel closed"))
				pub.On("Publish", mock.Anything, rabbitmq.ReminderRoutingKey, second).Return(nil)
			},
			wantSent: 1,
		},
		{
			name: "нет записей",
			setup: func(repo *RepoMock, _ *PublisherMock) {
				repo.On("ListRemindersOn", mock.Anything, tomorrow).
					Return([]models.AppointmentReminder{}, nil)
			},
			wantSent: 0,
		},
		{
			name: "ошибка базы",
			setup: func(repo *RepoMock, _ *PublisherMock) {
				repo.On("ListRemindersOn", mock.Anything, tomorrow).
					Return(nil, errors.New("db down"))
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			pub := new(PublisherMock)
			tt.setup(repo, pub)

			sent, err := newService(repo, pub).SendTomorrow(context.Background())
			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSent, sent)
			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	repo := new(RepoMock)
	pub := new(PublisherMock)
	called := make(chan struct{}, 1)
	repo.On("ListRemindersOn", mock.Anything, tomorrow).
		Run(func(mock.Arguments) {
			select {
			case called <- struct{}{}:
			default:
			}
		}).
		Return([]models.AppointmentReminder{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newService(repo, pub).Run(ctx)
		close(done)
	}()

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("first run did not happen")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
