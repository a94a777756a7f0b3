package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

var doctorRowColumns = []string{"id", "name", "specialty", "email", "phone", "rating",
	"reviews_count", "avatar_initials", "is_available"}

var doctorAppointmentColumns = []string{"id", "full_name", "student_id", "appointment_date",
	"time_slot", "appointment_type", "status", "notes"}

func TestCreateDoctorAccount(t *testing.T) {
	s, mock := newStorageWithMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(accountRow("acc-doc", "drgreen"))
	mock.ExpectExec(`(?s)INSERT INTO doctors \(name, specialty, email, phone, avatar_initials, account_id\)`).
		WithArgs("Alexandra Smith", "Dermatology", "drgreen@uni.edu", "555-0199", "AS", "acc-doc").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	got, err := s.CreateDoctorAccount(context.Background(), models.Account{
		Username: "drgreen", Email: "drgreen@uni.edu", PasswordHash: "h",
		FullName: "Alexandra Smith", Role: models.RoleStaff, Phone: "555-0199",
	}, "Dermatology")
	require.NoError(t, err)
	assert.Equal(t, "acc-doc", got.ID)
}

func TestCreateDoctorAccount_DuplicateRollsBack(t *testing.T) {
	s, mock := newStorageWithMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(accountRow("acc-doc", "drgreen"))
	mock.ExpectExec(`INSERT INTO doctors`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "doctors_email_key"})
	mock.ExpectRollback()

	_, err := s.CreateDoctorAccount(context.Background(), models.Account{
		Username: "drgreen", Email: "drgreen@uni.edu", FullName: "Alexandra Smith", Role: models.RoleStaff,
	}, "Dermatology")
	assert.ErrorIs(t, err, apperr.ErrDuplicateAccount)
}

func TestGetDoctorByAccount(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		wantErr error
	}{
		{
			name: "привязанный врач",
			rows: sqlmock.NewRows(doctorRowColumns).
				AddRow(int64(4), "Dr. Green", "Dermatology", "drgreen@uni.edu", "", 0.0, 0, "DG", true),
		},
		{
			name:    "нет карточки",
			rows:    sqlmock.NewRows(doctorRowColumns),
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStorageWithMock(t)
			mock.ExpectQuery(`FROM doctors WHERE account_id = \$1`).
				WithArgs("acc-doc").
				WillReturnRows(tt.rows)

			got, err := s.GetDoctorByAccount(context.Background(), "acc-doc")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(4), got.ID)
		})
	}
}

func TestListDoctorAppointments(t *testing.T) {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		onlyDate bool
		wantCond string
	}{
		{name: "только на дату", onlyDate: true, wantCond: `a.appointment_date = \$2`},
		{name: "начиная с даты", onlyDate: false, wantCond: `a.appointment_date >= \$2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStorageWithMock(t)
			mock.ExpectQuery(`(?s)JOIN users u ON u.id = a.owner_id\s+WHERE a.doctor_id = \$1 AND a.status = 'upcoming' AND `+tt.wantCond).
				WithArgs(int64(4), day).
				WillReturnRows(sqlmock.NewRows(doctorAppointmentColumns).
					AddRow(int64(7), "Alexandra Smith", "S2023001", day, "10:00 AM", "General Consultation", "upcoming", "cough"))

			got, err := s.ListDoctorAppointments(context.Background(), 4, day, tt.onlyDate)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, models.DoctorAppointment{
				ID: 7, PatientName: "Alexandra Smith", PatientID: "S2023001", Date: "2026-03-04",
				TimeSlot: "10:00 AM", Type: "General Consultation", Status: "upcoming", Notes: "cough",
			}, got[0])
		})
	}
}

func TestListDoctorAppointments_Error(t *testing.T) {
	s, mock := newStorageWithMock(t)
	mock.ExpectQuery(`FROM appointments a`).WillReturnError(errors.New("db down"))

	_, err := s.ListDoctorAppointments(context.Background(), 4, time.Now(), false)
	assert.ErrorContains(t, err, "storage.ListDoctorAppointments")
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "имя и фамилия", in: "Sarah Chen", want: "SC"},
		{name: "три слова", in: "Dr. Elena Rodriguez", want: "DE"},
		{name: "одно слово", in: "house", want: "HO"},
		{name: "кириллица", in: "анна", want: "АН"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, initials(tt.in))
		})
	}
}
