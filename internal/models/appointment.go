package models

import (
	"fmt"
	"time"
)

// AppointmentStatus статус записи к врачу.
type AppointmentStatus string

const (
	AppointmentUpcoming  AppointmentStatus = "upcoming"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// TimeSlotLayout формат слота, например "09:30 AM".
const TimeSlotLayout = "03:04 PM"

// TimeSlots фиксированная сетка приема, шаг 30 минут, обед с 13:00 до 14:00.
var TimeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM", "02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM",
	"04:00 PM", "04:30 PM", "05:00 PM",
}

// ValidTimeSlot сообщает, есть ли слот в сетке.
func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotStart возвращает момент начала слота slot в день date.
func SlotStart(date time.Time, slot string) (time.Time, error) {
	t, err := time.Parse(TimeSlotLayout, slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time slot %q: %w", slot, err)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// Appointment запись студента к врачу.
type Appointment struct {
	ID         int64             `json:"id"`
	OwnerID    string            `json:"owner_id"`
	DoctorID   int64             `json:"doctor_id"`
	DoctorName string            `json:"doctor_name"`
	Specialty  string            `json:"specialty"`
	Date       time.Time         `json:"-"`
	TimeSlot   string            `json:"time_slot"`
	Type       string            `json:"appointment_type"`
	Location   string            `json:"location"`
	Status     AppointmentStatus `json:"status"`
	Notes      string            `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// DateString дата записи в формате API.
func (a *Appointment) DateString() string {
	return a.Date.Format(DateLayout)
}

// AppointmentView представление записи в ответах.
type AppointmentView struct {
	*Appointment
	Date          string   `json:"date"`
	CanReschedule *bool    `json:"can_reschedule,omitempty"`
	HoursUntil    *float64 `json:"hours_until,omitempty"`
}

// BookingRequest данные для записи к врачу.
type BookingRequest struct {
	DoctorID int64
	Date     string
	TimeSlot string
	Type     string
	Notes    string
}

// VisitCompletion итог приема, который вносит персонал.
type VisitCompletion struct {
	Diagnosis string
	Notes     string
}

// AppointmentReminder событие-напоминание о приеме на следующий день.
type AppointmentReminder struct {
	AppointmentID int64  `json:"appointment_id"`
	AccountID     string `json:"account_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	DoctorName    string `json:"doctor_name"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
	Location      string `json:"location"`
}
