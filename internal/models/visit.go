package models

import "time"

// Visit состоявшийся прием.
type Visit struct {
	ID            int64     `json:"id"`
	OwnerID       string    `json:"owner_id"`
	DoctorID      int64     `json:"doctor_id"`
	DoctorName    string    `json:"doctor_name"`
	AppointmentID *int64    `json:"appointment_id,omitempty"`
	VisitDate     time.Time `json:"visit_date"`
	TimeSlot      string    `json:"time_slot"`
	VisitType     string    `json:"visit_type"`
	Diagnosis     string    `json:"diagnosis,omitempty"`
	Location      string    `json:"location"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// VisitStats сводка по истории приемов.
type VisitStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// VisitHistory история приемов со сводкой.
type VisitHistory struct {
	Visits     []Visit    `json:"visits"`
	Statistics VisitStats `json:"statistics"`
}
