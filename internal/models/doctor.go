package models

// Doctor врач медицинского центра.
type Doctor struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialty      string  `json:"specialty"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Rating         float64 `json:"rating"`
	ReviewsCount   int     `json:"reviews_count"`
	AvatarInitials string  `json:"avatar_initials"`
	IsAvailable    bool    `json:"is_available"`
}

// AvailableSlots свободные слоты врача на дату.
type AvailableSlots struct {
	DoctorID int64    `json:"doctor_id"`
	Date     string   `json:"date"`
	Slots    []string `json:"available_slots"`
}

// DoctorAppointment запись пациента в кабинете врача.
type DoctorAppointment struct {
	ID          int64  `json:"id"`
	PatientName string `json:"patient_name"`
	PatientID   string `json:"patient_id"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

// DoctorSchedule предстоящие приемы врача.
type DoctorSchedule struct {
	DoctorName   string              `json:"doctor_name"`
	Specialty    string              `json:"specialty"`
	Appointments []DoctorAppointment `json:"appointments"`
}
