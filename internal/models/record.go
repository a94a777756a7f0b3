package models

import "time"

// RecordType тип записи медицинской карты.
type RecordType string

const (
	RecordAllergy    RecordType = "allergy"
	RecordMedication RecordType = "medication"
	RecordCondition  RecordType = "condition"
)

// Valid сообщает, входит ли тип в перечисление.
func (t RecordType) Valid() bool {
	switch t {
	case RecordAllergy, RecordMedication, RecordCondition:
		return true
	}
	return false
}

// MedicalRecord запись медицинской карты.
type MedicalRecord struct {
	ID            int64      `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Type          RecordType `json:"record_type"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Severity      string     `json:"severity,omitempty"`
	DiagnosedDate *time.Time `json:"diagnosed_date,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RecordInput данные для создания или изменения записи.
type RecordInput struct {
	Type          RecordType
	Name          string
	Description   string
	Severity      string
	DiagnosedDate *time.Time
}

// GroupedRecords активные записи, сгруппированные по типу.
type GroupedRecords struct {
	Allergies   []MedicalRecord `json:"allergies"`
	Medications []MedicalRecord `json:"medications"`
	Conditions  []MedicalRecord `json:"conditions"`
}
