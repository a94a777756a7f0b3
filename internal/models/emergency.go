package models

import "time"

// EmergencyType тип экстренного вызова.
type EmergencyType string

const (
	EmergencyMedical      EmergencyType = "medical"
	EmergencySecurity     EmergencyType = "security"
	EmergencyMentalHealth EmergencyType = "mental_health"
	EmergencyOther        EmergencyType = "other"
)

// Valid сообщает, входит ли тип в перечисление.
func (t EmergencyType) Valid() bool {
	switch t {
	case EmergencyMedical, EmergencySecurity, EmergencyMentalHealth, EmergencyOther:
		return true
	}
	return false
}

// EmergencyStatus статус экстренного вызова.
type EmergencyStatus string

const (
	EmergencyActive    EmergencyStatus = "active"
	EmergencyResponded EmergencyStatus = "responded"
	EmergencyResolved  EmergencyStatus = "resolved"
)

// Valid сообщает, входит ли статус в перечисление.
func (s EmergencyStatus) Valid() bool {
	switch s {
	case EmergencyActive, EmergencyResponded, EmergencyResolved:
		return true
	}
	return false
}

// EmergencyRequest экстренный вызов.
type EmergencyRequest struct {
	ID          int64           `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Type        EmergencyType   `json:"emergency_type"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
	Status      EmergencyStatus `json:"status"`
	Priority    string          `json:"priority"`
	CreatedAt   time.Time       `json:"created_at"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
}

// EmergencyInput данные нового вызова.
type EmergencyInput struct {
	Type        EmergencyType
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
}

// EmergencyEvent сообщение для дежурной службы.
type EmergencyEvent struct {
	RequestID   int64         `json:"request_id"`
	AccountID   string        `json:"account_id"`
	Username    string        `json:"username"`
	Type        EmergencyType `json:"emergency_type"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Latitude    *float64      `json:"latitude,omitempty"`
	Longitude   *float64      `json:"longitude,omitempty"`
	Priority    string        `json:"priority"`
	CreatedAt   time.Time     `json:"created_at"`
}
