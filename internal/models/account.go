// Package models содержит доменные типы CareConnect.
package models

import "time"

// Role роль учетной записи.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// Valid сообщает, входит ли роль в перечисление.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// DateLayout формат дат в API.
const DateLayout = "2006-01-02"

// Account учетная запись. PasswordHash никогда не уходит наружу.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string `json:"-"`
	FullName     string
	Role         Role
	StudentID    string
	Institution  string
	Program      string
	Phone        string
	DateOfBirth  *time.Time
	Gender       string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile внешнее представление аккаунта.
type PublicProfile struct {
	ID               string            `json:"id"`
	Username         string            `json:"username"`
	Email            string            `json:"email"`
	FullName         string            `json:"full_name"`
	Role             Role              `json:"role"`
	StudentID        string            `json:"student_id,omitempty"`
	Institution      string            `json:"institution,omitempty"`
	Program          string            `json:"program,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	DateOfBirth      string            `json:"date_of_birth,omitempty"`
	Gender           string            `json:"gender,omitempty"`
	IsActive         bool              `json:"is_active"`
	CreatedAt        time.Time         `json:"created_at"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
}

// Public возвращает профиль без хеша пароля.
func (a *Account) Public() PublicProfile {
	p := PublicProfile{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		FullName:    a.FullName,
		Role:        a.Role,
		StudentID:   a.StudentID,
		Institution: a.Institution,
		Program:     a.Program,
		Phone:       a.Phone,
		Gender:      a.Gender,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
	if a.DateOfBirth != nil {
		p.DateOfBirth = a.DateOfBirth.Format(DateLayout)
	}
	return p
}

// Registration данные для создания аккаунта.
type Registration struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	Role        Role
	StudentID   string
	Institution string
	Program     string
	Phone       string
	Specialty   string
}

// ProfileUpdate частичное обновление профиля. nil означает "не менять".
type ProfileUpdate struct {
	FullName    *string
	Phone       *string
	DateOfBirth *time.Time
	Gender      *string
	Institution *string
	Program     *string
}

// Empty сообщает, что обновлять нечего.
func (u ProfileUpdate) Empty() bool {
	return u.FullName == nil && u.Phone == nil && u.DateOfBirth == nil &&
		u.Gender == nil && u.Institution == nil && u.Program == nil
}

// EmergencyContact контакт для экстренной связи, один на аккаунт.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
}

// LoginResult ответ на успешный вход.
type LoginResult struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        PublicProfile `json:"user"`
}

// Identity аутентифицированный субъект запроса.
type Identity struct {
	AccountID string
	Username  string
	FullName  string
	StudentID string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}
