// Package access описывает права ролей и проверку владения ресурсом.
package access

import (
	"fmt"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Action действие, для которого нужна отдельная привилегия.
type Action string

const (
	// BypassOwnership доступ к чужим ресурсам.
	BypassOwnership Action = "bypass_ownership"
	// ViewAllEmergencies просмотр всех активных экстренных вызовов.
	ViewAllEmergencies Action = "view_all_emergencies"
	// ResolveEmergency смена статуса экстренного вызова.
	ResolveEmergency Action = "resolve_emergency"
	// CompleteAppointment закрытие приема с созданием визита.
	CompleteAppointment Action = "complete_appointment"
	// ViewDoctorSchedule кабинет врача: пациенты на сегодня и расписание.
	ViewDoctorSchedule Action = "view_doctor_schedule"
)

var capabilities = map[models.Role]map[Action]bool{
	models.RoleStudent: {},
	models.RoleStaff: {
		ViewAllEmergencies:  true,
		ResolveEmergency:    true,
		CompleteAppointment: true,
		ViewDoctorSchedule:  true,
	},
	models.RoleAdmin: {
		BypassOwnership:     true,
		ViewAllEmergencies:  true,
		ResolveEmergency:    true,
		CompleteAppointment: true,
		ViewDoctorSchedule:  true,
	},
}

// Can сообщает, разрешено ли роли действие.
func Can(role models.Role, action Action) bool {
	return capabilities[role][action]
}

// Require возвращает ErrForbidden, если роли субъекта не разрешено действие.
func Require(id models.Identity, action Action) error {
	if !Can(id.Role, action) {
		return fmt.Errorf("access.Require: %s cannot %s: %w", id.Role, action, apperr.ErrForbidden)
	}
	return nil
}

// CheckOwner возвращает ErrForbidden, если субъект не владелец ресурса
// и не может обходить проверку владения.
func CheckOwner(id models.Identity, ownerID string) error {
	if id.AccountID != "" && id.AccountID == ownerID {
		return nil
	}
	if Can(id.Role, BypassOwnership) {
		return nil
	}
	return fmt.Errorf("access.CheckOwner: %w", apperr.ErrForbidden)
}
