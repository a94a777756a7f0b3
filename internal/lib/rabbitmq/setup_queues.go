package rabbitmq

import "fmt"

// ReminderRoutingKey ключ маршрутизации напоминаний о приеме.
const ReminderRoutingKey = "appointment.reminder"

// QueueConfig очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// EmergencyRoutingKey ключ маршрутизации события экстренного вызова данного типа.
func EmergencyRoutingKey(emergencyType string) string {
	return fmt.Sprintf("emergency.%s", emergencyType)
}

// GetEmergencyQueues очереди диспетчерской службы.
func GetEmergencyQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "emergency.dispatch", RoutingKey: "emergency.#"},
		{QueueName: "emergency.counseling", RoutingKey: "emergency.mental_health"},
	}
}

// GetReminderQueues очередь напоминаний о приемах.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "appointment.reminders", RoutingKey: ReminderRoutingKey},
	}
}
