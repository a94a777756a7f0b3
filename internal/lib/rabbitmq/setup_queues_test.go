package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmergencyQueues(t *testing.T) {
	queues := GetEmergencyQueues()
	require.NotEmpty(t, queues)

	assert.Equal(t, "emergency.dispatch", queues[0].QueueName)
	assert.Equal(t, "emergency.#", queues[0].RoutingKey)

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
}

func TestEmergencyRoutingKey(t *testing.T) {
	assert.Equal(t, "emergency.medical", EmergencyRoutingKey("medical"))
	assert.Equal(t, "emergency.mental_health", EmergencyRoutingKey("mental_health"))
}

func TestGetReminderQueues(t *testing.T) {
	queues := GetReminderQueues()
	require.Len(t, queues, 1)
	assert.Equal(t, ReminderRoutingKey, queues[0].RoutingKey)
}
