package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	err := fmt.Errorf("services.record.Add: %w", Validation("type must be one of allergy, medication, condition"))

	assert.True(t, errors.Is(err, ErrValidation))
	msg, ok := Message(err)
	assert.True(t, ok)
	assert.Equal(t, "type must be one of allergy, medication, condition", msg)

	_, ok = Message(ErrNotFound)
	assert.False(t, ok)
}
