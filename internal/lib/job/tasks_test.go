package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("alice@example.com", "Alice")

	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var payload WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "alice@example.com", payload.To)
	assert.Equal(t, "Alice", payload.FirstName)
}

func TestNewOrderConfirmationTask(t *testing.T) {
	in := OrderConfirmationPayload{
		To:            "bob@example.com",
		FirstName:     "Bob",
		OrderNumber:   "ORD-1A2B3C4D",
		PlanName:      "Performance VPS",
		InvoiceNumber: "INV-5E6F7A8B",
		Amount:        "1499.00 INR",
	}

	task, err := NewOrderConfirmationTask(in)

	require.NoError(t, err)
	assert.Equal(t, TaskOrderConfirmation, task.Type())

	var payload OrderConfirmationPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, in, payload)
}
