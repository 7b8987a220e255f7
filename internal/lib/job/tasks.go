package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is queued when a new account registers.
	TaskWelcome = "email:welcome"

	// TaskOrderConfirmation is queued after a payment is verified and
	// the order has been activated.
	TaskOrderConfirmation = "email:order_confirmation"
)

// WelcomeEmailPayload is the JSON payload for the welcome email task.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// OrderConfirmationPayload is the JSON payload for the order
// confirmation email task.
type OrderConfirmationPayload struct {
	To            string `json:"to"`
	FirstName     string `json:"first_name"`
	OrderNumber   string `json:"order_number"`
	PlanName      string `json:"plan_name"`
	InvoiceNumber string `json:"invoice_number"`
	Amount        string `json:"amount"`
}

// NewWelcomeEmailTask constructs the welcome email task: up to 3
// retries, default queue, 30 second handler timeout.
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewOrderConfirmationTask constructs the order confirmation task.
// Payment receipts matter more than greetings, so it rides the
// critical queue.
func NewOrderConfirmationTask(p OrderConfirmationPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskOrderConfirmation,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
