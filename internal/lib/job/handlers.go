package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask processes the welcome email task. Returning
// an error makes Asynq mark the task failed and schedule a retry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	err := j.emailClient.SendWelcomeEmail(p.To, p.FirstName)
	if err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

// handleOrderConfirmationTask processes the order confirmation task.
func (j *JobService) handleOrderConfirmationTask(ctx context.Context, t *asynq.Task) error {
	var p OrderConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal order confirmation payload: %w", err)
	}

	j.logger.Info().
		Str("type", "order_confirmation").
		Str("to", p.To).
		Str("order_number", p.OrderNumber).
		Msg("Processing order confirmation task")

	err := j.emailClient.SendOrderConfirmationEmail(
		p.To, p.FirstName, p.OrderNumber, p.PlanName, p.InvoiceNumber, p.Amount,
	)
	if err != nil {
		j.logger.Error().
			Str("type", "order_confirmation").
			Str("to", p.To).
			Str("order_number", p.OrderNumber).
			Err(err).
			Msg("Failed to send order confirmation email")
		return err
	}

	j.logger.Info().
		Str("type", "order_confirmation").
		Str("to", p.To).
		Str("order_number", p.OrderNumber).
		Msg("Successfully sent order confirmation email")

	return nil
}
