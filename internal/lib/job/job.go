// Package job provides background job processing using Asynq.
//
// Tasks are enqueued through asynq.Client and executed by the worker
// server backed by Redis. Email delivery runs here so a slow or
// failing provider never delays an HTTP request.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/stellarhost/portal/internal/config"
	"github.com/stellarhost/portal/internal/lib/email"
)

// JobService holds the Asynq client (enqueue) and server (worker
// execution) plus the email client used by task handlers.
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server

	emailClient *email.Client

	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the configured Redis.
//
// Queue weights distribute the worker pool: out of 10 concurrent
// tasks, roughly 6 go to critical, 3 to default, 1 to low.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client:      client,
		server:      server,
		emailClient: email.NewClient(cfg, logger),
		logger:      logger,
	}
}

// Start registers task handlers and starts the worker server. Start
// returns immediately; workers run in background goroutines.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskOrderConfirmation, j.handleOrderConfirmationTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
