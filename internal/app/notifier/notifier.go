// Package notifier собирает потребителя напоминаний: очередь RabbitMQ и SMTP.
package notifier

import (
	"context"
	"errors"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/careconnect/internal/config"
	"github.com/magabrotheeeer/careconnect/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
	"github.com/magabrotheeeer/careconnect/internal/lib/smtp"
	notifierservice "github.com/magabrotheeeer/careconnect/internal/services/notifier"
)

const reminderQueue = "appointment.reminders"

type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	service *notifierservice.Service
	logger  *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.RabbitURL == "" {
		return nil, errors.New("notifier: rabbitmq url is required")
	}

	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.RabbitRetries, cfg.RabbitRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitExchange, rabbitmq.GetReminderQueues())
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Warn("failed to close rabbitmq connection", sl.Err(closeErr))
		}
		return nil, err
	}

	transport := smtp.NewTransport(smtp.Settings{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
		Insecure: cfg.SMTPInsecure,
	}, logger)

	return &App{
		conn:    conn,
		ch:      ch,
		service: notifierservice.New(transport, logger),
		logger:  logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, reminderQueue, a.service.SendReminder, a.logger)
	if err != nil {
		a.logger.Error("failed to start reminder consumer", sl.Err(err))
		return err
	}
	a.logger.Info("reminder consumer started", slog.String("queue", reminderQueue))

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
