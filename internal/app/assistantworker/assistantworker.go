// Package assistantworker собирает фоновый сервис, который потребляет
// задания помощника из очереди и записывает ответы в диалоги.
package assistantworker

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/legal-assistant/internal/config"
	"github.com/magabrotheeeer/legal-assistant/internal/rabbitmq"
	assistantservice "github.com/magabrotheeeer/legal-assistant/internal/services/assistant"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

type App struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	worker *assistantservice.Worker
	queue  string
	logger *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue)
	if err != nil {
		conn.Close()
		return nil, err
	}

	worker := assistantservice.NewWorker(db, logger)

	return &App{
		conn:   conn,
		ch:     ch,
		worker: worker,
		queue:  cfg.RabbitMQ.Queue,
		logger: logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	handler := func(body []byte) error {
		return a.worker.Handle(ctx, body)
	}
	if err := rabbitmq.ConsumerMessage(ctx, a.ch, a.queue, a.logger, handler); err != nil {
		a.logger.Error("failed to start assistant jobs consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("assistant worker shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
