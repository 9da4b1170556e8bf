package app

import (
	"context"
	"errors"
	"time"

	"go-timeclock/internal/config"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/messaging/kafka/producer"
	"go-timeclock/internal/shared/connection"

	"go.uber.org/zap"
)

const outboxPollInterval = 3 * time.Second

// RunWorker relays outbox events to kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectDatabase(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, max(cfg.Database.Retries, 1))
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)

	log.Info("worker started", zap.String("broker", cfg.Kafka.Broker))
	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, outboxPollInterval)
	log.Info("worker shutting down")

	return nil
}
