package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/feedlens/internal/config"
	"github.com/OFFIS-RIT/feedlens/internal/queue"
	"github.com/OFFIS-RIT/feedlens/internal/storage"
	"github.com/OFFIS-RIT/feedlens/internal/timing"
	"github.com/OFFIS-RIT/feedlens/internal/util"
	"github.com/OFFIS-RIT/feedlens/pkg/ai"
	"github.com/OFFIS-RIT/feedlens/pkg/leaselock"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"
	pgstore "github.com/OFFIS-RIT/feedlens/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
)

func main() {
	cfg := config.Load()
	cfg.InitLogger("worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init s3 client
	s3Client, err := storage.NewS3Client(ctx)
	if err != nil {
		logger.Fatal("Failed to create S3 client", "err", err)
	}

	// Text generation client, shared by all jobs
	aiClient, err := cfg.NewTextClient()
	if err != nil {
		logger.Fatal("Failed to create text generation client", "err", err)
	}
	pipeline, err := cfg.NewPipeline(aiClient)
	if err != nil {
		logger.Fatal("Failed to create analysis pipeline", "err", err)
	}

	// Init pgx client
	pgConn, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pgConn.Close()

	// Init rabbitmq
	conn, err := util.RetryWithContext(ctx, 5, time.Second, func(ctx context.Context) (*amqp091.Connection, error) {
		return queue.Init()
	})
	if err != nil {
		logger.Fatal("Failed to connect to queue", "err", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.ReportQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	// prefetch=1 so a worker holds at most one report at a time
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := ch.Consume(
		queue.ReportQueue,
		queue.ReportQueue+"_consumer",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.ReportQueue, "err", err)
	}

	processor := &queue.ReportProcessor{
		Pipeline: pipeline,
		Store:    pgstore.NewReportDBStorage(pgConn),
		Objects:  storage.NewS3Store(s3Client, cfg.Bucket),
		Locker:   leaselock.New(pgConn),
		Lease: leaselock.Options{
			TTL:        2 * cfg.AI.Timeout,
			RenewEvery: cfg.AI.Timeout / 2,
		},
	}

	logger.Info("Listening for messages", "queue", queue.ReportQueue)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received, exiting...")
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Info("Message channel closed", "queue", queue.ReportQueue)
				return
			}

			startTime := time.Now()
			logger.Info("Received message", "queue", queue.ReportQueue)

			if err := processor.Handle(ctx, ch, msg); err == nil {
				logger.Info("Message processed successfully", "queue", queue.ReportQueue)
			}

			logMetrics(aiClient)
			logger.Info("Processing time", "duration", timing.Clock(time.Since(startTime)))
			logger.Info("Waiting for next message")
		}
	}
}

func logMetrics(client ai.TextClient) {
	if client == nil {
		return
	}
	metrics := client.GetMetrics()
	logger.Info(
		"AI Metrics",
		"requests", metrics.Requests,
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"total_tokens", metrics.TotalTokens,
		"duration", timing.Clock(timing.Millis(metrics.DurationMs)),
	)
	client.ResetMetrics()
}
