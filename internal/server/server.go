package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/feedlens/internal/config"
	"github.com/OFFIS-RIT/feedlens/internal/queue"
	mid "github.com/OFFIS-RIT/feedlens/internal/server/middleware"
	"github.com/OFFIS-RIT/feedlens/internal/storage"
	"github.com/OFFIS-RIT/feedlens/internal/util"
	"github.com/OFFIS-RIT/feedlens/pkg/logger"
	pgstore "github.com/OFFIS-RIT/feedlens/pkg/store/pgx"

	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	bodyLimit       = "10M"
	connectAttempts = 5
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// New builds the echo instance serving app.
func New(app *mid.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))

	RegisterRoutes(e)
	return e
}

// Init connects all dependencies described by cfg and serves the API until
// the process receives SIGINT or SIGTERM.
func Init(cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := cfg.NewTextClient()
	if err != nil {
		logger.Fatal("Failed to create text generation client", "err", err)
	}
	pipeline, err := cfg.NewPipeline(client)
	if err != nil {
		logger.Fatal("Failed to create analysis pipeline", "err", err)
	}

	if err := pgstore.Migrate(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
		logger.Fatal("Failed to migrate database", "err", err)
	}

	conn, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	que, err := util.RetryWithContext(ctx, connectAttempts, time.Second, func(ctx context.Context) (*amqp091.Connection, error) {
		return queue.Init()
	})
	if err != nil {
		logger.Fatal("Failed to connect to queue", "err", err)
	}
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.ReportQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	s3Client, err := storage.NewS3Client(ctx)
	if err != nil {
		logger.Fatal("Failed to create S3 client", "err", err)
	}

	e := New(&mid.App{
		Pipeline: pipeline,
		Store:    pgstore.NewReportDBStorage(conn),
		Objects:  storage.NewS3Store(s3Client, cfg.Bucket),
		Queue:    queue.NewReportPublisher(ch),
	})

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
