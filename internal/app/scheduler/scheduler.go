// Package scheduler собирает фоновый процесс истечения абонементов.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-admin/internal/cache"
	"github.com/magabrotheeeer/gym-admin/internal/config"
	"github.com/magabrotheeeer/gym-admin/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
	schedulerservice "github.com/magabrotheeeer/gym-admin/internal/services/scheduler"
	"github.com/magabrotheeeer/gym-admin/internal/storage"
)

const (
	dbReadyRetries = 10
	dbReadyDelay   = 3 * time.Second
)

// App представляет приложение планировщика.
type App struct {
	schedulerService *schedulerservice.SchedulerService
	interval         time.Duration
	db               *storage.Storage
	conn             *amqp.Connection
	ch               *amqp.Channel
	redis            *cache.Cache
	logger           *slog.Logger
}

func waitForDB(ctx context.Context, db *storage.Storage) error {
	for range dbReadyRetries {
		if err := storage.CheckDatabaseReady(ctx, db); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dbReadyDelay):
		}
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
// Без Redis истёкшие карточки просто не сбрасываются из кеша.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, rabbitmq.GetNotificationQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(ctx, db); err != nil {
		_ = db.Close()
		closeResources(ch, conn, logger)
		return nil, err
	}

	var (
		clientCache schedulerservice.Cache = cache.Noop{}
		redisCache  *cache.Cache
	)
	if cfg.Redis.Address != "" {
		redisCache, err = cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, client cache invalidation disabled", sl.Err(err))
		} else {
			clientCache = redisCache
		}
	}

	publisher := rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange)
	schedulerService := schedulerservice.NewSchedulerService(db, publisher, clientCache, cfg.Scheduler.ReminderDays, logger, nil)

	return &App{
		schedulerService: schedulerService,
		interval:         cfg.Scheduler.Interval,
		db:               db,
		conn:             conn,
		ch:               ch,
		redis:            redisCache,
		logger:           logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// Run запускает планировщик и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("scheduler started", slog.Duration("interval", a.interval))
	a.schedulerService.Run(ctx, a.interval)

	a.logger.Info("shutting down scheduler service")
	closeResources(a.ch, a.conn, a.logger)
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	return nil
}
