package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pyramide/event-api/internal/api"
	"github.com/pyramide/event-api/internal/broadcast"
	"github.com/pyramide/event-api/internal/cache"
	"github.com/pyramide/event-api/internal/config"
	"github.com/pyramide/event-api/internal/db"
	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/events"
	"github.com/pyramide/event-api/internal/logger"
	"github.com/pyramide/event-api/internal/notify"
	"github.com/pyramide/event-api/internal/pkg/clock"
	"github.com/pyramide/event-api/internal/repository"
	"github.com/pyramide/event-api/internal/repository/dao"
	"github.com/pyramide/event-api/internal/service"
)

const (
	cacheKeyPrefix      = "pyramide:"
	memoryQueueSize     = 1024
	memoryQueueWorkers  = 4
	loginCodeSweepEvery = 15 * time.Minute
	shutdownTimeout     = 10 * time.Second
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	conf.Watch(func(next *config.AppConfig) {
		if next.API.Environment != conf.API.Environment {
			if err := logger.Init(next.API.Environment); err != nil {
				zap.L().Error("failed to re-initialize logger", zap.Error(err))
			}
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	eventRepo := repository.NewEventRepository(dao.NewEventDAO(postgresDB))
	if err = eventRepo.EnsureSingleton(ctx, defaultEventConfig(conf.Event)); err != nil {
		return fmt.Errorf("failed to seed event configuration -> %w", err)
	}

	c := openCache(ctx, conf.Redis)
	publisher := openPublisher(conf.Kafka)
	defer publisher.Close()

	queue := openQueue(conf.RabbitMQ)
	defer queue.Close()

	deps := api.Deps{
		DB:      postgresDB,
		Cache:   c,
		Events:  publisher,
		Queue:   queue,
		Sender:  openSender(conf.Instagram, conf.OTP.SendTimeout),
		Alerter: openAlerter(conf.Telegram),
		Clock:   clock.System{},
	}

	s := api.NewServer(conf, deps)

	go s.Feed.Run(ctx)

	if err = queue.Consume(ctx, s.Broadcast.Deliver); err != nil {
		return fmt.Errorf("failed to start broadcast consumer -> %w", err)
	}

	go sweepLoginCodes(ctx, repository.NewLoginCodeRepository(dao.NewLoginCodeDAO(postgresDB)), deps.Clock)

	addr := ":" + s.Config.API.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
	case <-ctx.Done():
		zap.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err = srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down the server -> %w", err)
		}
	}

	return nil
}

func defaultEventConfig(conf *config.EventConfig) domain.EventConfig {
	return domain.EventConfig{
		Currency:           conf.Currency,
		MaxInvitesPerUser:  conf.MaxInvitesPerUser,
		MaxParticipants:    conf.MaxParticipants,
		MaxDiscountPercent: decimal.Zero,
	}
}

// openCache falls back to no caching when Redis is disabled or down. The
// cache is never required for correctness.
func openCache(ctx context.Context, conf *config.RedisConfig) cache.Cache {
	if !conf.Enabled {
		zap.L().Info("redis disabled, caching off")
		return cache.Nop{}
	}

	r := cache.NewRedis(cache.NewRedisClient(conf), cacheKeyPrefix)
	if err := r.Ping(ctx); err != nil {
		zap.L().Warn("redis unreachable, reads go to the database until it recovers", zap.Error(err))
	}

	return r
}

func openPublisher(conf *config.KafkaConfig) events.Publisher {
	if !conf.Enabled || len(conf.Brokers) == 0 {
		zap.L().Info("kafka disabled, ledger events are not exported")
		return events.Nop{}
	}

	return events.NewKafka(conf)
}

func openQueue(conf *config.RabbitMQConfig) broadcast.Queue {
	if conf.Enabled {
		q, err := broadcast.NewRabbitMQ(conf)
		if err == nil {
			return q
		}
		zap.L().Warn("rabbitmq unreachable, delivering broadcasts in process", zap.Error(err))
	}

	return broadcast.NewMemory(memoryQueueSize, memoryQueueWorkers)
}

func openSender(conf *config.InstagramConfig, timeout time.Duration) service.MessageSender {
	if conf.APIURL == "" || conf.AccessToken == "" {
		zap.L().Warn("instagram not configured, login codes cannot be delivered")
		return notify.Nop{}
	}

	return notify.NewInstagram(conf, timeout)
}

func openAlerter(conf *config.TelegramConfig) service.Alerter {
	if !conf.Enabled || conf.BotToken == "" {
		return notify.LogAlerter{}
	}

	t, err := notify.NewTelegram(conf)
	if err != nil {
		zap.L().Warn("telegram unavailable, alerts go to the log", zap.Error(err))
		return notify.LogAlerter{}
	}

	return t
}

func sweepLoginCodes(ctx context.Context, codes *repository.LoginCodeRepository, clk clock.Clock) {
	ticker := time.NewTicker(loginCodeSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := codes.DeleteExpired(ctx, clk.Now())
			if err != nil {
				zap.L().Warn("failed to delete expired login codes", zap.Error(err))
				continue
			}
			if n > 0 {
				zap.L().Debug("expired login codes deleted", zap.Int64("count", n))
			}
		}
	}
}
