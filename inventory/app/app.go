package app

import (
	"context"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/inventory-service/inventory/config"
	"github.com/Astemirdum/inventory-service/inventory/internal/events"
	"github.com/Astemirdum/inventory-service/inventory/internal/handler"
	"github.com/Astemirdum/inventory-service/inventory/internal/repository"
	"github.com/Astemirdum/inventory-service/inventory/internal/server"
	"github.com/Astemirdum/inventory-service/inventory/internal/service/catalog"
	"github.com/Astemirdum/inventory-service/inventory/internal/service/lending"
	"github.com/Astemirdum/inventory-service/inventory/migrations"
	"github.com/Astemirdum/inventory-service/pkg/kafka"
	"github.com/Astemirdum/inventory-service/pkg/logger"
	"github.com/Astemirdum/inventory-service/pkg/postgres"
	"github.com/Astemirdum/inventory-service/pkg/sqlite"
	"github.com/Astemirdum/inventory-service/pkg/tracing"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "inventory")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		log.Fatal("tracing init", zap.Error(err))
	}

	db, err := openDB(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var (
		publisher lending.Publisher = events.Nop{}
		closers   []io.Closer
	)
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		p := events.NewPublisher(producer, cfg.Kafka.LendingTopic, log)
		publisher = p
		closers = append(closers, p)
	} else {
		log.Info("kafka is not configured, lending events are dropped")
	}

	catalogSvc := catalog.NewService(repo, log)
	lendingSvc := lending.NewService(repo, publisher, log)

	if cfg.Kafka.Enabled() && cfg.Kafka.ConsumeCommands {
		consumer, err := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Group)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		closers = append(closers, consumer)
		go kafka.Consume(ctx, consumer, handler.NewConsumer(catalogSvc, lendingSvc, log), log, cfg.Kafka.CommandsTopic)
	}

	h := handler.New(catalogSvc, lendingSvc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Error("close", zap.Error(err))
		}
	}
	if err = shutdownTracing(closeCtx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}

func openDB(ctx context.Context, cfg config.Database, log *zap.Logger) (*sqlx.DB, error) {
	if cfg.Driver == sqlite.Driver {
		return sqlite.NewSQLiteDB(ctx, cfg.SQLitePath, migrations.SQLiteMigrationFiles, log)
	}
	return postgres.NewPostgresDB(ctx, &cfg.DB, migrations.MigrationFiles, log)
}
