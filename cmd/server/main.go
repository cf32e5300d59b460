package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/account"
	"orderdesk/internal/analytics"
	"orderdesk/internal/catalog"
	"orderdesk/internal/commons"
	"orderdesk/internal/config"
	"orderdesk/internal/infrastructure/logger"
	"orderdesk/internal/infrastructure/messaging"
	"orderdesk/internal/infrastructure/migrations"
	"orderdesk/internal/infrastructure/mysql"
	"orderdesk/internal/infrastructure/telemetry"
	"orderdesk/internal/order"
	"orderdesk/internal/order/usecase"
	"orderdesk/internal/server"
)

const configPath = "internal/config/config.yaml"

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, cfg.Telemetry)
	if err != nil {
		zapLogger.Fatal("initializing tracer", zap.Error(err))
	}

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(cfg.Telemetry)
	if err != nil {
		zapLogger.Fatal("initializing meter", zap.Error(err))
	}

	orderMetrics, err := telemetry.NewOrderMetrics()
	if err != nil {
		zapLogger.Fatal("registering order metrics", zap.Error(err))
	}

	loc, err := mysql.Location(cfg.Database.TimeZone)
	if err != nil {
		zapLogger.Fatal("resolving time zone", zap.Error(err))
	}

	if err := migrate(cfg.Database, zapLogger); err != nil {
		zapLogger.Fatal("running migrations", zap.Error(err))
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected", zap.String("timeZone", loc.String()))

	var publisher usecase.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := messaging.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		publisher = producer
		zapLogger.Info("event publishing enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	catalogModule := catalog.NewModule(db, zapLogger)
	accountModule := account.NewModule(db, zapLogger)
	orderCtrl := order.NewModule(db, cfg, order.Dependencies{
		Items:     catalogModule.Service,
		Taxes:     accountModule.Service,
		Publisher: publisher,
		Metrics:   orderMetrics,
	}, zapLogger)
	analyticsCtrl := analytics.NewModule(db, loc, zapLogger)

	router := server.NewRouter(server.Handlers{
		Items:     catalogModule.Controller,
		Account:   accountModule.Controller,
		Orders:    orderCtrl,
		Analytics: analyticsCtrl,
		Metrics:   metricsHandler,
		Ping:      db.PingContext,
	}, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
	}
	if err := shutdownMeter(shutdownCtx); err != nil {
		zapLogger.Warn("meter shutdown failed", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		zapLogger.Warn("tracer shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// loadConfig prefers the YAML file and falls back to environment variables
// when it is absent.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(configPath); err == nil {
		return commons.LoadConfig(configPath)
	}
	return config.Load()
}

func migrate(cfg config.DatabaseConfig, zapLogger *zap.Logger) error {
	db, err := mysql.NewMigrationConnection(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrations.Up(db, zapLogger)
}
