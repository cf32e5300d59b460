package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"orderdesk/internal/commons"
	"orderdesk/internal/config"
	"orderdesk/internal/infrastructure/logger"
	"orderdesk/internal/infrastructure/migrations"
	"orderdesk/internal/infrastructure/mysql"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to the YAML config file")
	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		log.Fatal("usage: migrate [-config path] <up|down|version>")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewMigrationConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	m, err := migrations.New(db)
	if err != nil {
		zapLogger.Fatal("creating migrator", zap.Error(err))
	}

	switch command := args[0]; command {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			zapLogger.Info("no pending migrations")
			return
		}
		if err != nil {
			zapLogger.Fatal("migration up failed", zap.Error(err))
		}
		zapLogger.Info("migrations applied successfully")

	case "down":
		err = m.Steps(-1)
		if errors.Is(err, migrate.ErrNoChange) {
			zapLogger.Info("no migrations to rollback")
			return
		}
		if err != nil {
			zapLogger.Fatal("migration down failed", zap.Error(err))
		}
		zapLogger.Info("migration rolled back successfully")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			zapLogger.Info("no migrations applied yet")
			return
		}
		if err != nil {
			zapLogger.Fatal("failed to get version", zap.Error(err))
		}
		zapLogger.Info("current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))

	default:
		zapLogger.Fatal("unknown command", zap.String("command", command))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
