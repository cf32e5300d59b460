package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/go-sql-driver/mysql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"orderdesk/internal/config"
)

func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := otelsql.Open("mysql", dsn,
		otelsql.WithAttributes(semconv.DBSystemMySQL),
	)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// NewMigrationConnection opens an uninstrumented connection that accepts
// multi-statement migration files.
func NewMigrationConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	mc.MultiStatements = true

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("opening migration database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging migration database: %w", err)
	}

	return db, nil
}

// DSN pins both the driver location and the session time zone to cfg.TimeZone so
// that DATE(created_at) in SQL and calendar days in Go agree.
func DSN(cfg config.DatabaseConfig) (string, error) {
	loc, err := Location(cfg.TimeZone)
	if err != nil {
		return "", err
	}

	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = loc
	// UPDATE reports matched rows, so re-setting the same status is not "not found".
	mc.ClientFoundRows = true
	mc.Params = map[string]string{
		"time_zone": sessionTimeZone(loc),
	}

	return mc.FormatDSN(), nil
}

func Location(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", name, err)
	}
	return loc, nil
}

// Named zones require the MySQL time zone tables; UTC is sent as an offset.
func sessionTimeZone(loc *time.Location) string {
	if loc == time.UTC {
		return "'+00:00'"
	}
	return "'" + loc.String() + "'"
}
