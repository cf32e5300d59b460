package analytics

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/analytics/repository"
)

func NewModule(db *sql.DB, loc *time.Location, logger *zap.Logger) *Controller {
	engine := NewEngine(repository.NewMySQLAnalyticsRepository(db), loc, logger)
	return NewController(engine, logger)
}
