package account

import (
	"database/sql"

	"go.uber.org/zap"

	"orderdesk/internal/account/repository"
)

type Module struct {
	Service    Service
	Controller *Controller
}

func NewModule(db *sql.DB, logger *zap.Logger) *Module {
	svc := NewService(repository.NewMySQLTaxSettingsRepository(db), logger)
	return &Module{
		Service:    svc,
		Controller: NewController(svc, logger),
	}
}
