package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"orderdesk/internal/catalog/repository"
)

type Module struct {
	Service    Service
	Controller *Controller
}

func NewModule(db *sql.DB, logger *zap.Logger) *Module {
	repo := repository.NewMySQLItemRepository(db)
	svc := NewService(repo, logger)
	return &Module{
		Service:    svc,
		Controller: NewController(svc, logger),
	}
}
