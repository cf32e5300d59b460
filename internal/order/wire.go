package order

import (
	"database/sql"

	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/order/controller"
	orderrepo "orderdesk/internal/order/repository"
	"orderdesk/internal/order/service"
	"orderdesk/internal/order/usecase"
)

// Dependencies are the collaborators the order module does not own.
type Dependencies struct {
	Items     usecase.ItemResolver
	Taxes     usecase.TaxSettingsProvider
	Publisher usecase.EventPublisher
	Metrics   usecase.Metrics
}

func NewModule(db *sql.DB, cfg *config.Config, deps Dependencies, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)

	store := service.NewOrderService(
		db,
		orderRepo,
		orderItemRepo,
		logger,
		cfg.Order.TxTimeout,
	).WithPageSizes(cfg.Order.DefaultPageSize, cfg.Order.MaxPageSize)

	uc := usecase.NewOrderUseCase(
		deps.Items,
		deps.Taxes,
		store,
		deps.Publisher,
		deps.Metrics,
		logger,
	)

	return controller.NewOrderController(uc, logger)
}
