package order

import (
	"database/sql"

	"go.uber.org/zap"

	"qrmenu/internal/cache"
	"qrmenu/internal/config"
	menurepo "qrmenu/internal/menu/repository"
	"qrmenu/internal/notify"
	"qrmenu/internal/order/controller"
	orderrepo "qrmenu/internal/order/repository"
	"qrmenu/internal/order/service"
	"qrmenu/internal/order/usecase"
	placerepo "qrmenu/internal/place/repository"
)

func NewModule(db *sql.DB, hub *notify.Hub, views *cache.ViewCache, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db, cfg.Order.TxTimeout)
	menuRepo := menurepo.NewMySQLMenuItemRepository(db)
	placeRepo := placerepo.NewMySQLPlaceRepository(db)

	creationSvc := service.NewCreationService(menuRepo, orderRepo, logger)

	createUC := usecase.NewCreateOrderUseCase(placeRepo, orderRepo, creationSvc, hub, views, logger)
	statusUC := usecase.NewOrderStatusUseCase(orderRepo, placeRepo, hub, views, cfg.Order.StrictTransitions, logger)
	queryUC := usecase.NewOrderQueryUseCase(orderRepo, placeRepo, logger)

	return controller.NewOrderController(createUC, statusUC, queryUC, logger)
}
