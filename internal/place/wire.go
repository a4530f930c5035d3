package place

import (
	"database/sql"

	"go.uber.org/zap"

	"qrmenu/internal/cache"
	"qrmenu/internal/config"
	menurepo "qrmenu/internal/menu/repository"
	placerepo "qrmenu/internal/place/repository"
	"qrmenu/internal/place/usecase"
)

func NewModule(db *sql.DB, views *cache.ViewCache, cfg *config.Config, logger *zap.Logger) *Controller {
	menuRepo := menurepo.NewMySQLMenuItemRepository(db)
	placeRepo := placerepo.NewMySQLPlaceRepository(db)

	menuUC := usecase.NewPublicMenuUseCase(menuRepo, views, cfg.Cache.PublicMenuTTL, logger)
	statsUC := usecase.NewPlaceStatsUseCase(placeRepo, views, cfg.Cache.PlaceStatsTTL, logger)

	return NewController(menuUC, statsUC, logger)
}
