package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"qrmenu/internal/cache"
	"qrmenu/internal/dto"
)

// PublicMenuUseCase serves the diner-facing menu tree through the
// read-view cache. Writers to the catalog invalidate the key before
// returning, so a hit here is never stale.
type PublicMenuUseCase struct {
	menuRepo MenuReader
	views    ViewCache
	ttl      time.Duration
	logger   *zap.Logger
}

func NewPublicMenuUseCase(menuRepo MenuReader, views ViewCache, ttl time.Duration, logger *zap.Logger) *PublicMenuUseCase {
	return &PublicMenuUseCase{
		menuRepo: menuRepo,
		views:    views,
		ttl:      ttl,
		logger:   logger,
	}
}

func (uc *PublicMenuUseCase) Get(ctx context.Context, placeID uint64) (*dto.PublicMenu, error) {
	key := cache.PublicMenuKey(placeID)

	var cached dto.PublicMenu
	if uc.views.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	menu, err := uc.menuRepo.PublicMenu(ctx, placeID)
	if err != nil {
		return nil, err
	}

	uc.views.SetJSON(ctx, key, menu, uc.ttl)
	return menu, nil
}
