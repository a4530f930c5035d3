package usecase

import (
	"context"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
)

type PlaceRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Place, error)
	Stats(ctx context.Context, placeID uint64) (*dto.PlaceStats, error)
}

type MenuReader interface {
	PublicMenu(ctx context.Context, placeID uint64) (*dto.PublicMenu, error)
}

type ViewCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
}
