package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"qrmenu/internal/cache"
	"qrmenu/internal/dto"
	"qrmenu/internal/errors"
)

type PlaceStatsUseCase struct {
	placeRepo PlaceRepository
	views     ViewCache
	ttl       time.Duration
	logger    *zap.Logger
}

func NewPlaceStatsUseCase(placeRepo PlaceRepository, views ViewCache, ttl time.Duration, logger *zap.Logger) *PlaceStatsUseCase {
	return &PlaceStatsUseCase{
		placeRepo: placeRepo,
		views:     views,
		ttl:       ttl,
		logger:    logger,
	}
}

// Get returns the place's dashboard statistics. forceRefresh bypasses
// the cache outright, recomputes, and re-populates it.
func (uc *PlaceStatsUseCase) Get(ctx context.Context, actorID, placeID uint64, forceRefresh bool) (*dto.PlaceStats, error) {
	place, err := uc.placeRepo.FindByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if !place.IsOwnedBy(actorID) {
		return nil, errors.NewForbiddenError("place is not owned by the caller")
	}

	key := cache.PlaceStatsKey(placeID)

	if !forceRefresh {
		var cached dto.PlaceStats
		if uc.views.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	stats, err := uc.placeRepo.Stats(ctx, placeID)
	if err != nil {
		return nil, err
	}

	uc.views.SetJSON(ctx, key, stats, uc.ttl)
	return stats, nil
}
