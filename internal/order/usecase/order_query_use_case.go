package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"qrmenu/internal/domain"
	"qrmenu/internal/errors"
)

type OrderQueryUseCase struct {
	orderRepo OrderRepository
	placeRepo PlaceRepository
	logger    *zap.Logger
}

func NewOrderQueryUseCase(orderRepo OrderRepository, placeRepo PlaceRepository, logger *zap.Logger) *OrderQueryUseCase {
	return &OrderQueryUseCase{
		orderRepo: orderRepo,
		placeRepo: placeRepo,
		logger:    logger,
	}
}

func (uc *OrderQueryUseCase) GetOrder(ctx context.Context, actorID, orderID uint64) (*domain.Order, error) {
	order, err := uc.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	place, err := uc.placeRepo.FindByID(ctx, order.PlaceID)
	if err != nil {
		return nil, err
	}
	if !place.IsOwnedBy(actorID) {
		return nil, errors.NewForbiddenError("order belongs to a place not owned by the caller")
	}

	return order, nil
}

func (uc *OrderQueryUseCase) ListOrders(ctx context.Context, actorID, placeID uint64, statusFilter string) ([]domain.Order, error) {
	place, err := uc.placeRepo.FindByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if !place.IsOwnedBy(actorID) {
		return nil, errors.NewForbiddenError("place is not owned by the caller")
	}

	status := domain.OrderStatus(statusFilter)
	if statusFilter != "" {
		if !domain.ValidStatus(status) {
			return nil, errors.NewValidationError(fmt.Sprintf("unrecognized status %q", statusFilter), errors.ValidationDetail{
				Field:   "status",
				Message: "status must be one of pending, preparing, ready, served, cancelled",
			})
		}
		status = domain.NormalizeStatus(status)
	}

	return uc.orderRepo.ListByPlace(ctx, placeID, status)
}
