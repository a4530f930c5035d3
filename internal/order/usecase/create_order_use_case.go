package usecase

import (
	"context"

	"go.uber.org/zap"

	"qrmenu/internal/cache"
	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
	"qrmenu/internal/errors"
)

// CreateOrderUseCase wraps the creation service with place-level
// checks and the post-commit side effects (hub broadcast, cache
// invalidation). Side effect failures never surface to the caller:
// the order is already durably created.
type CreateOrderUseCase struct {
	placeRepo PlaceRepository
	orderRepo OrderRepository
	builder   OrderBuilder
	notifier  Notifier
	views     ViewInvalidator
	logger    *zap.Logger
}

func NewCreateOrderUseCase(
	placeRepo PlaceRepository,
	orderRepo OrderRepository,
	builder OrderBuilder,
	notifier Notifier,
	views ViewInvalidator,
	logger *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		placeRepo: placeRepo,
		orderRepo: orderRepo,
		builder:   builder,
		notifier:  notifier,
		views:     views,
		logger:    logger,
	}
}

// CreatePublic is the unauthenticated diner-facing entry.
func (uc *CreateOrderUseCase) CreatePublic(ctx context.Context, placeID uint64, req dto.CreateOrderRequest) (*domain.Order, error) {
	if _, err := uc.placeRepo.FindByID(ctx, placeID); err != nil {
		return nil, err
	}
	return uc.create(ctx, placeID, req)
}

// CreateOwned is the authenticated variant: identical validation and
// persistence, plus the ownership gate.
func (uc *CreateOrderUseCase) CreateOwned(ctx context.Context, actorID, placeID uint64, req dto.CreateOrderRequest) (*domain.Order, error) {
	place, err := uc.placeRepo.FindByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if !place.IsOwnedBy(actorID) {
		return nil, errors.NewForbiddenError("place is not owned by the caller")
	}
	return uc.create(ctx, placeID, req)
}

func (uc *CreateOrderUseCase) create(ctx context.Context, placeID uint64, req dto.CreateOrderRequest) (*domain.Order, error) {
	tableID, tableLabel, err := uc.resolveTable(ctx, placeID, req)
	if err != nil {
		return nil, err
	}

	order, err := uc.builder.Create(ctx, placeID, tableID, tableLabel, req.CustomerNotes, req.Items)
	if err != nil {
		return nil, err
	}

	uc.notifier.NotifyNewOrder(placeID, dto.NewOrderPayload(order))
	uc.views.Invalidate(ctx, cache.PublicMenuKey(placeID), cache.PlaceStatsKey(placeID))

	return order, nil
}

// resolveTable accepts either a table id or, for older clients, a
// free-form table label. An id must reference a table of this place.
func (uc *CreateOrderUseCase) resolveTable(ctx context.Context, placeID uint64, req dto.CreateOrderRequest) (*uint64, string, error) {
	if req.TableID != nil && *req.TableID > 0 {
		table, err := uc.placeRepo.FindTable(ctx, *req.TableID, placeID)
		if err != nil {
			if _, ok := errors.IsNotFoundError(err); ok {
				return nil, "", errors.NewValidationError("table does not belong to this place", errors.ValidationDetail{
					Field:   "tableId",
					Message: "tableId must reference a table of this place",
				})
			}
			return nil, "", err
		}
		return &table.ID, table.Label, nil
	}

	if req.TableNumber != "" {
		return nil, req.TableNumber, nil
	}

	return nil, "", errors.NewValidationError("a table reference is required", errors.ValidationDetail{
		Field:   "tableId",
		Message: "either tableId or tableNumber must be provided",
	})
}

// AppendItems adds line items to an existing order owned by the
// caller's place.
func (uc *CreateOrderUseCase) AppendItems(ctx context.Context, actorID, orderID uint64, req dto.AppendItemsRequest) (*domain.Order, error) {
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

	updated, err := uc.builder.Append(ctx, order, req.Items)
	if err != nil {
		return nil, err
	}

	uc.views.Invalidate(ctx, cache.PlaceStatsKey(order.PlaceID))

	return updated, nil
}
