package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"qrmenu/internal/cache"
	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
	"qrmenu/internal/errors"
)

// OrderStatusUseCase applies the status state machine. By default any
// recognized status may overwrite any other so restaurateurs can
// correct mistakes; strict mode enforces the forward-only graph.
type OrderStatusUseCase struct {
	orderRepo OrderRepository
	placeRepo PlaceRepository
	notifier  Notifier
	views     ViewInvalidator
	strict    bool
	logger    *zap.Logger
}

func NewOrderStatusUseCase(
	orderRepo OrderRepository,
	placeRepo PlaceRepository,
	notifier Notifier,
	views ViewInvalidator,
	strict bool,
	logger *zap.Logger,
) *OrderStatusUseCase {
	return &OrderStatusUseCase{
		orderRepo: orderRepo,
		placeRepo: placeRepo,
		notifier:  notifier,
		views:     views,
		strict:    strict,
		logger:    logger,
	}
}

func (uc *OrderStatusUseCase) UpdateStatus(ctx context.Context, actorID, orderID uint64, newStatus string) (*domain.Order, error) {
	status := domain.OrderStatus(newStatus)
	if !domain.ValidStatus(status) {
		return nil, errors.NewValidationError(fmt.Sprintf("unrecognized status %q", newStatus), errors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, preparing, ready, served, cancelled",
		})
	}
	status = domain.NormalizeStatus(status)

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

	if uc.strict && !domain.CanTransition(order.Status, status) {
		return nil, errors.NewValidationError(
			fmt.Sprintf("transition from %s to %s is not allowed", order.Status, status),
			errors.ValidationDetail{
				Field:   "status",
				Message: "status transition violates the order lifecycle",
			})
	}

	oldStatus := order.Status
	if err := uc.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	uc.logger.Info("order status updated",
		zap.Uint64("orderId", orderID),
		zap.String("oldStatus", string(oldStatus)),
		zap.String("newStatus", string(status)))

	uc.notifier.NotifyOrderStatusChange(order.PlaceID, orderID, oldStatus, status)
	// stats views count orders per day/week; a status flip does not
	// change cardinality, but cancel-path deletes do, so keeping the
	// view fresh here is the cheap, idempotent choice
	uc.views.Invalidate(ctx, cache.PlaceStatsKey(order.PlaceID))

	return uc.orderRepo.FindByIDWithItems(ctx, orderID)
}

// CancelPublic is the diner cancellation path. It only succeeds while
// the order is still pending; on success the order is marked
// cancelled, the event is broadcast, and then the row is deleted along
// with its line items. A publicly cancelled order leaves no queryable
// record.
func (uc *OrderStatusUseCase) CancelPublic(ctx context.Context, placeID, orderID uint64) (*dto.OrderDeletedPayload, error) {
	order, err := uc.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PlaceID != placeID {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", orderID))
	}

	if !order.IsCancellableByCustomer() {
		return nil, errors.NewValidationError("order is already in preparation", errors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("orders in status %s cannot be cancelled", order.Status),
		})
	}

	oldStatus := order.Status
	if err := uc.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled); err != nil {
		return nil, err
	}

	uc.notifier.NotifyOrderStatusChange(placeID, orderID, oldStatus, domain.OrderStatusCancelled)

	if err := uc.orderRepo.Delete(ctx, orderID); err != nil {
		return nil, err
	}

	uc.logger.Info("order cancelled and deleted",
		zap.Uint64("orderId", orderID),
		zap.Uint64("placeId", placeID))

	uc.views.Invalidate(ctx, cache.PlaceStatsKey(placeID))

	return &dto.OrderDeletedPayload{ID: orderID, Deleted: true}, nil
}

// Delete is the owner's hard delete: any status, same cascade.
func (uc *OrderStatusUseCase) Delete(ctx context.Context, actorID, orderID uint64) (*dto.OrderDeletedPayload, error) {
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

	if err := uc.orderRepo.Delete(ctx, orderID); err != nil {
		return nil, err
	}

	uc.logger.Info("order deleted by owner",
		zap.Uint64("orderId", orderID),
		zap.Uint64("placeId", order.PlaceID))

	uc.views.Invalidate(ctx, cache.PlaceStatsKey(order.PlaceID))

	return &dto.OrderDeletedPayload{ID: orderID, Deleted: true}, nil
}
