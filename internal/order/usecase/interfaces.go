package usecase

import (
	"context"

	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
)

type PlaceRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Place, error)
	FindTable(ctx context.Context, tableID, placeID uint64) (*domain.Table, error)
}

type OrderRepository interface {
	FindByIDWithItems(ctx context.Context, id uint64) (*domain.Order, error)
	ListByPlace(ctx context.Context, placeID uint64, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
	Delete(ctx context.Context, id uint64) error
}

type OrderBuilder interface {
	Create(ctx context.Context, placeID uint64, tableID *uint64, tableLabel, customerNotes string, requests []dto.OrderItemRequest) (*domain.Order, error)
	Append(ctx context.Context, order *domain.Order, requests []dto.OrderItemRequest) (*domain.Order, error)
}

// Notifier is the hub surface the use cases depend on. Delivery is
// best-effort; calls never return errors.
type Notifier interface {
	NotifyNewOrder(placeID uint64, order dto.OrderPayload)
	NotifyOrderStatusChange(placeID, orderID uint64, oldStatus, newStatus domain.OrderStatus)
}

type ViewInvalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}
