package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"qrmenu/internal/domain"
	apperrors "qrmenu/internal/errors"
)

func TestGetOrder_OwnerSeesFullOrder(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDWithItemsFunc: func(ctx context.Context, id uint64) (*domain.Order, error) {
			return &domain.Order{
				ID:      id,
				PlaceID: 1,
				Status:  domain.OrderStatusPending,
				Items:   []domain.OrderItem{{ID: 1, OrderID: id, MenuItemID: 7, Quantity: 2, UnitPrice: 450}},
			}, nil
		},
	}

	uc := NewOrderQueryUseCase(orderRepo, ownedPlace(1, 10), zap.NewNop())

	order, err := uc.GetOrder(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(order.Items) != 1 {
		t.Errorf("expected line items on the order, got %d", len(order.Items))
	}
}

func TestGetOrder_ForbiddenForNonOwner(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDWithItemsFunc: func(ctx context.Context, id uint64) (*domain.Order, error) {
			return &domain.Order{ID: id, PlaceID: 1, Status: domain.OrderStatusPending}, nil
		},
	}

	uc := NewOrderQueryUseCase(orderRepo, ownedPlace(1, 10), zap.NewNop())

	_, err := uc.GetOrder(context.Background(), 99, 5)

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestListOrders_ForbiddenForNonOwner(t *testing.T) {
	uc := NewOrderQueryUseCase(&mockOrderRepository{}, ownedPlace(1, 10), zap.NewNop())

	_, err := uc.ListOrders(context.Background(), 99, 1, "")

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestListOrders_InvalidStatusFilterRejected(t *testing.T) {
	uc := NewOrderQueryUseCase(&mockOrderRepository{}, ownedPlace(1, 10), zap.NewNop())

	_, err := uc.ListOrders(context.Background(), 10, 1, "finished")

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestListOrders_FilterPassedThroughNormalized(t *testing.T) {
	var gotStatus domain.OrderStatus
	orderRepo := &mockOrderRepository{
		ListByPlaceFunc: func(ctx context.Context, placeID uint64, status domain.OrderStatus) ([]domain.Order, error) {
			gotStatus = status
			return []domain.Order{}, nil
		},
	}

	uc := NewOrderQueryUseCase(orderRepo, ownedPlace(1, 10), zap.NewNop())

	if _, err := uc.ListOrders(context.Background(), 10, 1, "new"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if gotStatus != domain.OrderStatusPending {
		t.Errorf("expected legacy new filter normalized to pending, got %s", gotStatus)
	}
}

func TestListOrders_EmptyFilterListsAll(t *testing.T) {
	var gotStatus domain.OrderStatus
	orderRepo := &mockOrderRepository{
		ListByPlaceFunc: func(ctx context.Context, placeID uint64, status domain.OrderStatus) ([]domain.Order, error) {
			gotStatus = status
			return []domain.Order{{ID: 1}, {ID: 2}}, nil
		},
	}

	uc := NewOrderQueryUseCase(orderRepo, ownedPlace(1, 10), zap.NewNop())

	orders, err := uc.ListOrders(context.Background(), 10, 1, "")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(orders))
	}
	if gotStatus != "" {
		t.Errorf("expected empty status filter, got %q", gotStatus)
	}
}
