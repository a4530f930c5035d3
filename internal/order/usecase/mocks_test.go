package usecase

import (
	"context"
	"fmt"
	"sync"

	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
	apperrors "qrmenu/internal/errors"
)

func uintPtr(v uint64) *uint64 {
	return &v
}

type mockPlaceRepository struct {
	FindByIDFunc  func(ctx context.Context, id uint64) (*domain.Place, error)
	FindTableFunc func(ctx context.Context, tableID, placeID uint64) (*domain.Table, error)
}

func (m *mockPlaceRepository) FindByID(ctx context.Context, id uint64) (*domain.Place, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockPlaceRepository) FindTable(ctx context.Context, tableID, placeID uint64) (*domain.Table, error) {
	return m.FindTableFunc(ctx, tableID, placeID)
}

// ownedPlace serves a single place owned by the given user and no tables.
func ownedPlace(placeID, ownerID uint64) *mockPlaceRepository {
	return &mockPlaceRepository{
		FindByIDFunc: func(ctx context.Context, id uint64) (*domain.Place, error) {
			if id != placeID {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %d not found", id))
			}
			return &domain.Place{ID: placeID, OwnerID: ownerID, Name: "Trattoria"}, nil
		},
		FindTableFunc: func(ctx context.Context, tableID, pID uint64) (*domain.Table, error) {
			return nil, apperrors.NewNotFoundError("table not found")
		},
	}
}

type mockOrderRepository struct {
	FindByIDWithItemsFunc func(ctx context.Context, id uint64) (*domain.Order, error)
	ListByPlaceFunc       func(ctx context.Context, placeID uint64, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatusFunc      func(ctx context.Context, id uint64, status domain.OrderStatus) error
	DeleteFunc            func(ctx context.Context, id uint64) error
}

func (m *mockOrderRepository) FindByIDWithItems(ctx context.Context, id uint64) (*domain.Order, error) {
	return m.FindByIDWithItemsFunc(ctx, id)
}

func (m *mockOrderRepository) ListByPlace(ctx context.Context, placeID uint64, status domain.OrderStatus) ([]domain.Order, error) {
	return m.ListByPlaceFunc(ctx, placeID, status)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uint64) error {
	return m.DeleteFunc(ctx, id)
}

type mockOrderBuilder struct {
	CreateFunc func(ctx context.Context, placeID uint64, tableID *uint64, tableLabel, customerNotes string, requests []dto.OrderItemRequest) (*domain.Order, error)
	AppendFunc func(ctx context.Context, order *domain.Order, requests []dto.OrderItemRequest) (*domain.Order, error)
}

func (m *mockOrderBuilder) Create(ctx context.Context, placeID uint64, tableID *uint64, tableLabel, customerNotes string, requests []dto.OrderItemRequest) (*domain.Order, error) {
	return m.CreateFunc(ctx, placeID, tableID, tableLabel, customerNotes, requests)
}

func (m *mockOrderBuilder) Append(ctx context.Context, order *domain.Order, requests []dto.OrderItemRequest) (*domain.Order, error) {
	return m.AppendFunc(ctx, order, requests)
}

// recordingNotifier captures every broadcast for assertion.
type recordingNotifier struct {
	mu            sync.Mutex
	newOrders     []dto.OrderPayload
	statusChanges []statusChange
}

type statusChange struct {
	placeID   uint64
	orderID   uint64
	oldStatus domain.OrderStatus
	newStatus domain.OrderStatus
}

func (n *recordingNotifier) NotifyNewOrder(placeID uint64, order dto.OrderPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.newOrders = append(n.newOrders, order)
}

func (n *recordingNotifier) NotifyOrderStatusChange(placeID, orderID uint64, oldStatus, newStatus domain.OrderStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statusChanges = append(n.statusChanges, statusChange{placeID, orderID, oldStatus, newStatus})
}

// recordingInvalidator captures invalidated cache keys.
type recordingInvalidator struct {
	mu   sync.Mutex
	keys []string
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, keys...)
}

func (r *recordingInvalidator) contains(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}
