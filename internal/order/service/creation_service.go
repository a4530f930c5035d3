package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
	"qrmenu/internal/errors"
)

// priceEpsilon is the tolerance used when comparing a client-supplied
// price against the authoritative one. Mismatches beyond it are logged
// and ignored; the server price is always the one persisted.
const priceEpsilon = 0.01

type MenuItemRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.MenuItem, error)
}

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) (uint64, error)
	AppendItems(ctx context.Context, orderID uint64, items []domain.OrderItem) error
	FindByIDWithItems(ctx context.Context, id uint64) (*domain.Order, error)
}

// CreationService validates requested line items against the menu
// price authority and persists orders through the store.
type CreationService struct {
	menuRepo  MenuItemRepository
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewCreationService(menuRepo MenuItemRepository, orderRepo OrderRepository, logger *zap.Logger) *CreationService {
	return &CreationService{
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Create validates every requested line item, then persists the order
// and its items in one transaction. Any validation failure aborts the
// whole creation; no partial order is ever written. The returned order
// is re-read from the store so the caller gets the persisted snapshot.
func (s *CreationService) Create(
	ctx context.Context,
	placeID uint64,
	tableID *uint64,
	tableLabel string,
	customerNotes string,
	requests []dto.OrderItemRequest,
) (*domain.Order, error) {
	items, err := s.buildLineItems(ctx, placeID, requests)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		PlaceID:       placeID,
		TableID:       tableID,
		TableLabel:    tableLabel,
		Status:        domain.OrderStatusPending,
		CustomerNotes: customerNotes,
		Items:         items,
	}
	order.TotalAmount = order.ComputeTotal()

	orderID, err := s.orderRepo.CreateWithItems(ctx, order, items)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.Uint64("orderId", orderID),
		zap.Uint64("placeId", placeID),
		zap.Int("itemCount", len(items)),
		zap.Float64("totalAmount", order.TotalAmount))

	return s.orderRepo.FindByIDWithItems(ctx, orderID)
}

// Append validates additional line items against the same rules and
// appends them to an existing order. Existing items are never updated
// in place.
func (s *CreationService) Append(ctx context.Context, order *domain.Order, requests []dto.OrderItemRequest) (*domain.Order, error) {
	items, err := s.buildLineItems(ctx, order.PlaceID, requests)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.AppendItems(ctx, order.ID, items); err != nil {
		return nil, err
	}

	s.logger.Info("order items appended",
		zap.Uint64("orderId", order.ID),
		zap.Int("itemCount", len(items)))

	return s.orderRepo.FindByIDWithItems(ctx, order.ID)
}

// buildLineItems runs the per-line validation in request order:
// resolve the menu item, verify it belongs to the place, verify
// availability, and take the authoritative price. The first failure
// aborts, naming the offending item.
func (s *CreationService) buildLineItems(ctx context.Context, placeID uint64, requests []dto.OrderItemRequest) ([]domain.OrderItem, error) {
	if len(requests) == 0 {
		return nil, errors.NewValidationError("order must contain at least one item", errors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	items := make([]domain.OrderItem, 0, len(requests))
	for idx, req := range requests {
		if req.Quantity <= 0 {
			return nil, errors.NewValidationError("invalid item quantity", errors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", idx),
				Message: "quantity must be a positive integer",
			})
		}

		menuItem, err := s.menuRepo.FindByID(ctx, req.MenuItemID)
		if err != nil {
			return nil, err
		}

		if menuItem.PlaceID != placeID {
			return nil, errors.NewValidationError(
				fmt.Sprintf("menu item %d does not belong to this place", req.MenuItemID),
				errors.ValidationDetail{
					Field:   fmt.Sprintf("items[%d].menuItemId", idx),
					Message: "menu item belongs to a different place",
				})
		}

		if !menuItem.Available() {
			return nil, errors.NewValidationError(
				fmt.Sprintf("menu item %q is no longer available", menuItem.Name),
				errors.ValidationDetail{
					Field:   fmt.Sprintf("items[%d].menuItemId", idx),
					Message: "menu item is not available",
				})
		}

		if menuItem.Price <= 0 {
			return nil, errors.NewValidationError(
				fmt.Sprintf("menu item %d has no valid price configured", req.MenuItemID),
				errors.ValidationDetail{
					Field:   fmt.Sprintf("items[%d].menuItemId", idx),
					Message: "menu item price is not configured",
				})
		}

		// Never trust the client price: log the mismatch and persist
		// the authoritative one.
		if req.UnitPrice != nil && math.Abs(*req.UnitPrice-menuItem.Price) > priceEpsilon {
			s.logger.Warn("client price mismatch, using authoritative price",
				zap.Uint64("placeId", placeID),
				zap.Uint64("menuItemId", req.MenuItemID),
				zap.Float64("clientPrice", *req.UnitPrice),
				zap.Float64("authoritativePrice", menuItem.Price))
		}

		items = append(items, domain.OrderItem{
			MenuItemID:     req.MenuItemID,
			Name:           menuItem.Name,
			Quantity:       req.Quantity,
			UnitPrice:      menuItem.Price,
			SpecialRequest: req.SpecialRequest,
		})
	}

	return items, nil
}
