package dto

import (
	"time"

	"qrmenu/internal/domain"
)

type CreateOrderRequest struct {
	TableID       *uint64            `json:"tableId,omitempty"`
	TableNumber   string             `json:"tableNumber,omitempty"`
	Items         []OrderItemRequest `json:"items"`
	CustomerNotes string             `json:"customerNotes,omitempty"`
}

type OrderItemRequest struct {
	MenuItemID uint64 `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	// UnitPrice is advisory only. The server re-reads the
	// authoritative price and persists that; a mismatch is logged,
	// never rejected.
	UnitPrice      *float64 `json:"unitPrice,omitempty"`
	SpecialRequest string   `json:"specialRequest,omitempty"`
}

type AppendItemsRequest struct {
	Items []OrderItemRequest `json:"items"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderPayload struct {
	ID            uint64             `json:"id"`
	PlaceID       uint64             `json:"placeId"`
	Table         string             `json:"table"`
	TableID       *uint64            `json:"tableId"`
	Status        string             `json:"status"`
	TotalAmount   float64            `json:"totalAmount"`
	CustomerNotes string             `json:"customerNotes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	Items         []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ID             uint64  `json:"id"`
	MenuItemID     uint64  `json:"menuItemId"`
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	SpecialRequest string  `json:"specialRequest,omitempty"`
}

type OrderDeletedPayload struct {
	ID      uint64 `json:"id"`
	Deleted bool   `json:"deleted"`
}

// NewOrderPayload is the one projection of an order shared by REST
// responses and hub broadcasts.
func NewOrderPayload(o *domain.Order) OrderPayload {
	items := make([]OrderItemPayload, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemPayload{
			ID:             item.ID,
			MenuItemID:     item.MenuItemID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			SpecialRequest: item.SpecialRequest,
		}
	}

	return OrderPayload{
		ID:            o.ID,
		PlaceID:       o.PlaceID,
		Table:         o.TableLabel,
		TableID:       o.TableID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		CustomerNotes: o.CustomerNotes,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}
