package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCancelled OrderStatus = "cancelled"

	// OrderStatusNew is a migration alias for pending kept for older
	// clients; it is normalized to pending before any write.
	OrderStatusNew OrderStatus = "new"
)

type Order struct {
	ID            uint64
	PlaceID       uint64
	TableID       *uint64
	TableLabel    string
	Status        OrderStatus
	CustomerNotes string
	TotalAmount   float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItem
}

// ComputeTotal derives the order total from its line items. The stored
// totalAmount must always equal this sum; it is never set from input.
func (o *Order) ComputeTotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

func (o *Order) IsCancellableByCustomer() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusNew
}

// NormalizeStatus maps the legacy alias onto the canonical initial
// status. Unknown values pass through unchanged for ValidStatus to
// reject.
func NormalizeStatus(s OrderStatus) OrderStatus {
	if s == OrderStatusNew {
		return OrderStatusPending
	}
	return s
}

func ValidStatus(s OrderStatus) bool {
	switch NormalizeStatus(s) {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusServed, OrderStatusCancelled:
		return true
	}
	return false
}

// strictTransitions is the forward-only graph used when strict mode is
// enabled. The default service behavior is permissive: restaurateurs
// may overwrite any recognized status with any other for manual
// correction.
var strictTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady},
	OrderStatusReady:     {OrderStatusServed},
	OrderStatusServed:    {},
	OrderStatusCancelled: {},
}

func CanTransition(from, to OrderStatus) bool {
	from = NormalizeStatus(from)
	to = NormalizeStatus(to)
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
