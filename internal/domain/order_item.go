package domain

type OrderItem struct {
	ID         uint64
	OrderID    uint64
	MenuItemID uint64
	// Name is the menu item's current display name, joined on read.
	// It is not stored on the line item row.
	Name           string
	Quantity       int
	UnitPrice      float64
	SpecialRequest string
}
