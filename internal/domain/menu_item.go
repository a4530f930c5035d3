package domain

import "time"

type MenuItem struct {
	ID          uint64
	PlaceID     uint64
	CategoryID  uint64
	Name        string
	Description string
	Price       float64
	// IsAvailable is nullable in storage; a missing flag means the
	// item is treated as available.
	IsAvailable *bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m MenuItem) Available() bool {
	return m.IsAvailable == nil || *m.IsAvailable
}

type Category struct {
	ID      uint64
	PlaceID uint64
	Name    string
}
