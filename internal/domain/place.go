package domain

import "time"

type Place struct {
	ID        uint64
	OwnerID   uint64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Place) IsOwnedBy(userID uint64) bool {
	return p.OwnerID == userID
}

type Table struct {
	ID      uint64
	PlaceID uint64
	Label   string
}
