package dto

type PublicMenu struct {
	PlaceID    uint64           `json:"placeId"`
	PlaceName  string           `json:"placeName"`
	Categories []PublicCategory `json:"categories"`
}

type PublicCategory struct {
	ID    uint64           `json:"id"`
	Name  string           `json:"name"`
	Items []PublicMenuItem `json:"items"`
}

type PublicMenuItem struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

type PlaceStats struct {
	TablesCount int `json:"tablesCount"`
	OrdersToday int `json:"ordersToday"`
	OrdersWeek  int `json:"ordersWeek"`
}
