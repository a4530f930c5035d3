package dto

const (
	EventNewOrder           = "new-order"
	EventOrderStatusChanged = "order-status-changed"

	MessageJoinPlace  = "join-place"
	MessageLeavePlace = "leave-place"
)

type NewOrderEvent struct {
	Type  string       `json:"type"`
	Order OrderPayload `json:"order"`
}

type OrderStatusChangedEvent struct {
	Type      string `json:"type"`
	OrderID   uint64 `json:"orderId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

// ClientMessage is what a dashboard sends over the channel to manage
// its place-group membership.
type ClientMessage struct {
	Type    string `json:"type"`
	PlaceID uint64 `json:"placeId"`
}
