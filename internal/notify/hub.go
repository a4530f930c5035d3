package notify

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"qrmenu/internal/domain"
	"qrmenu/internal/dto"
)

type subscription struct {
	client  *Client
	placeID uint64
}

type broadcast struct {
	placeID uint64
	data    []byte
}

// Hub fans order events out to every dashboard connection joined to a
// place group. Delivery is at-most-once: a connection that is absent,
// slow, or disconnected at broadcast time simply misses the event, and
// dashboards reconcile by periodic refresh.
type Hub struct {
	logger *zap.Logger

	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
	events      chan broadcast

	clients map[*Client]struct{}
	groups  map[uint64]map[*Client]struct{}

	running atomic.Bool

	// counts mirrors group membership for observability; fan-out
	// itself only ever touches groups from the run loop.
	mu     sync.RWMutex
	counts map[uint64]int
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:      logger,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		events:      make(chan broadcast, 64),
		clients:     make(map[*Client]struct{}),
		groups:      make(map[uint64]map[*Client]struct{}),
		counts:      make(map[uint64]int),
	}
}

// Run owns all connection and group state. It exits when ctx is
// cancelled, closing every connection.
func (h *Hub) Run(ctx context.Context) {
	h.running.Store(true)
	defer h.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Debug("client connected", zap.String("clientId", client.id))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}

		case sub := <-h.subscribe:
			if _, ok := h.clients[sub.client]; !ok {
				continue
			}
			group := h.groups[sub.placeID]
			if group == nil {
				group = make(map[*Client]struct{})
				h.groups[sub.placeID] = group
			}
			if _, joined := group[sub.client]; !joined {
				group[sub.client] = struct{}{}
				sub.client.places[sub.placeID] = struct{}{}
				h.setCount(sub.placeID, len(group))
			}
			h.logger.Info("client joined place group",
				zap.String("clientId", sub.client.id),
				zap.Uint64("placeId", sub.placeID),
				zap.Int("clients", len(group)))

		case sub := <-h.unsubscribe:
			h.leaveGroup(sub.client, sub.placeID)

		case evt := <-h.events:
			for client := range h.groups[evt.placeID] {
				select {
				case client.send <- evt.data:
				default:
					// slow consumer; at-most-once means we drop it
					// rather than block the loop
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	for placeID := range client.places {
		h.leaveGroup(client, placeID)
	}
	close(client.send)
}

func (h *Hub) leaveGroup(client *Client, placeID uint64) {
	group := h.groups[placeID]
	if group == nil {
		return
	}
	if _, joined := group[client]; !joined {
		return
	}
	delete(group, client)
	delete(client.places, placeID)
	if len(group) == 0 {
		delete(h.groups, placeID)
	}
	h.setCount(placeID, len(group))
}

func (h *Hub) setCount(placeID uint64, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n == 0 {
		delete(h.counts, placeID)
		return
	}
	h.counts[placeID] = n
}

// ClientCount reports how many connections are joined to a place
// group. Observability only.
func (h *Hub) ClientCount(placeID uint64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.counts[placeID]
}

// NotifyNewOrder broadcasts an order-created event to the place group.
// Best-effort: callers must not depend on delivery.
func (h *Hub) NotifyNewOrder(placeID uint64, order dto.OrderPayload) {
	evt := dto.NewOrderEvent{
		Type:  dto.EventNewOrder,
		Order: order,
	}
	h.emit(placeID, evt)
}

// NotifyOrderStatusChange broadcasts a status-changed event to the
// place group.
func (h *Hub) NotifyOrderStatusChange(placeID, orderID uint64, oldStatus, newStatus domain.OrderStatus) {
	evt := dto.OrderStatusChangedEvent{
		Type:      dto.EventOrderStatusChanged,
		OrderID:   orderID,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
	}
	h.emit(placeID, evt)
}

func (h *Hub) emit(placeID uint64, evt interface{}) {
	if h == nil || !h.running.Load() {
		if h != nil {
			h.logger.Warn("notification hub not running, dropping event", zap.Uint64("placeId", placeID))
		}
		return
	}

	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("marshaling event", zap.Error(err))
		return
	}

	select {
	case h.events <- broadcast{placeID: placeID, data: data}:
	default:
		h.logger.Warn("event buffer full, dropping event", zap.Uint64("placeId", placeID))
	}
}
