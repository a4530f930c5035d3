package notify

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"qrmenu/internal/dto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards are served from other origins; the principal on the
	// socket is only used for membership messages, never for writes.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one dashboard connection. Group membership changes flow
// through the hub's run loop; the client only parses messages and
// pumps bytes.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	places map[uint64]struct{}
	logger *zap.Logger
}

// ServeWS upgrades the request and registers the connection with the
// hub. Clients start with no group memberships; a reconnecting
// dashboard re-joins its places itself.
func ServeWS(hub *Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		id := uuid.New().String()
		client := &Client{
			id:     id,
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte, sendBufferSize),
			places: make(map[uint64]struct{}),
			logger: logger.With(zap.String("clientId", id)),
		}

		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var msg dto.ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Warn("ignoring malformed client message", zap.Error(err))
			continue
		}

		switch msg.Type {
		case dto.MessageJoinPlace:
			if msg.PlaceID > 0 {
				c.hub.subscribe <- subscription{client: c, placeID: msg.PlaceID}
			}
		case dto.MessageLeavePlace:
			if msg.PlaceID > 0 {
				c.hub.unsubscribe <- subscription{client: c, placeID: msg.PlaceID}
			}
		default:
			c.logger.Warn("ignoring unknown message type", zap.String("type", msg.Type))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
