package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

// Client is one WebSocket session for a user
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub tracks connected clients and pushes per-user events.
// A user may hold several sessions at once (multiple devices).
type Hub struct {
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client

	// user-targeted event delivery
	events chan *userEvent

	mu sync.RWMutex
}

type userEvent struct {
	UserID  uint
	Payload []byte
}

// OrderStatusEvent is pushed when an order changes status
type OrderStatusEvent struct {
	Type      string            `json:"type"` // always "order_status"
	OrderID   uint              `json:"order_id"`
	Status    model.OrderStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		events:     make(chan *userEvent, 1024),
	}
}

// Run processes registration and event delivery. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			removed := false
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					} else {
						removed = true
					}
				}
				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}
			}
			h.mu.Unlock()
			// A session can be queued for removal more than once (full
			// send buffer plus read pump exit); only the removal that
			// actually took the session out may close its channel.
			if removed {
				close(client.Send)
				logger.Info("WebSocket client unregistered", map[string]interface{}{
					"user_id": client.UserID,
				})
			}

		case event := <-h.events:
			h.mu.RLock()
			if clientList, ok := h.clients[event.UserID]; ok {
				for _, client := range clientList {
					select {
					case client.Send <- event.Payload:
					default:
						// Send buffer full, drop the session
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"user_id": event.UserID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// SendToUser delivers payload to every session of one user.
// Delivery is best-effort: offline users and full buffers drop the event.
func (h *Hub) SendToUser(userID uint, payload interface{}) {
	if !h.IsUserOnline(userID) {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal push event", err, nil)
		return
	}

	select {
	case h.events <- &userEvent{UserID: userID, Payload: data}:
	default:
		logger.Warn("Event channel full, push dropped", map[string]interface{}{
			"user_id": userID,
		})
	}
}

// NotifyOrderStatus pushes an order status change to the order's owner
func (h *Hub) NotifyOrderStatus(userID, orderID uint, status model.OrderStatus) {
	h.SendToUser(userID, OrderStatusEvent{
		Type:      "order_status",
		OrderID:   orderID,
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Register queues a client for registration
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister queues a client for removal
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsUserOnline reports whether the user has at least one session
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
