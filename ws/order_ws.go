package ws

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/SwatiiB/kleCanteen-sub000/services"
	"github.com/SwatiiB/kleCanteen-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderHub pushes order status changes to the staff boards subscribed to a
// canteen. It implements services.OrderNotifier.
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // canteenID -> set of clients
	broadcast  chan broadcastEvent
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
}

type Subscription struct {
	Conn      *websocket.Conn
	CanteenID uint
	UserID    uint
}

type broadcastEvent struct {
	CanteenID uint
	Event     services.OrderStatusEvent
}

func NewOrderHub() *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan broadcastEvent),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
	}
}

// NotifyStatus queues a status event for every board watching the canteen.
func (h *OrderHub) NotifyStatus(canteenID uint, ev services.OrderStatusEvent) {
	h.broadcast <- broadcastEvent{CanteenID: canteenID, Event: ev}
}

func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.CanteenID] == nil {
				h.clients[sub.CanteenID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.CanteenID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.CanteenID][sub.Conn]; ok {
				delete(h.clients[sub.CanteenID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.CanteenID] {
				if err := conn.WriteJSON(msg.Event); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[msg.CanteenID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders/:canteenId — staff of that canteen, or admin.
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	var canteenID uint
	fmt.Sscan(c.Param("canteenId"), &canteenID)

	userID := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)

	if role != "admin" && !(role == "staff" && utils.CurrentCanteenID(c) == canteenID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, CanteenID: canteenID, UserID: userID}
	h.register <- sub

	go h.keepAlive(sub)
}

// keepAlive drains the connection until the client goes away. Boards only
// listen; inbound frames are ignored.
func (h *OrderHub) keepAlive(sub Subscription) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
