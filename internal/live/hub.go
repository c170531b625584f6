package live

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Update is pushed to every connected admin client when a reservation,
// payment or waitlist entry changes.
type Update struct {
	Type      string      `json:"type"`
	EntityID  int         `json:"entity_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Update
}

var defaultHub = &hub{
	clients:   make(map[*websocket.Conn]bool),
	broadcast: make(chan Update, 64),
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Start runs the broadcaster goroutine. Call once at startup.
func Start() {
	go defaultHub.run()
}

// Publish queues an update for all connected clients. Drops the update
// when the broadcast buffer is full rather than blocking the request.
func Publish(updateType string, entityID int, payload interface{}) {
	select {
	case defaultHub.broadcast <- Update{
		Type:      updateType,
		EntityID:  entityID,
		Payload:   payload,
		Timestamp: time.Now(),
	}:
	default:
		log.Printf("[Live] Broadcast buffer full, dropping %s update", updateType)
	}
}

// ServeWS upgrades the connection and registers the client. The caller
// is responsible for authentication, this is mounted behind the auth
// middleware.
func ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Live] WebSocket upgrade error: %v", err)
		return
	}

	defaultHub.clientsMux.Lock()
	defaultHub.clients[conn] = true
	defaultHub.clientsMux.Unlock()

	go func() {
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				defaultHub.clientsMux.Lock()
				delete(defaultHub.clients, conn)
				defaultHub.clientsMux.Unlock()
				return
			}
		}
	}()
}

func (h *hub) run() {
	for update := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(update); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.clientsMux.Unlock()
	}
}
