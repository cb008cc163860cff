package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// EngagementEvent is pushed to every client watching a target when a toggle
// lands, so like and subscriber counts update without polling.
type EngagementEvent struct {
	TargetID string `json:"targetId"`
	Kind     string `json:"kind"`
	Active   bool   `json:"active"`
	Count    int    `json:"count"`
}

// Hub wraps the socket.io server. Clients join rooms keyed by
// "<KIND>#<targetId>" and receive engagement events for that target.
type Hub struct {
	server *socketio.Server
}

// NewHub initializes the socket.io server and its event handlers.
func NewHub() *Hub {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, room string) {
		if room == "" {
			log.Println("invalid room in join request")
			return
		}
		c.Join(room)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, room string) {
		c.Leave(room)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("socket disconnected:", reason)
	})

	return &Hub{server: server}
}

// Server exposes the underlying socket.io server for mounting and serving.
func (h *Hub) Server() *socketio.Server {
	return h.server
}

// BroadcastEngagement pushes an engagement event to everyone in the target's
// room. Safe to call on a nil hub, which disables realtime updates.
func (h *Hub) BroadcastEngagement(room string, event EngagementEvent) {
	if h == nil {
		return
	}
	h.server.BroadcastToRoom("/", room, "engagement", event)
}
