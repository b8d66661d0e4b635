package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"grid-balance/internal/config"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes client messages to the
// live runner.
type Handler struct {
	hub  *Hub
	live *Live
}

func NewHandler(hub *Hub, live *Live) *Handler {
	return &Handler{hub: hub, live: live}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// Push current state so a fresh client knows whether live mode runs.
	h.sendState(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		return
	}

	switch env.Type {
	case "start":
		h.live.Start()
	case "stop":
		h.live.Stop()
	case "set_config":
		var p SetConfigPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "invalid set_config payload")
			return
		}
		merged := config.Merge(config.Default(), p.Config)
		if err := h.live.SetConfig(merged); err != nil {
			h.sendError(c, err.Error())
		}
	case "set_interval":
		var p SetIntervalPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "invalid set_interval payload")
			return
		}
		h.live.SetInterval(time.Duration(p.IntervalSec * float64(time.Second)))
	default:
		log.Printf("Unknown message type: %q", env.Type)
	}
}

func (h *Handler) sendState(c *Client) {
	p := StatePayload{Running: h.live.Running()}
	raw, _ := json.Marshal(p)
	env, _ := json.Marshal(Envelope{Type: "state", Payload: raw})
	select {
	case c.send <- env:
	default:
	}
}

func (h *Handler) sendError(c *Client, msg string) {
	raw, _ := json.Marshal(ErrorPayload{Message: msg})
	env, _ := json.Marshal(Envelope{Type: "error", Payload: raw})
	select {
	case c.send <- env:
	default:
	}
}
