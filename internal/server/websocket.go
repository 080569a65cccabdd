package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"human-bingo/internal/logger"
	"human-bingo/internal/monitor"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// wsClient wraps one websocket connection. gorilla/websocket allows a single
// concurrent writer per connection, so every outbound frame goes through
// write, which serializes on the client's own mutex. Reads stay unguarded;
// only the connection's readWS goroutine reads.
type wsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// wsHub is the process-scoped connection registry: each live client belongs
// to at most one room (game code). Entries are added on an explicit join
// event and removed synchronously on disconnect.
type wsHub struct {
	mu      sync.Mutex
	rooms   map[string]map[*wsClient]struct{}
	clients map[*wsClient]string
	metrics *monitor.Metrics
}

func newWSHub(metrics *monitor.Metrics) *wsHub {
	return &wsHub{
		rooms:   make(map[string]map[*wsClient]struct{}),
		clients: make(map[*wsClient]string),
		metrics: metrics,
	}
}

// Join routes a client into a room, moving it out of its previous room if it
// had one.
func (h *wsHub) Join(gameID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if previous, ok := h.clients[client]; ok && previous != gameID {
		h.dropLocked(previous, client)
	}
	room := h.rooms[gameID]
	if room == nil {
		room = make(map[*wsClient]struct{})
		h.rooms[gameID] = room
	}
	room[client] = struct{}{}
	h.clients[client] = gameID
	h.metrics.ActiveRooms.Set(float64(len(h.rooms)))
}

// Remove unregisters and closes a client. Safe to call for clients that never
// joined a room.
func (h *wsHub) Remove(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if gameID, ok := h.clients[client]; ok {
		h.dropLocked(gameID, client)
	}
	delete(h.clients, client)
	_ = client.conn.Close()
	h.metrics.ActiveRooms.Set(float64(len(h.rooms)))
}

func (h *wsHub) dropLocked(gameID string, client *wsClient) {
	room := h.rooms[gameID]
	if room == nil {
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, gameID)
	}
}

func (h *wsHub) Send(client *wsClient, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = client.write(data)
}

// Broadcast delivers a payload to every client currently in a room,
// best-effort: a failed write drops that client only and is never surfaced
// to the caller.
func (h *wsHub) Broadcast(gameID string, payload any) {
	h.mu.Lock()
	room := h.rooms[gameID]
	clients := make([]*wsClient, 0, len(room))
	for client := range room {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, client := range clients {
		if err := client.write(data); err != nil {
			h.metrics.BroadcastFailures.Inc()
			h.Remove(client)
		}
	}
}

type wsMessage struct {
	Type     string `json:"type"`
	GameID   string `json:"game_id,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
	PromptID string `json:"prompt_id,omitempty"`
	Partner  string `json:"partner,omitempty"`
}

type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func errorMessage(message string) wsError {
	return wsError{Type: "error", Error: message}
}

func (s *Server) handleWebsocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	logger.Log.Infof("ws connected remote=%s", c.Request.RemoteAddr)
	s.metrics.Connections.Inc()
	go s.readWS(&wsClient{conn: conn})
}

func (s *Server) readWS(client *wsClient) {
	defer func() {
		s.hub.Remove(client)
		s.metrics.Connections.Dec()
	}()
	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			logger.Log.Infof("ws disconnected error=%v", err)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.hub.Send(client, errorMessage("invalid message"))
			continue
		}
		switch msg.Type {
		case "join":
			s.handleJoinEvent(client, msg)
		case "mark":
			s.handleMarkEvent(client, msg)
		default:
			s.hub.Send(client, errorMessage("unknown message type"))
		}
	}
}

func (s *Server) handleJoinEvent(client *wsClient, msg wsMessage) {
	code := normalizeGameCode(msg.GameID)
	if code == "" {
		s.hub.Send(client, errorMessage("game_id is required"))
		return
	}
	if _, err := s.store.GetGame(context.Background(), code); err != nil {
		s.hub.Send(client, errorMessage("game not found"))
		return
	}
	s.hub.Join(code, client)
	logger.Log.Infof("ws joined room game_id=%s", code)
	s.hub.Send(client, map[string]any{"type": "joined", "ok": true})
}
