package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"monster-arena/internal/game"
	"monster-arena/internal/room"
	"monster-arena/internal/store"
)

// RoomService is the slice of the registry the router needs.
type RoomService interface {
	CreateRoom(playerID, playerName, connID string) (*room.Room, error)
	JoinRoom(roomID, playerID, playerName, connID string) (*room.Room, error)
	PlayCard(roomID string, side game.Side, cardID string) error
	HandleDisconnect(connID string)
}

// PlayerLookup is the player-directory slice used by getPlayer.
type PlayerLookup interface {
	GetPlayer(id string) (*store.PlayerRecord, bool)
	UpdateStats(id string, winsDelta, lossesDelta int) error
	Stats(id string) (store.PlayerStats, bool)
}

// GameRecords is the game-record slice used by getGame and gameEnded.
type GameRecords interface {
	GetGame(id string) (*store.GameRecord, bool)
	SaveGame(id string, snapshot []byte) error
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// client wraps one websocket connection. gorilla allows a single writer at
// a time, so every write goes through the client's mutex.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(event string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(envelope{Event: event, Data: data}); err != nil {
		log.Printf("write to %s failed: %v", c.id, err)
	}
}

// Hub is the session event router: it owns the connections, maps them to
// room seats and fans masked state out per player.
type Hub struct {
	mu      sync.RWMutex
	conns   map[string]*client            // connID -> client
	members map[string]map[string]*client // roomID -> playerID -> client

	registry RoomService
	players  PlayerLookup
	games    GameRecords
}

func NewHub(registry RoomService, players PlayerLookup, games GameRecords) *Hub {
	return &Hub{
		conns:    map[string]*client{},
		members:  map[string]map[string]*client{},
		registry: registry,
		players:  players,
		games:    games,
	}
}

// HandleWS upgrades the connection and runs its read loop until it drops.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}

	cl := &client{id: uuid.NewString(), conn: conn}
	h.mu.Lock()
	h.conns[cl.id] = cl
	h.mu.Unlock()
	log.Printf("connection %s established", cl.id)

	defer func() {
		h.dropConn(cl.id)
		h.registry.HandleDisconnect(cl.id)
		_ = conn.Close()
	}()

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("connection %s closed: %v", cl.id, err)
			return
		}
		h.dispatch(cl, msg)
	}
}

// bind attaches a connection to a room seat so per-player broadcasts can
// find it. A seat already held by a different connection is never
// overwritten: ok reports whether the seat now belongs to cl, and created
// whether this call added the entry (so failure paths only remove what
// they added).
func (h *Hub) bind(roomID, playerID string, cl *client) (created, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.members[roomID]; !ok {
		h.members[roomID] = map[string]*client{}
	}
	if existing, ok := h.members[roomID][playerID]; ok {
		return false, existing == cl
	}
	h.members[roomID][playerID] = cl
	return true, true
}

func (h *Hub) unbind(roomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.members[roomID]; ok {
		delete(m, playerID)
		if len(m) == 0 {
			delete(h.members, roomID)
		}
	}
}

// dropConn forgets a connection and every seat it held.
func (h *Hub) dropConn(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connID)
	for roomID, m := range h.members {
		for playerID, cl := range m {
			if cl.id == connID {
				delete(m, playerID)
			}
		}
		if len(m) == 0 {
			delete(h.members, roomID)
		}
	}
}

// ToPlayer implements room.Broadcaster. Masked views travel this path, so
// one seat's true hand never reaches the other connection.
func (h *Hub) ToPlayer(roomID, playerID, event string, data interface{}) {
	h.mu.RLock()
	cl := h.members[roomID][playerID]
	h.mu.RUnlock()
	if cl == nil {
		return
	}
	cl.send(event, data)
}

// ToRoom implements room.Broadcaster for events both seats may see.
func (h *Hub) ToRoom(roomID, event string, data interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, 2)
	for _, cl := range h.members[roomID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()
	for _, cl := range clients {
		cl.send(event, data)
	}
}

// DropRoom implements room.Broadcaster; called on room teardown.
func (h *Hub) DropRoom(roomID string) {
	h.mu.Lock()
	delete(h.members, roomID)
	h.mu.Unlock()
}
