package room

import (
	"sync"
	"time"

	"monster-arena/internal/game"
)

// Player binds a logical player to its transport connection.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	ConnID string `json:"-"`
}

// Room is one live two-player session. All mutation happens under mu, which
// stands in for the single-threaded event loop of the original design: per
// room, plays, ticks and teardown are serialized in arrival order.
type Room struct {
	ID        string
	CreatedAt time.Time
	Players   map[game.Side]*Player
	State     *game.State
	Hands     game.Hands

	mu       sync.Mutex
	stop     chan struct{}
	stopOnce sync.Once
}

func newRoom(id string) *Room {
	return &Room{
		ID:        id,
		CreatedAt: time.Now(),
		Players:   map[game.Side]*Player{},
		State:     game.NewState(),
		Hands:     game.Hands{game.SidePlayer1: {}, game.SidePlayer2: {}},
		stop:      make(chan struct{}),
	}
}

// SideOf reports which seat the given player holds.
func (r *Room) SideOf(playerID string) (game.Side, bool) {
	for side, p := range r.Players {
		if p != nil && p.ID == playerID {
			return side, true
		}
	}
	return "", false
}

func (r *Room) hasConn(connID string) bool {
	for _, p := range r.Players {
		if p != nil && p.ConnID == connID {
			return true
		}
	}
	return false
}

func (r *Room) halt() {
	r.stopOnce.Do(func() { close(r.stop) })
}
