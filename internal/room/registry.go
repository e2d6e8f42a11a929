package room

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"monster-arena/internal/catalog"
	"monster-arena/internal/config"
	"monster-arena/internal/game"
	"monster-arena/internal/store"
)

var (
	ErrPlayerNotRegistered = errors.New("player not registered")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrAlreadyInRoom       = errors.New("player already seated in room")
	ErrInvalidSide         = errors.New("invalid player role")
)

// Directory is the player-directory collaborator.
type Directory interface {
	GetPlayer(id string) (*store.PlayerRecord, bool)
	UpdateStats(id string, winsDelta, lossesDelta int) error
}

// GameStore is the durable game-record collaborator. Writes are
// fire-and-forget from the registry's perspective.
type GameStore interface {
	SaveGame(id string, snapshot []byte) error
}

// Registry owns every live room: creation, join, card plays, the combat
// ticker and teardown. Rooms are process-memory only; a restart loses them
// and only the last persisted snapshot survives in the game store.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	rng   *rand.Rand

	cat   *catalog.Catalog
	dir   Directory
	games GameStore
	hub   Broadcaster

	rules game.Rules
	tick  time.Duration
}

func NewRegistry(cat *catalog.Catalog, dir Directory, games GameStore, cfg *config.Config) *Registry {
	return &Registry{
		rooms: map[string]*Room{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cat:   cat,
		dir:   dir,
		games: games,
		hub:   noopBroadcaster{},
		rules: game.Rules{
			StartEnergy:      cfg.Combat.StartEnergy,
			HandSize:         cfg.Combat.HandSize,
			DamageFloor:      cfg.Combat.DamageFloor,
			DefenseFactorPct: cfg.Combat.DefenseFactorPct,
			EnergyLossPct:    cfg.Combat.EnergyLossPct,
		},
		tick: time.Duration(cfg.Combat.TickMS) * time.Millisecond,
	}
}

// SetBroadcaster wires the hub in after construction, breaking the
// registry/hub construction cycle.
func (reg *Registry) SetBroadcaster(b Broadcaster) {
	reg.hub = b
}

func (reg *Registry) Rules() game.Rules {
	return reg.rules
}

// CreateRoom registers the caller as player1 of a new waiting room and
// returns it. The caller must exist in the player directory.
func (reg *Registry) CreateRoom(playerID, playerName, connID string) (*Room, error) {
	if _, ok := reg.dir.GetPlayer(playerID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotRegistered, playerID)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := reg.newRoomID()
	for _, taken := reg.rooms[id]; taken; _, taken = reg.rooms[id] {
		id = reg.newRoomID()
	}
	r := newRoom(id)
	r.Players[game.SidePlayer1] = &Player{ID: playerID, Name: playerName, ConnID: connID}
	reg.rooms[id] = r
	log.Printf("room %s created by %s", id, playerID)
	return r, nil
}

// JoinRoom seats the caller as player2, deals both hands, starts the game
// and its combat ticker, and pushes the opening masked views to both sides.
func (reg *Registry) JoinRoom(roomID, playerID, playerName, connID string) (*Room, error) {
	r, ok := reg.Get(roomID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	r.mu.Lock()
	if r.Players[game.SidePlayer2] != nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrRoomFull, roomID)
	}
	// A seated id joining again would alias both seats to one identity and
	// let a second connection receive the host's unmasked view.
	if _, seated := r.SideOf(playerID); seated {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInRoom, playerID)
	}
	r.Players[game.SidePlayer2] = &Player{ID: playerID, Name: playerName, ConnID: connID}

	for _, side := range []game.Side{game.SidePlayer1, game.SidePlayer2} {
		hand, err := reg.cat.DealHand(reg.rules.HandSize)
		if err != nil {
			r.mu.Unlock()
			return nil, err
		}
		r.Hands[side] = hand
	}
	r.State.Start(reg.rules)

	reg.persist(r)
	reg.broadcastState(r)
	r.mu.Unlock()

	go reg.runTicker(r)
	log.Printf("room %s joined by %s, game started", roomID, playerID)
	return r, nil
}

func (reg *Registry) Get(roomID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[roomID]
	return r, ok
}

// Remove tears a room down: the ticker stops, the hub forgets the room and
// the registry drops it. The persisted snapshot stays in the game store.
func (reg *Registry) Remove(roomID string) {
	reg.mu.Lock()
	r, ok := reg.rooms[roomID]
	if ok {
		delete(reg.rooms, roomID)
	}
	reg.mu.Unlock()
	if !ok {
		return
	}
	r.halt()
	reg.hub.DropRoom(roomID)
	log.Printf("room %s removed", roomID)
}

// RoomsWithConn lists the rooms a connection participates in. Used for
// disconnect cleanup.
func (reg *Registry) RoomsWithConn(connID string) []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	var ids []string
	for id, r := range reg.rooms {
		if r.hasConn(connID) {
			ids = append(ids, id)
		}
	}
	return ids
}

// PlayCard validates and applies one card play for the given seat. A
// rejected play leaves the room untouched.
func (reg *Registry) PlayCard(roomID string, side game.Side, cardID string) error {
	if !side.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	r, ok := reg.Get(roomID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	card, err := r.State.PlayCard(side, cardID, r.Hands)
	if err != nil {
		return err
	}

	// Top the hand back up so hand+battlefield stays at the hand size.
	for len(r.Hands[side])+len(r.State.Battlefield[side]) < reg.rules.HandSize {
		r.Hands[side] = append(r.Hands[side], reg.cat.Draw())
	}

	reg.persist(r)
	reg.broadcastState(r)
	reg.hub.ToRoom(roomID, "cardPlayed", map[string]interface{}{
		"playerRole": side,
		"card":       card,
	})
	return nil
}

// HandleDisconnect notifies the remaining participant of every room the
// dropped connection was in and tears those rooms down. No grace period,
// no resume.
func (reg *Registry) HandleDisconnect(connID string) {
	for _, roomID := range reg.RoomsWithConn(connID) {
		r, ok := reg.Get(roomID)
		if !ok {
			continue
		}
		r.mu.Lock()
		var gone, stays *Player
		for _, p := range r.Players {
			if p == nil {
				continue
			}
			if p.ConnID == connID {
				gone = p
			} else {
				stays = p
			}
		}
		r.mu.Unlock()
		if stays != nil && gone != nil {
			reg.hub.ToPlayer(roomID, stays.ID, "playerDisconnected", map[string]interface{}{
				"message":            fmt.Sprintf("%s left the game", gone.Name),
				"disconnectedPlayer": gone.ID,
			})
		}
		reg.Remove(roomID)
	}
}

// runTicker drives the room's combat loop. Owned by the registry and tied
// to room lifetime, so no single client connection has to keep the clock
// alive.
func (reg *Registry) runTicker(r *Room) {
	t := time.NewTicker(reg.tick)
	defer t.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-t.C:
			if done := reg.tickRoom(r); done {
				return
			}
		}
	}
}

// tickRoom resolves one combat round. Returns true once the game finished
// and the room was torn down.
func (reg *Registry) tickRoom(r *Room) bool {
	r.mu.Lock()
	res, ok := r.State.ResolveCombat(reg.rules)
	if !ok {
		r.mu.Unlock()
		return false
	}
	reg.persist(r)
	reg.broadcastState(r)

	if !res.Finished {
		r.mu.Unlock()
		return false
	}

	winner := r.State.Winner()
	winnerPlayer := r.Players[winner]
	loserPlayer := r.Players[winner.Opponent()]
	killCount := map[game.Side]int{
		game.SidePlayer1: r.State.KillCount[game.SidePlayer1],
		game.SidePlayer2: r.State.KillCount[game.SidePlayer2],
	}
	energy := map[game.Side]int{
		game.SidePlayer1: r.State.Energy[game.SidePlayer1],
		game.SidePlayer2: r.State.Energy[game.SidePlayer2],
	}
	r.mu.Unlock()

	if winnerPlayer != nil {
		if err := reg.dir.UpdateStats(winnerPlayer.ID, 1, 0); err != nil {
			log.Printf("stats update failed for %s: %v", winnerPlayer.ID, err)
		}
	}
	if loserPlayer != nil {
		if err := reg.dir.UpdateStats(loserPlayer.ID, 0, 1); err != nil {
			log.Printf("stats update failed for %s: %v", loserPlayer.ID, err)
		}
	}

	reg.hub.ToRoom(r.ID, "gameEnded", map[string]interface{}{
		"winner":     winner,
		"winnerId":   playerID(winnerPlayer),
		"loserId":    playerID(loserPlayer),
		"killCount":  killCount,
		"energyLeft": energy,
	})
	reg.Remove(r.ID)
	return true
}

// broadcastState fans the two masked views out, one per seat. Caller holds
// the room lock.
func (reg *Registry) broadcastState(r *Room) {
	for side, p := range r.Players {
		if p == nil {
			continue
		}
		view := game.Project(r.State, r.Hands, side)
		reg.hub.ToPlayer(r.ID, p.ID, "gameStateUpdated", view)
	}
}

// persist snapshots the canonical state and hands it to the game store in
// the background. The in-memory state is already committed; a store
// failure is logged and never rolled back or retried. Caller holds the
// room lock, so the marshal sees a consistent snapshot.
func (reg *Registry) persist(r *Room) {
	snap, err := json.Marshal(r.State)
	if err != nil {
		log.Printf("snapshot marshal failed for room %s: %v", r.ID, err)
		return
	}
	roomID := r.ID
	go func() {
		if err := reg.games.SaveGame(roomID, snap); err != nil {
			log.Printf("persist failed for room %s: %v", roomID, err)
		}
	}()
}

const codeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newRoomID builds a shareable token: base36 timestamp plus a random code.
// Caller holds reg.mu (the rng is not otherwise guarded).
func (reg *Registry) newRoomID() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = codeLetters[reg.rng.Intn(len(codeLetters))]
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + string(b)
}

func playerID(p *Player) string {
	if p == nil {
		return ""
	}
	return p.ID
}
