package store

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

var (
	ErrPlayerExists   = errors.New("player already exists")
	ErrPlayerNotFound = errors.New("player not found")
)

// PlayerRecord is one entry in the player directory.
type PlayerRecord struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
}

// PlayerStats is the aggregated view served by getPlayer.
type PlayerStats struct {
	TotalGames int     `json:"totalGames"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"winRate"`
}

// GameRecord is the durable snapshot of a room's canonical state.
type GameRecord struct {
	GameID    string          `json:"gameId"`
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// MemoryStore backs the player directory, the game record store and the
// stats aggregator with process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]*PlayerRecord
	games   map[string]*GameRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: map[string]*PlayerRecord{},
		games:   map[string]*GameRecord{},
	}
}

func (m *MemoryStore) CreatePlayer(id, name string) (*PlayerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[id]; ok {
		return nil, ErrPlayerExists
	}
	rec := &PlayerRecord{PlayerID: id, PlayerName: name}
	m.players[id] = rec
	return rec, nil
}

func (m *MemoryStore) GetPlayer(id string) (*PlayerRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.players[id]
	if !ok {
		return nil, false
	}
	cp := *rec
	return &cp, true
}

// UpdateStats applies win/loss deltas to a player record.
func (m *MemoryStore) UpdateStats(id string, winsDelta, lossesDelta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.players[id]
	if !ok {
		return ErrPlayerNotFound
	}
	rec.Wins += winsDelta
	rec.Losses += lossesDelta
	return nil
}

func (m *MemoryStore) Stats(id string) (PlayerStats, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.players[id]
	if !ok {
		return PlayerStats{}, false
	}
	s := PlayerStats{
		TotalGames: rec.Wins + rec.Losses,
		Wins:       rec.Wins,
		Losses:     rec.Losses,
	}
	if s.TotalGames > 0 {
		s.WinRate = float64(rec.Wins) / float64(s.TotalGames)
	}
	return s, true
}

// SaveGame upserts the JSON snapshot for a room. The snapshot outlives the
// in-memory room, so a torn-down game stays readable.
func (m *MemoryStore) SaveGame(id string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[id] = &GameRecord{
		GameID:    id,
		State:     append(json.RawMessage(nil), snapshot...),
		UpdatedAt: time.Now(),
	}
	return nil
}

func (m *MemoryStore) GetGame(id string) (*GameRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.games[id]
	if !ok {
		return nil, false
	}
	cp := *rec
	return &cp, true
}
