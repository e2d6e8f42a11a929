package game

import (
	"errors"
	"time"
)

// Side identifies one seat in a room.
type Side string

const (
	SidePlayer1 Side = "player1"
	SidePlayer2 Side = "player2"
)

func (s Side) Opponent() Side {
	if s == SidePlayer1 {
		return SidePlayer2
	}
	return SidePlayer1
}

func (s Side) Valid() bool {
	return s == SidePlayer1 || s == SidePlayer2
}

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Card is a dealt monster instance. Template fields are immutable after
// instantiation; only HP changes during combat.
type Card struct {
	InstanceID string `json:"instanceId"`
	TemplateID int    `json:"templateId"`
	Name       string `json:"name"`
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"maxHp"`
	ImageURL   string `json:"imageUrl"`
}

type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // "system", "play", "combat", "kill"
}

// Hands holds each side's private cards. Never sent to the opposing side
// unmasked.
type Hands map[Side][]Card

// State is the canonical, unmasked shared room state.
type State struct {
	CurrentTurn Side            `json:"currentTurn"`
	Status      Status          `json:"gameStatus"`
	Battlefield map[Side][]Card `json:"battlefield"` // 0 or 1 card per side
	CombatLog   []LogEntry      `json:"combatLog"`
	KillCount   map[Side]int    `json:"killCount"`
	Energy      map[Side]int    `json:"energy"`
}

// Rules carries the combat tunables so the engine stays free of config reads.
type Rules struct {
	StartEnergy      int
	HandSize         int
	DamageFloor      int
	DefenseFactorPct int
	EnergyLossPct    int
}

var (
	ErrGameNotStarted = errors.New("game has not started")
	ErrGameFinished   = errors.New("game already finished")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrSlotOccupied   = errors.New("battlefield slot already occupied")
	ErrCardNotInHand  = errors.New("card not in hand")
)

// NewState builds the pre-game state for a freshly created room.
func NewState() *State {
	return &State{
		Status: StatusWaiting,
		Battlefield: map[Side][]Card{
			SidePlayer1: {},
			SidePlayer2: {},
		},
		CombatLog: []LogEntry{},
		KillCount: map[Side]int{SidePlayer1: 0, SidePlayer2: 0},
		Energy:    map[Side]int{SidePlayer1: 0, SidePlayer2: 0},
	}
}

// Start flips a waiting state into a playing one. Player1 always opens.
func (s *State) Start(r Rules) {
	s.Status = StatusPlaying
	s.CurrentTurn = SidePlayer1
	s.Energy[SidePlayer1] = r.StartEnergy
	s.Energy[SidePlayer2] = r.StartEnergy
	s.appendLog("Battle started", "system")
}

func (s *State) appendLog(msg, typ string) {
	s.CombatLog = append(s.CombatLog, LogEntry{
		Timestamp: time.Now(),
		Message:   msg,
		Type:      typ,
	})
}
