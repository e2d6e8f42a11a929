package room

import (
	"errors"
	"sync"
	"testing"
	"time"

	"monster-arena/internal/catalog"
	"monster-arena/internal/config"
	"monster-arena/internal/game"
	"monster-arena/internal/store"
)

type broadcastCall struct {
	RoomID   string
	PlayerID string
	Event    string
	Data     interface{}
}

// recordingBroadcaster captures every delivery so tests can inspect what
// each seat would have received.
type recordingBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *recordingBroadcaster) ToPlayer(roomID, playerID, event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{roomID, playerID, event, data})
}

func (b *recordingBroadcaster) ToRoom(roomID, event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{roomID, "", event, data})
}

func (b *recordingBroadcaster) DropRoom(string) {}

func (b *recordingBroadcaster) find(event, playerID string) []broadcastCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []broadcastCall
	for _, c := range b.calls {
		if c.Event == event && (playerID == "" || c.PlayerID == playerID) {
			out = append(out, c)
		}
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		Combat: config.Combat{
			StartEnergy:      700,
			HandSize:         4,
			DamageFloor:      2,
			DefenseFactorPct: 80,
			EnergyLossPct:    80,
			TickMS:           3600_000, // keep the real ticker out of tests
		},
	}
}

func newTestRegistry(t *testing.T) (*Registry, *store.MemoryStore, *recordingBroadcaster) {
	t.Helper()
	mem := store.NewMemoryStore()
	if _, err := mem.CreatePlayer("p1", "Ann"); err != nil {
		t.Fatalf("seed player: %v", err)
	}
	if _, err := mem.CreatePlayer("p2", "Ben"); err != nil {
		t.Fatalf("seed player: %v", err)
	}
	reg := NewRegistry(catalog.New(42), mem, mem, testConfig())
	b := &recordingBroadcaster{}
	reg.SetBroadcaster(b)
	return reg, mem, b
}

func startGame(t *testing.T, reg *Registry) *Room {
	t.Helper()
	r, err := reg.CreateRoom("p1", "Ann", "conn1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := reg.JoinRoom(r.ID, "p2", "Ben", "conn2"); err != nil {
		t.Fatalf("join: %v", err)
	}
	return r
}

// waitForSnapshot polls the game store until the async persist lands.
func waitForSnapshot(t *testing.T, mem *store.MemoryStore, roomID string) *store.GameRecord {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rec, ok := mem.GetGame(roomID); ok {
			return rec
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no snapshot persisted for room %s", roomID)
	return nil
}

func TestCreateRoomRequiresRegisteredPlayer(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	if _, err := reg.CreateRoom("ghost", "Ghost", "c"); !errors.Is(err, ErrPlayerNotRegistered) {
		t.Fatalf("err = %v, want ErrPlayerNotRegistered", err)
	}
}

func TestCreateRoomStartsWaiting(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	r, err := reg.CreateRoom("p1", "Ann", "conn1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.State.Status != game.StatusWaiting {
		t.Fatalf("status = %s, want waiting", r.State.Status)
	}
	if r.Players[game.SidePlayer1].ID != "p1" || r.Players[game.SidePlayer2] != nil {
		t.Fatalf("seat assignment wrong: %+v", r.Players)
	}
	if got, ok := reg.Get(r.ID); !ok || got != r {
		t.Fatalf("room not registered under its token")
	}
}

func TestJoinRoomStartsGame(t *testing.T) {
	reg, mem, b := newTestRegistry(t)
	r := startGame(t, reg)

	if r.State.Status != game.StatusPlaying {
		t.Fatalf("status = %s, want playing", r.State.Status)
	}
	if r.State.CurrentTurn != game.SidePlayer1 {
		t.Fatalf("opening turn = %s, want player1", r.State.CurrentTurn)
	}
	if r.State.Energy[game.SidePlayer1] != 700 || r.State.Energy[game.SidePlayer2] != 700 {
		t.Fatalf("energy = %+v, want 700 each", r.State.Energy)
	}
	for _, side := range []game.Side{game.SidePlayer1, game.SidePlayer2} {
		if len(r.Hands[side]) != 4 {
			t.Fatalf("%s hand = %d cards, want 4", side, len(r.Hands[side]))
		}
	}

	// Each seat got its own masked view, with the opponent's hand hidden.
	for _, pid := range []string{"p1", "p2"} {
		calls := b.find("gameStateUpdated", pid)
		if len(calls) == 0 {
			t.Fatalf("no gameStateUpdated sent to %s", pid)
		}
		view, ok := calls[len(calls)-1].Data.(game.View)
		if !ok {
			t.Fatalf("view payload type %T", calls[len(calls)-1].Data)
		}
		opp := view.ViewerSide.Opponent()
		for _, c := range view.Hands[opp] {
			if c.Attack != 0 || c.HP != 0 {
				t.Fatalf("view for %s leaked opponent hand: %+v", pid, c)
			}
		}
		if len(view.Hands[view.ViewerSide]) != 4 {
			t.Fatalf("view for %s missing own hand", pid)
		}
	}

	waitForSnapshot(t, mem, r.ID)
}

func TestJoinRoomErrors(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	if _, err := reg.JoinRoom("nope", "p2", "Ben", "c"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
	r := startGame(t, reg)
	if _, err := reg.JoinRoom(r.ID, "p2", "Ben", "conn3"); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("err = %v, want ErrRoomFull", err)
	}
}

func TestJoinRoomRejectsAlreadySeatedPlayer(t *testing.T) {
	reg, _, b := newTestRegistry(t)
	r, err := reg.CreateRoom("p1", "Ann", "conn1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The creator's id arriving again on a fresh connection must not take
	// the second seat: both views would then address the same identity and
	// the new connection would receive player1's unmasked hand.
	if _, err := reg.JoinRoom(r.ID, "p1", "Mallory", "conn2"); !errors.Is(err, ErrAlreadyInRoom) {
		t.Fatalf("err = %v, want ErrAlreadyInRoom", err)
	}
	if r.State.Status != game.StatusWaiting {
		t.Fatalf("status = %s, want waiting (join must not start the game)", r.State.Status)
	}
	if r.Players[game.SidePlayer2] != nil {
		t.Fatalf("player2 seat filled by rejected join: %+v", r.Players[game.SidePlayer2])
	}
	if calls := b.find("gameStateUpdated", ""); len(calls) != 0 {
		t.Fatalf("rejected join broadcast %d views", len(calls))
	}
}

func TestPlayCardTopsUpHandAndAlternatesTurn(t *testing.T) {
	reg, _, b := newTestRegistry(t)
	r := startGame(t, reg)

	cardID := r.Hands[game.SidePlayer1][0].InstanceID
	if err := reg.PlayCard(r.ID, game.SidePlayer1, cardID); err != nil {
		t.Fatalf("play: %v", err)
	}
	if got := len(r.Hands[game.SidePlayer1]) + len(r.State.Battlefield[game.SidePlayer1]); got != 4 {
		t.Fatalf("hand+battlefield = %d, want 4", got)
	}
	if r.State.CurrentTurn != game.SidePlayer2 {
		t.Fatalf("turn = %s, want player2", r.State.CurrentTurn)
	}
	if len(b.find("cardPlayed", "")) == 0 {
		t.Fatalf("no cardPlayed broadcast")
	}

	// Out of turn play is rejected without any mutation.
	turnBefore := r.State.CurrentTurn
	err := reg.PlayCard(r.ID, game.SidePlayer1, r.Hands[game.SidePlayer1][0].InstanceID)
	if !errors.Is(err, game.ErrNotYourTurn) {
		t.Fatalf("err = %v, want ErrNotYourTurn", err)
	}
	if r.State.CurrentTurn != turnBefore {
		t.Fatalf("rejected play flipped turn")
	}

	if err := reg.PlayCard("nope", game.SidePlayer2, "x"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
	if err := reg.PlayCard(r.ID, "referee", "x"); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("err = %v, want ErrInvalidSide", err)
	}
}

func TestTickResolvesCombatAndFinishesGame(t *testing.T) {
	reg, mem, b := newTestRegistry(t)
	r := startGame(t, reg)

	if err := reg.PlayCard(r.ID, game.SidePlayer1, r.Hands[game.SidePlayer1][0].InstanceID); err != nil {
		t.Fatalf("p1 play: %v", err)
	}
	if err := reg.PlayCard(r.ID, game.SidePlayer2, r.Hands[game.SidePlayer2][0].InstanceID); err != nil {
		t.Fatalf("p2 play: %v", err)
	}

	// Drain the pools so the very next round ends the game.
	r.mu.Lock()
	r.State.Energy[game.SidePlayer1] = 1
	r.State.Energy[game.SidePlayer2] = 1
	r.mu.Unlock()

	if done := reg.tickRoom(r); !done {
		t.Fatalf("tick should have finished the game")
	}
	if r.State.Status != game.StatusFinished {
		t.Fatalf("status = %s, want finished", r.State.Status)
	}
	if len(b.find("gameEnded", "")) != 1 {
		t.Fatalf("gameEnded not broadcast exactly once")
	}
	if _, ok := reg.Get(r.ID); ok {
		t.Fatalf("finished room still registered")
	}

	winner := r.State.Winner()
	winnerID := r.Players[winner].ID
	stats, ok := mem.Stats(winnerID)
	if !ok || stats.Wins != 1 {
		t.Fatalf("winner stats = %+v, want one win", stats)
	}
	loserID := r.Players[winner.Opponent()].ID
	stats, _ = mem.Stats(loserID)
	if stats.Losses != 1 {
		t.Fatalf("loser stats = %+v, want one loss", stats)
	}

	// The durable snapshot outlives the room.
	rec := waitForSnapshot(t, mem, r.ID)
	if len(rec.State) == 0 {
		t.Fatalf("empty snapshot persisted")
	}
}

func TestTickIsNoOpWithoutBothCards(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	r := startGame(t, reg)
	if done := reg.tickRoom(r); done {
		t.Fatalf("tick finished a game with an empty battlefield")
	}
	if r.State.Energy[game.SidePlayer1] != 700 {
		t.Fatalf("no-op tick drained energy")
	}
}

func TestDisconnectTearsRoomDown(t *testing.T) {
	reg, mem, b := newTestRegistry(t)
	r := startGame(t, reg)

	if got := reg.RoomsWithConn("conn1"); len(got) != 1 || got[0] != r.ID {
		t.Fatalf("RoomsWithConn = %v, want [%s]", got, r.ID)
	}

	reg.HandleDisconnect("conn1")

	calls := b.find("playerDisconnected", "p2")
	if len(calls) != 1 {
		t.Fatalf("peer not notified of disconnect: %v", b.calls)
	}
	data := calls[0].Data.(map[string]interface{})
	if data["disconnectedPlayer"] != "p1" {
		t.Fatalf("disconnectedPlayer = %v, want p1", data["disconnectedPlayer"])
	}
	if _, ok := reg.Get(r.ID); ok {
		t.Fatalf("room survived disconnect")
	}
	if len(reg.RoomsWithConn("conn2")) != 0 {
		t.Fatalf("stale membership after teardown")
	}

	// Last persisted snapshot is still readable.
	waitForSnapshot(t, mem, r.ID)
}

func TestRoomTokensAreUnique(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		r, err := reg.CreateRoom("p1", "Ann", "conn1")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[r.ID] {
			t.Fatalf("duplicate room token %s", r.ID)
		}
		seen[r.ID] = true
	}
}
