package ws

import (
	"encoding/json"
	"fmt"
	"log"

	"monster-arena/internal/game"
)

// inbound is the wire envelope for client events.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type createRoomPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type joinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerData struct {
		PlayerID   string `json:"playerId"`
		PlayerName string `json:"playerName"`
	} `json:"playerData"`
}

type cardPlayedPayload struct {
	RoomID     string    `json:"roomId"`
	PlayerRole game.Side `json:"playerRole"`
	Card       struct {
		InstanceID string `json:"instanceId"`
	} `json:"card"`
}

type gameEndedPayload struct {
	RoomID        string          `json:"roomId"`
	Player1ID     string          `json:"player1Id"`
	Player2ID     string          `json:"player2Id"`
	Player1Wins   int             `json:"player1Wins"`
	Player1Losses int             `json:"player1Losses"`
	Player2Wins   int             `json:"player2Wins"`
	Player2Losses int             `json:"player2Losses"`
	GameState     json.RawMessage `json:"gameState"`
}

// dispatch routes one inbound event. Payloads are decoded and validated
// here, before anything reaches the registry; errors go back to the sender
// only.
func (h *Hub) dispatch(cl *client, msg inbound) {
	switch msg.Event {
	case "createRoom":
		h.handleCreateRoom(cl, msg.Data)
	case "joinRoom":
		h.handleJoinRoom(cl, msg.Data)
	case "cardPlayed":
		h.handleCardPlayed(cl, msg.Data, "playCardError")
	case "updateGame":
		h.handleCardPlayed(cl, msg.Data, "gameUpdateError")
	case "gameEnded":
		h.handleGameEnded(cl, msg.Data)
	case "getGame":
		h.handleGetGame(cl, msg.Data)
	case "getPlayer":
		h.handleGetPlayer(cl, msg.Data)
	default:
		log.Printf("unknown event %q from %s", msg.Event, cl.id)
	}
}

func (h *Hub) handleCreateRoom(cl *client, data json.RawMessage) {
	var p createRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.PlayerID == "" || p.PlayerName == "" {
		cl.send("roomError", "playerId and playerName are required")
		return
	}
	r, err := h.registry.CreateRoom(p.PlayerID, p.PlayerName, cl.id)
	if err != nil {
		cl.send("roomError", err.Error())
		return
	}
	h.bind(r.ID, p.PlayerID, cl)
	cl.send("roomCreated", map[string]interface{}{
		"roomId": r.ID,
		"player": map[string]string{"id": p.PlayerID, "name": p.PlayerName},
	})
}

func (h *Hub) handleJoinRoom(cl *client, data json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.PlayerData.PlayerID == "" {
		cl.send("roomError", "roomId and playerData.playerId are required")
		return
	}
	// Bind before joining: the registry pushes the opening views as part
	// of the join. A seat held by another connection is never handed over.
	created, ok := h.bind(p.RoomID, p.PlayerData.PlayerID, cl)
	if !ok {
		cl.send("roomError", "player already connected to this room")
		return
	}
	if _, err := h.registry.JoinRoom(p.RoomID, p.PlayerData.PlayerID, p.PlayerData.PlayerName, cl.id); err != nil {
		// Only remove what this join added; a replayed join must not evict
		// the member's live binding.
		if created {
			h.unbind(p.RoomID, p.PlayerData.PlayerID)
		}
		cl.send("roomError", err.Error())
		return
	}
}

func (h *Hub) handleCardPlayed(cl *client, data json.RawMessage, errEvent string) {
	var p cardPlayedPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.Card.InstanceID == "" {
		cl.send(errEvent, "roomId and card.instanceId are required")
		return
	}
	if !p.PlayerRole.Valid() {
		cl.send(errEvent, fmt.Sprintf("invalid playerRole %q", p.PlayerRole))
		return
	}
	if err := h.registry.PlayCard(p.RoomID, p.PlayerRole, p.Card.InstanceID); err != nil {
		cl.send(errEvent, err.Error())
	}
}

func (h *Hub) handleGameEnded(cl *client, data json.RawMessage) {
	var p gameEndedPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.Player1ID == "" || p.Player2ID == "" {
		cl.send("gameSaveError", "roomId, player1Id and player2Id are required")
		return
	}
	if len(p.GameState) > 0 {
		if err := h.games.SaveGame(p.RoomID, p.GameState); err != nil {
			log.Printf("final save failed for room %s: %v", p.RoomID, err)
			cl.send("gameSaveError", "could not save final game state")
			return
		}
	}
	if err := h.players.UpdateStats(p.Player1ID, p.Player1Wins, p.Player1Losses); err != nil {
		log.Printf("stats update failed for %s: %v", p.Player1ID, err)
	}
	if err := h.players.UpdateStats(p.Player2ID, p.Player2Wins, p.Player2Losses); err != nil {
		log.Printf("stats update failed for %s: %v", p.Player2ID, err)
	}
	h.ToRoom(p.RoomID, "updateStats", map[string]string{
		"player1Id": p.Player1ID,
		"player2Id": p.Player2ID,
	})
}

func (h *Hub) handleGetGame(cl *client, data json.RawMessage) {
	var gameID string
	if err := json.Unmarshal(data, &gameID); err != nil || gameID == "" {
		cl.send("gameFetchError", "gameId is required")
		return
	}
	rec, ok := h.games.GetGame(gameID)
	if !ok {
		cl.send("gameFetchError", fmt.Sprintf("game %s not found", gameID))
		return
	}
	cl.send("gameData", rec)
}

func (h *Hub) handleGetPlayer(cl *client, data json.RawMessage) {
	var playerID string
	if err := json.Unmarshal(data, &playerID); err != nil || playerID == "" {
		cl.send("playerFetchError", "playerId is required")
		return
	}
	rec, ok := h.players.GetPlayer(playerID)
	if !ok {
		cl.send("playerFetchError", fmt.Sprintf("player %s not found", playerID))
		return
	}
	stats, _ := h.players.Stats(playerID)
	cl.send("playerData", map[string]interface{}{
		"player": rec,
		"stats":  stats,
	})
}
