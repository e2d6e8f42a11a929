package http

// CreatePlayerRequest represents the payload for /players.
type CreatePlayerRequest struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}
