package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"monster-arena/internal/catalog"
	"monster-arena/internal/room"
	"monster-arena/internal/store"
)

// @Summary Register a player
// @Description Create a player-directory record. An id is generated when none is supplied.
// @Tags Player
// @Accept json
// @Produce json
// @Param request body http.CreatePlayerRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /players [post]
func CreatePlayerHandler(players *store.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePlayerRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerName required"})
			return
		}
		if req.PlayerID == "" {
			req.PlayerID = uuid.NewString()
		}
		rec, err := players.CreatePlayer(req.PlayerID, req.PlayerName)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": rec})
	}
}

// @Summary Fetch a player with stats
// @Tags Player
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Router /players/{id} [get]
func GetPlayerHandler(players *store.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		rec, ok := players.GetPlayer(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		stats, _ := players.Stats(id)
		c.JSON(http.StatusOK, gin.H{"player": rec, "stats": stats})
	}
}

// @Summary Fetch the last persisted game snapshot
// @Description Serves the durable snapshot, which outlives room teardown.
// @Tags Game
// @Produce json
// @Param id path string true "Game ID (room token)"
// @Success 200 {object} map[string]interface{}
// @Router /games/{id} [get]
func GetGameHandler(games *store.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := games.GetGame(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": rec})
	}
}

// @Summary Check a live room
// @Description Reports presence and status of an in-memory room. Hands are never included.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{id} [get]
func GetRoomHandler(reg *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, ok := reg.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		players := gin.H{}
		for side, p := range r.Players {
			if p != nil {
				players[string(side)] = gin.H{"id": p.ID, "name": p.Name}
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"roomId":  r.ID,
			"players": players,
			"status":  r.State.Status,
		})
	}
}

// @Summary List the card catalog
// @Tags Game
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog [get]
func CatalogHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"templates": cat.Templates()})
	}
}
