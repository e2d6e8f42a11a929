package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"monster-arena/internal/api/ws"
	"monster-arena/internal/catalog"
	"monster-arena/internal/config"
	"monster-arena/internal/room"
	"monster-arena/internal/store"
)

func SetupRouter(reg *room.Registry, mem *store.MemoryStore, cat *catalog.Catalog, hub *ws.Hub, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket for the realtime game session
	r.GET("/ws", hub.HandleWS)

	// --- PLAYER ENDPOINTS ---
	r.POST("/players", CreatePlayerHandler(mem))
	r.GET("/players/:id", GetPlayerHandler(mem))

	// --- GAME ENDPOINTS ---
	r.GET("/games/:id", GetGameHandler(mem))
	r.GET("/rooms/:id", GetRoomHandler(reg))
	r.GET("/catalog", CatalogHandler(cat))

	// --- CONFIG ENDPOINTS ---
	r.GET("/config", GetConfigHandler(cfg))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
