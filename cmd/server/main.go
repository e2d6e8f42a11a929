package main

import (
	"log"
	"net/http"
	"time"

	httpapi "monster-arena/internal/api/http"
	"monster-arena/internal/api/ws"
	"monster-arena/internal/catalog"
	"monster-arena/internal/config"
	"monster-arena/internal/room"
	"monster-arena/internal/store"

	// swagger packages
	_ "monster-arena/docs"

	"github.com/gin-gonic/gin"
)

// @title Monster Arena API
// @version 1.0
// @description REST + WebSocket API for the monster card battle server (Go + Gin)
// @contact.name Backend Team
// @contact.email backend@yourcompany.com
// @BasePath /
func main() {
	cfg := config.Load()
	mem := store.NewMemoryStore()
	cat := catalog.New(time.Now().UnixNano())

	reg := room.NewRegistry(cat, mem, mem, cfg)
	hub := ws.NewHub(reg, mem, mem)
	reg.SetBroadcaster(hub)

	r := httpapi.SetupRouter(reg, mem, cat, hub, cfg)

	// Optional: Add root redirect to swagger
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
