package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vkozyrev/huddle-server/internal/config"
	"github.com/vkozyrev/huddle-server/internal/core"
)

// NewServer builds the HTTP server: the room lifecycle REST surface, the
// health surface, the realtime WS endpoint, and (debug mode only) the room
// dump surface.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(LoggerMiddleware(logger))

	handlers := NewRoomHandlers(hub, logger)
	engine.GET("/health", handlers.Health)

	api := engine.Group("/api")
	api.POST("/rooms", handlers.CreateRoom)
	api.GET("/rooms/:id", handlers.GetRoom)

	if cfg.Debug() {
		engine.GET("/debug/rooms", handlers.DebugRooms)
	}

	// The WS endpoint must hijack the connection, which gin's response
	// writer refuses; keep it on a plain mux outside the gin chain.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, logger))
	mux.Handle("/", engine)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
