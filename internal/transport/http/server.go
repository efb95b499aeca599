package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/drawwire/drawwire-server/internal/auth"
	"github.com/drawwire/drawwire-server/internal/config"
	"github.com/drawwire/drawwire-server/internal/core"
	"github.com/drawwire/drawwire-server/internal/store"
)

// NewServer builds the HTTP server: WebSocket bridge, auth API, and the
// scene-capture processing endpoint.
func NewServer(hub *core.Hub, authService *auth.Service, st store.Store, predictor Predictor, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	processHandlers := NewProcessHandlers(predictor, st, authService, cfg.UploadsDir, logger)
	router.POST("/process", processHandlers.ProcessImage)
	router.GET("/api/captures", processHandlers.ListCaptures)

	authHandlers := NewAuthHandlers(authService, st, logger)
	api := router.Group("/api/auth")
	api.POST("/register", authHandlers.Register)
	api.POST("/login", authHandlers.Login)
	api.POST("/guest", authHandlers.GuestLogin)
	api.GET("/me", AuthMiddleware(authService, logger), authHandlers.Me)

	// The upgrade hijacks the connection, and gin's response writer refuses
	// a hijack once it has written. /ws sits on the outer mux instead.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, authService, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
