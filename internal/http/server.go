package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/pokerledger/internal/http/handlers"
	"github.com/saradorri/pokerledger/internal/http/middleware"
	"github.com/saradorri/pokerledger/internal/infrastructure/auth"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	router         *gin.Engine
	jwtService     auth.JWTService
	playerHandler  *handlers.PlayerHandler
	sessionHandler *handlers.SessionHandler
	statsHandler   *handlers.StatsHandler
	errorHandler   *middleware.ErrorHandler
	port           string
}

// NewServer creates a new HTTP server
func NewServer(
	jwtService auth.JWTService,
	playerHandler *handlers.PlayerHandler,
	sessionHandler *handlers.SessionHandler,
	statsHandler *handlers.StatsHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
	port string,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(errorHandler.RequestIDMiddleware())
	router.Use(errorHandler.TimeoutMiddleware(30 * time.Second))
	router.Use(errorHandler.ErrorHandlerMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(gin.Recovery())

	server := &Server{
		router:         router,
		jwtService:     jwtService,
		playerHandler:  playerHandler,
		sessionHandler: sessionHandler,
		statsHandler:   statsHandler,
		errorHandler:   errorHandler,
		port:           port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", s.playerHandler.Login)
		}

		v1.POST("/players", s.playerHandler.Create)

		protected := v1.Group("/")
		protected.Use(middleware.JWTMiddleware(s.jwtService))
		{
			playerRoutes := protected.Group("/players/me")
			{
				playerRoutes.GET("", s.playerHandler.Me)
				playerRoutes.PATCH("/name", s.playerHandler.UpdateName)
				playerRoutes.PATCH("/email", s.playerHandler.UpdateEmail)
				playerRoutes.POST("/external-account", s.playerHandler.LinkExternalAccount)
				playerRoutes.POST("/bankroll", s.playerHandler.AdjustBankroll)
				playerRoutes.DELETE("", s.playerHandler.Delete)
				playerRoutes.GET("/stats", s.statsHandler.PlayerStats)
			}

			sessionRoutes := protected.Group("/sessions")
			{
				sessionRoutes.POST("", s.sessionHandler.Start)
				sessionRoutes.GET("", s.sessionHandler.List)
				sessionRoutes.GET("/:id", s.sessionHandler.Get)
				sessionRoutes.POST("/:id/transactions", s.sessionHandler.AddTransaction)
				sessionRoutes.POST("/:id/end", s.sessionHandler.End)
				sessionRoutes.POST("/:id/cancel", s.sessionHandler.Cancel)
				sessionRoutes.PATCH("/:id/notes", s.sessionHandler.UpdateNotes)
				sessionRoutes.PATCH("/:id/location", s.sessionHandler.UpdateLocation)
			}
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.port)
	return s.router.Run(addr)
}
