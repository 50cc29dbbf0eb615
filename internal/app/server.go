package app

import (
	"github.com/saradorri/pokerledger/internal/http"
	"github.com/saradorri/pokerledger/internal/http/handlers"
	"github.com/saradorri/pokerledger/internal/http/middleware"
	"github.com/saradorri/pokerledger/internal/infrastructure/auth"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// InitHTTPServer initializes the HTTP server with all dependencies
func (a *application) InitHTTPServer(
	jwtService auth.JWTService,
	playerHandler *handlers.PlayerHandler,
	sessionHandler *handlers.SessionHandler,
	statsHandler *handlers.StatsHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
) *http.Server {
	port := a.config.Server.Port
	if port == "" {
		port = "8080"
	}

	return http.NewServer(jwtService, playerHandler, sessionHandler, statsHandler, errorHandler, log, port)
}

// StartServer runs the HTTP server in a goroutine so fx lifecycle
// management is not blocked
func (a *application) StartServer(server *http.Server, log *logger.Logger) {
	go func() {
		if err := server.Start(); err != nil {
			log.Error("HTTP server stopped", zap.Error(err))
		}
	}()
}
