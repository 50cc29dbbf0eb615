package app

import (
	"github.com/saradorri/pokerledger/internal/http/middleware"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
)

func (a *application) InitErrorHandler(logger *logger.Logger) *middleware.ErrorHandler {
	return middleware.NewErrorHandler(logger)
}
