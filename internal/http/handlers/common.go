package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/pokerledger/internal/domain"
)

// authenticatedPlayerID extracts the authenticated player ID set by the JWT
// middleware. When absent the request is rejected and false is returned.
func authenticatedPlayerID(c *gin.Context) (domain.PlayerID, bool) {
	raw, exists := c.Get("player_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, domain.NewUnauthorizedError("Player not authenticated"))
		return "", false
	}

	playerID, err := domain.ParsePlayerID(raw.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, domain.NewUnauthorizedError("Invalid player identity"))
		return "", false
	}

	return playerID, true
}

// respondError renders a use case error with its HTTP status
func respondError(c *gin.Context, err error) {
	if appErr, ok := domain.IsAppError(err); ok {
		if requestID, exists := c.Get("request_id"); exists {
			appErr.RequestID = requestID.(string)
		}
		appErr.Path = c.Request.URL.Path
		appErr.Method = c.Request.Method
		c.JSON(appErr.HTTPStatus, domain.NewErrorResponse(appErr))
		return
	}
	c.JSON(http.StatusInternalServerError, domain.NewErrorResponse(domain.NewInternalError("", err)))
}
