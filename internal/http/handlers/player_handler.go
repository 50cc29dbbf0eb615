package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
)

// PlayerHandler handles HTTP requests for player operations
type PlayerHandler struct {
	playerUseCase domain.PlayerUseCase
	logger        *logger.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerUseCase domain.PlayerUseCase, logger *logger.Logger) *PlayerHandler {
	return &PlayerHandler{
		playerUseCase: playerUseCase,
		logger:        logger,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"daniel@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse represents the login response body
type LoginResponse struct {
	Token  string         `json:"token"`
	Player PlayerResponse `json:"player"`
}

// CreatePlayerRequest represents the player registration body
type CreatePlayerRequest struct {
	Name            string  `json:"name" binding:"required" example:"Daniel"`
	Email           string  `json:"email" binding:"required,email" example:"daniel@example.com"`
	Password        string  `json:"password" binding:"required,min=8" example:"password123"`
	InitialBankroll float64 `json:"initial_bankroll" example:"1000"`
	Currency        string  `json:"currency" binding:"required,len=3" example:"USD"`
}

// UpdateNameRequest represents a display-name change
type UpdateNameRequest struct {
	Name string `json:"name" binding:"required" example:"Daniel N."`
}

// UpdateEmailRequest represents an email change
type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required,email" example:"daniel@example.com"`
}

// LinkExternalAccountRequest represents an external account linkage
type LinkExternalAccountRequest struct {
	ExternalID string `json:"external_id" binding:"required" example:"upstream-4711"`
}

// AdjustBankrollRequest represents a signed bankroll correction
type AdjustBankrollRequest struct {
	Amount   float64 `json:"amount" binding:"required" example:"-250.50"`
	Currency string  `json:"currency" binding:"required,len=3" example:"USD"`
}

// PlayerResponse represents player information
type PlayerResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email,omitempty"`
	ExternalID   string  `json:"external_id,omitempty"`
	Bankroll     float64 `json:"bankroll"`
	Currency     string  `json:"currency"`
	SessionCount int     `json:"session_count"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func newPlayerResponse(player *domain.Player) PlayerResponse {
	return PlayerResponse{
		ID:           player.ID().String(),
		Name:         player.Name(),
		Email:        player.Email(),
		ExternalID:   player.ExternalID(),
		Bankroll:     player.Bankroll().Amount().InexactFloat64(),
		Currency:     player.Bankroll().Currency(),
		SessionCount: player.SessionCount(),
		CreatedAt:    player.CreatedAt().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    player.UpdatedAt().Format("2006-01-02T15:04:05Z"),
	}
}

// Login authenticates a player and returns a JWT token
func (h *PlayerHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	token, player, err := h.playerUseCase.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:  token,
		Player: newPlayerResponse(player),
	})
}

// Create registers a new player
func (h *PlayerHandler) Create(c *gin.Context) {
	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	bankroll, err := domain.NewMoneyFromFloat(req.InitialBankroll, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	player, err := h.playerUseCase.Create(c.Request.Context(), req.Name, req.Email, req.Password, bankroll)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newPlayerResponse(player))
}

// Me returns the authenticated player
func (h *PlayerHandler) Me(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	player, err := h.playerUseCase.GetByID(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPlayerResponse(player))
}

// UpdateName changes the authenticated player's display name
func (h *PlayerHandler) UpdateName(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	var req UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	player, err := h.playerUseCase.UpdateName(c.Request.Context(), playerID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPlayerResponse(player))
}

// UpdateEmail changes the authenticated player's email
func (h *PlayerHandler) UpdateEmail(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	var req UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	player, err := h.playerUseCase.UpdateEmail(c.Request.Context(), playerID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPlayerResponse(player))
}

// LinkExternalAccount links an upstream account to the authenticated player
func (h *PlayerHandler) LinkExternalAccount(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	var req LinkExternalAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	player, err := h.playerUseCase.LinkExternalAccount(c.Request.Context(), playerID, req.ExternalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPlayerResponse(player))
}

// AdjustBankroll applies a signed correction to the authenticated player's bankroll
func (h *PlayerHandler) AdjustBankroll(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	var req AdjustBankrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	amount, err := domain.NewMoneyFromFloat(req.Amount, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	player, err := h.playerUseCase.AdjustBankroll(c.Request.Context(), playerID, amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPlayerResponse(player))
}

// Delete removes the authenticated player
func (h *PlayerHandler) Delete(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	if err := h.playerUseCase.Delete(c.Request.Context(), playerID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
