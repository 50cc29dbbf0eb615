package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
)

// SessionHandler handles HTTP requests for session operations
type SessionHandler struct {
	sessionUseCase domain.SessionUseCase
	logger         *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionUseCase domain.SessionUseCase, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// StartSessionRequest represents the session start body
type StartSessionRequest struct {
	Location   string   `json:"location" binding:"required" example:"Bellagio"`
	SmallBlind float64  `json:"small_blind" binding:"required,gt=0" example:"1"`
	BigBlind   float64  `json:"big_blind" binding:"required,gt=0" example:"2"`
	Ante       *float64 `json:"ante,omitempty" example:"0.5"`
	Currency   string   `json:"currency" binding:"required,len=3" example:"USD"`
	BuyIn      float64  `json:"buy_in" binding:"required,gt=0" example:"200"`
	Notes      string   `json:"notes" example:"Friday night game"`
}

// AddTransactionRequest represents a ledger append body
type AddTransactionRequest struct {
	Type        string  `json:"type" binding:"required" example:"rebuy"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"100"`
	Currency    string  `json:"currency" binding:"required,len=3" example:"USD"`
	Description string  `json:"description" example:"Second bullet"`
	Notes       string  `json:"notes"`
}

// EndSessionRequest represents the end-session body
type EndSessionRequest struct {
	CashOut  float64 `json:"cash_out" binding:"gte=0" example:"450"`
	Currency string  `json:"currency" binding:"required,len=3" example:"USD"`
	Notes    string  `json:"notes" example:"Table broke early"`
}

// CancelSessionRequest represents the cancel-session body
type CancelSessionRequest struct {
	Reason string `json:"reason" binding:"required" example:"logged by mistake"`
}

// UpdateSessionNotesRequest represents a notes replacement
type UpdateSessionNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateSessionLocationRequest represents a location change
type UpdateSessionLocationRequest struct {
	Location string `json:"location" binding:"required" example:"Aria"`
}

// StakesResponse represents table stakes
type StakesResponse struct {
	SmallBlind float64  `json:"small_blind"`
	BigBlind   float64  `json:"big_blind"`
	Ante       *float64 `json:"ante,omitempty"`
	Currency   string   `json:"currency"`
}

// TransactionResponse represents a ledger line
type TransactionResponse struct {
	ID          string  `json:"id"`
	SessionID   string  `json:"session_id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Timestamp   string  `json:"timestamp"`
	Description string  `json:"description,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// SessionResponse represents a session with its derived figures
type SessionResponse struct {
	ID            string                `json:"id"`
	PlayerID      string                `json:"player_id"`
	Location      string                `json:"location"`
	Stakes        StakesResponse        `json:"stakes"`
	Status        string                `json:"status"`
	StartTime     string                `json:"start_time"`
	EndTime       *string               `json:"end_time,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Transactions  []TransactionResponse `json:"transactions"`
	TotalBuyIn    float64               `json:"total_buy_in"`
	TotalCashOut  float64               `json:"total_cash_out"`
	NetResult     float64               `json:"net_result"`
	DurationHours *float64              `json:"duration_hours,omitempty"`
	HourlyRate    *float64              `json:"hourly_rate,omitempty"`
	BigBlindsWon  float64               `json:"big_blinds_won"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

// SessionListResponse represents a filtered page of sessions
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int64             `json:"total"`
}

func newTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID().String(),
		SessionID:   tx.SessionID().String(),
		Type:        string(tx.Type()),
		Amount:      tx.Amount().Amount().InexactFloat64(),
		Currency:    tx.Amount().Currency(),
		Timestamp:   tx.Timestamp().Format(time.RFC3339),
		Description: tx.Description(),
		Notes:       tx.Notes(),
	}
}

func newSessionResponse(session *domain.Session) SessionResponse {
	stakes := session.Stakes()
	stakesResp := StakesResponse{
		SmallBlind: stakes.SmallBlind().Amount().InexactFloat64(),
		BigBlind:   stakes.BigBlind().Amount().InexactFloat64(),
		Currency:   stakes.Currency(),
	}
	if ante := stakes.Ante(); ante != nil {
		v := ante.Amount().InexactFloat64()
		stakesResp.Ante = &v
	}

	resp := SessionResponse{
		ID:           session.ID().String(),
		PlayerID:     session.PlayerID().String(),
		Location:     session.Location(),
		Stakes:       stakesResp,
		Status:       string(session.Status()),
		StartTime:    session.StartTime().Format(time.RFC3339),
		Notes:        session.Notes(),
		TotalBuyIn:   session.TotalBuyIn().Amount().InexactFloat64(),
		TotalCashOut: session.TotalCashOut().Amount().InexactFloat64(),
		NetResult:    session.NetResult().Amount().InexactFloat64(),
		BigBlindsWon: session.BigBlindsWon().InexactFloat64(),
		CreatedAt:    session.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    session.UpdatedAt().Format(time.RFC3339),
	}

	if end := session.EndTime(); end != nil {
		v := end.Format(time.RFC3339)
		resp.EndTime = &v
	}
	if d := session.Duration(); d != nil {
		v := d.Hours()
		resp.DurationHours = &v
	}
	if rate := session.HourlyRate(); rate != nil {
		v := rate.Amount().InexactFloat64()
		resp.HourlyRate = &v
	}

	for _, tx := range session.Transactions() {
		resp.Transactions = append(resp.Transactions, newTransactionResponse(tx))
	}

	return resp
}

// Start opens a new session for the authenticated player
func (h *SessionHandler) Start(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	stakes, err := buildStakes(req.SmallBlind, req.BigBlind, req.Ante, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	buyIn, err := domain.NewMoneyFromFloat(req.BuyIn, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	session, err := h.sessionUseCase.Start(c.Request.Context(), playerID, req.Location, stakes, buyIn, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSessionResponse(session))
}

// List returns the authenticated player's sessions, optionally filtered
func (h *SessionHandler) List(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	filters := domain.SessionFilters{PlayerID: &playerID}

	if status := c.Query("status"); status != "" {
		s := domain.SessionStatus(status)
		filters.Status = &s
	}
	if from := c.Query("from"); from != "" {
		ts, err := time.Parse(time.RFC3339, from)
		if err != nil {
			respondError(c, domain.NewValidationError("from", "must be RFC3339"))
			return
		}
		filters.From = &ts
	}
	if to := c.Query("to"); to != "" {
		ts, err := time.Parse(time.RFC3339, to)
		if err != nil {
			respondError(c, domain.NewValidationError("to", "must be RFC3339"))
			return
		}
		filters.To = &ts
	}
	filters.Location = c.Query("location")
	filters.Limit = queryInt(c, "limit", 50)
	filters.Offset = queryInt(c, "offset", 0)

	sessions, total, err := h.sessionUseCase.ListByFilters(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := SessionListResponse{Total: total, Sessions: make([]SessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, newSessionResponse(s))
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns a single session owned by the authenticated player
func (h *SessionHandler) Get(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	sessionID, ok := pathSessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionUseCase.GetByID(c.Request.Context(), playerID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// AddTransaction appends a ledger transaction to an active session
func (h *SessionHandler) AddTransaction(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	sessionID, ok := pathSessionID(c)
	if !ok {
		return
	}

	var req AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	amount, err := domain.NewMoneyFromFloat(req.Amount, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	tx, err := h.sessionUseCase.AddTransaction(c.Request.Context(), playerID, sessionID, domain.TransactionType(req.Type), amount, req.Description, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTransactionResponse(tx))
}

// End completes an active session with its final cash-out
func (h *SessionHandler) End(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	sessionID, ok := pathSessionID(c)
	if !ok {
		return
	}

	var req EndSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	cashOut, err := domain.NewMoneyFromFloat(req.CashOut, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	session, err := h.sessionUseCase.End(c.Request.Context(), playerID, sessionID, cashOut, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// Cancel voids an active session
func (h *SessionHandler) Cancel(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	sessionID, ok := pathSessionID(c)
	if !ok {
		return
	}

	var req CancelSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	session, err := h.sessionUseCase.Cancel(c.Request.Context(), playerID, sessionID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// UpdateNotes replaces the notes of an active session
func (h *SessionHandler) UpdateNotes(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	sessionID, ok := pathSessionID(c)
	if !ok {
		return
	}

	var req UpdateSessionNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	session, err := h.sessionUseCase.UpdateNotes(c.Request.Context(), playerID, sessionID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// UpdateLocation changes the location of an active session
func (h *SessionHandler) UpdateLocation(c *gin.Context) {
	playerID, ok := authenticatedPlayerID(c)
	if !ok {
		return
	}

	sessionID, ok := pathSessionID(c)
	if !ok {
		return
	}

	var req UpdateSessionLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("body", err.Error()))
		return
	}

	session, err := h.sessionUseCase.UpdateLocation(c.Request.Context(), playerID, sessionID, req.Location)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

func buildStakes(smallBlind, bigBlind float64, ante *float64, currency string) (domain.Stakes, error) {
	sb, err := domain.NewMoneyFromFloat(smallBlind, currency)
	if err != nil {
		return domain.Stakes{}, err
	}
	bb, err := domain.NewMoneyFromFloat(bigBlind, currency)
	if err != nil {
		return domain.Stakes{}, err
	}

	var anteMoney *domain.Money
	if ante != nil {
		m, err := domain.NewMoneyFromFloat(*ante, currency)
		if err != nil {
			return domain.Stakes{}, err
		}
		anteMoney = &m
	}

	return domain.NewStakes(sb, bb, anteMoney)
}

func pathSessionID(c *gin.Context) (domain.SessionID, bool) {
	sessionID, err := domain.ParseSessionID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.NewValidationError("id", "session id is required"))
		return "", false
	}
	return sessionID, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
