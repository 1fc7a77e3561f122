package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumenpay/passgate/core"
	"github.com/lumenpay/passgate/ports"
	"github.com/lumenpay/passgate/service"
)

// Handlers contains the HTTP handlers for the local API surface.
type Handlers struct {
	auth      *service.AuthService
	transfers *service.TransferService
	tokenizer ports.Tokenizer
}

// NewHandlers creates new handlers.
func NewHandlers(auth *service.AuthService, transfers *service.TransferService, tokenizer ports.Tokenizer) *Handlers {
	return &Handlers{
		auth:      auth,
		transfers: transfers,
		tokenizer: tokenizer,
	}
}

// SessionResponse is the session record returned to API clients.
type SessionResponse struct {
	UserID         string `json:"user_id"`
	SmartAccountID string `json:"smart_account_id"`
	PublicKeyHex   string `json:"public_key_hex"`
	Name           string `json:"name,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

func sessionResponse(session *core.Session) SessionResponse {
	return SessionResponse{
		UserID:         session.UserID,
		SmartAccountID: session.SmartAccountID,
		PublicKeyHex:   session.EffectivePublicKeyHex(),
		Name:           session.Name,
		CreatedAt:      session.CreatedAt,
	}
}

// Register runs a registration ceremony and returns the new session
// with an access token.
func (h *Handlers) Register(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.auth.Register(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondWithToken(c, session)
}

// Login runs a login ceremony and returns the session with an access
// token.
func (h *Handlers) Login(c *gin.Context) {
	session, err := h.auth.Login(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondWithToken(c, session)
}

// Logout clears the local session.
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session returns the active session.
func (h *Handlers) Session(c *gin.Context) {
	session, ok := h.activeSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// Balance returns the active account's balance in minor units.
func (h *Handlers) Balance(c *gin.Context) {
	if _, ok := h.activeSession(c); !ok {
		return
	}

	balance, err := h.auth.Balance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance.String()})
}

// Transfer authorizes and submits a transfer with the active session's
// passkey.
func (h *Handlers) Transfer(c *gin.Context) {
	var req struct {
		Recipient string `json:"recipient" binding:"required"`
		Amount    string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, ok := h.activeSession(c); !ok {
		return
	}

	receipt, err := h.transfers.Send(c.Request.Context(), req.Recipient, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction_hash": receipt.TransactionHash})
}

// activeSession loads the stored session and checks it still belongs to
// the identity the access token was issued for. A token minted before a
// re-login under a different account must not act on the new session.
func (h *Handlers) activeSession(c *gin.Context) (*core.Session, bool) {
	session, err := h.auth.Session(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if claimed := tokenSession(c); claimed != nil && claimed.SmartAccountID != session.SmartAccountID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token does not match active session"})
		return nil, false
	}
	return session, true
}

func tokenSession(c *gin.Context) *core.Session {
	v, ok := c.Get(tokenSessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*core.Session)
	return session
}

func (h *Handlers) respondWithToken(c *gin.Context, session *core.Session) {
	token, err := h.tokenizer.SessionToAccessToken(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":      sessionResponse(session),
		"access_token": token,
	})
}

// respondError maps the error taxonomy to HTTP statuses, keeping the
// stable error kind visible to clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrAmountOverflow),
		errors.Is(err, core.ErrInvalidIntent):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrNoSession):
		status = http.StatusUnauthorized
	case errors.Is(err, core.ErrAssertionDenied):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrAssertionTimeout):
		status = http.StatusRequestTimeout
	case errors.Is(err, core.ErrMalformedSignature):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrSubmissionRejected):
		status = http.StatusConflict
	case errors.Is(err, core.ErrNonceUnavailable),
		errors.Is(err, core.ErrNetworkFailure):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
