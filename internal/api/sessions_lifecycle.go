package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scribble-arena/server/internal/constants"
	"github.com/scribble-arena/server/internal/game"
	"github.com/scribble-arena/server/internal/service"
)

type CombatantPayload struct {
	WalletAddress string          `json:"wallet_address"`
	Image         string          `json:"image"`
	Attributes    game.Attributes `json:"attributes"`
}

func (p CombatantPayload) toNewCombatant() service.NewCombatant {
	return service.NewCombatant{
		WalletAddress: p.WalletAddress,
		Image:         p.Image,
		Attributes:    p.Attributes,
	}
}

// CreateSession opens a new battle session with the caller as host.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CombatantPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.WalletAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrWalletRequired})
		return
	}
	if !validAttributes(req.Attributes) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAttributes})
		return
	}
	s, err := service.CreateSession(h.repo, req.toNewCombatant())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	c.JSON(http.StatusCreated, s)
}

// JoinSession seats the caller as the second player.
func (h *SessionHandler) JoinSession(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req CombatantPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.WalletAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrWalletRequired})
		return
	}
	if !validAttributes(req.Attributes) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAttributes})
		return
	}
	s, err := service.JoinSession(h.repo, sessionID, req.toNewCombatant(), h.actionTimeout)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		case errors.Is(err, service.ErrSelfJoin):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrSelfJoin})
		case errors.Is(err, service.ErrSessionInactive):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrSessionInactive})
		case errors.Is(err, service.ErrSessionFull):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrSessionFull})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateSession})
		}
		return
	}
	c.JSON(http.StatusOK, s)
}

type FleePayload struct {
	WalletAddress string `json:"wallet_address"`
}

// Flee ends the battle for both sides; the caller is recorded as the loser.
func (h *SessionHandler) Flee(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req FleePayload
	if err := c.ShouldBindJSON(&req); err != nil || req.WalletAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	s, err := service.Flee(h.repo, sessionID, req.WalletAddress)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		case errors.Is(err, service.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotParticipant})
		case errors.Is(err, service.ErrSessionNotActive):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrSessionNotActive})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateSession})
		}
		return
	}
	c.JSON(http.StatusOK, s)
}

// DeleteSession removes a session record entirely. Operator endpoint; the
// battle core never deletes sessions on its own.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}
	deleted, err := h.repo.DeleteSession(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedDeleteSession})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Session deleted"})
}
