package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scribble-arena/server/internal/constants"
	"github.com/scribble-arena/server/internal/engine"
	"github.com/scribble-arena/server/internal/game"
	"github.com/scribble-arena/server/internal/service"
)

type ActionRequest struct {
	WalletAddress string `json:"wallet_address"`
	Action        string `json:"action"`
}

// SubmitAction stores the caller's action for the current round and resolves
// the round when the opponent has already moved.
func (h *SessionHandler) SubmitAction(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WalletAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	s, resolved, err := service.SubmitAction(h.repo, sessionID, req.WalletAddress, game.Action(req.Action), h.rng, h.actionTimeout)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidAction})
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		case errors.Is(err, service.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotParticipant})
		case errors.Is(err, service.ErrSessionNotActive):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrSessionNotActive})
		case errors.Is(err, service.ErrActionAlreadySubmitted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionAlreadySubmitted})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}

	if resolved {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Round resolved", "session": s})
	} else {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Action stored. Waiting for opponent.", "session": s})
	}
}

// ResetRound clears both pending actions without resolving them.
func (h *SessionHandler) ResetRound(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}
	s, err := service.ResetForNextRound(h.repo, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		case errors.Is(err, service.ErrSessionNotActive):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrSessionNotActive})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateSession})
		}
		return
	}
	c.JSON(http.StatusOK, s)
}

type WinnerChoiceRequest struct {
	WalletAddress string `json:"wallet_address"`
	Choice        string `json:"choice"`
}

// RecordWinnerChoice stores the winner's spare-or-burn decision.
func (h *SessionHandler) RecordWinnerChoice(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req WinnerChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WalletAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	s, err := service.RecordWinnerChoice(h.repo, sessionID, req.WalletAddress, req.Choice)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidChoice):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidChoice})
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		case errors.Is(err, service.ErrBattleNotCompleted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotCompleted})
		case errors.Is(err, service.ErrNoWinner):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoWinner})
		case errors.Is(err, service.ErrNotWinner):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotWinner})
		case errors.Is(err, service.ErrChoiceAlreadyMade):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrChoiceAlreadyMade})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateSession})
		}
		return
	}
	c.JSON(http.StatusOK, s)
}
