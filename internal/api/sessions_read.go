package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scribble-arena/server/internal/constants"
	"github.com/scribble-arena/server/internal/service"
)

// ListJoinableSessions returns waiting sessions with an open slot. Lobby
// clients poll this on a fixed interval.
func (h *SessionHandler) ListJoinableSessions(c *gin.Context) {
	sessions, err := h.repo.ListJoinableSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSessions})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession returns the current session snapshot. In-battle clients poll
// this for pending-action and health state; the read never mutates.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		return
	}
	s, err := service.GetStatus(h.repo, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSessions})
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListLeaderboard returns the top wallets by wins (desc), limited to 10 by default.
func (h *SessionHandler) ListLeaderboard(c *gin.Context) {
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	wallets, err := h.repo.GetTopWallets(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, wallets)
}

// GetWalletStats returns aggregated battle stats for one wallet.
func (h *SessionHandler) GetWalletStats(c *gin.Context) {
	wallet := c.Query("wallet")
	if wallet == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrWalletRequired})
		return
	}
	stats, err := h.repo.GetStatsByWallet(wallet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, stats)
}
