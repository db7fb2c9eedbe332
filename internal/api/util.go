package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/scribble-arena/server/internal/constants"
	"github.com/scribble-arena/server/internal/game"
)

// attributePointBudget is the creation-time stat budget. Enforced here, at
// the caller boundary; stored rows that predate the rule are tolerated by
// the core.
const attributePointBudget = 3

// parseSessionID validates the :sessionID route param as a UUID. On failure
// it writes the 400 response and returns ok=false.
func parseSessionID(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.Param("sessionID"))
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSessionID})
		return "", false
	}
	return id.String(), true
}

// validAttributes checks the non-negative, sums-to-budget creation invariant.
func validAttributes(a game.Attributes) bool {
	if a.Attack < 0 || a.Defense < 0 || a.Speed < 0 {
		return false
	}
	return a.Attack+a.Defense+a.Speed == attributePointBudget
}
