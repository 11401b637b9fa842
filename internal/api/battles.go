package api

import (
	"context"
	"net/http"

	"github.com/ericogr/arena-battles/internal/constants"
	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/service"

	"github.com/gin-gonic/gin"
)

// BattleResolver is satisfied by *service.Resolver.
type BattleResolver interface {
	Resolve(ctx context.Context, challengerID, defenderID, actingUserID string) (*game.BattleOutcome, error)
}

// LastBattleReader is satisfied by *service.HistoryReader.
type LastBattleReader interface {
	LastBattleFor(ctx context.Context, characterID, actingUserID string) (*game.BattleSummary, error)
}

type BattleHandler struct {
	resolver BattleResolver
	history  LastBattleReader
}

func NewBattleHandler(resolver BattleResolver, history LastBattleReader) *BattleHandler {
	return &BattleHandler{resolver: resolver, history: history}
}

// Battle resolves a fight between the two characters in the path. The
// challenger must belong to the session user.
func (h *BattleHandler) Battle(c *gin.Context) {
	challengerID := c.Param("challengerID")
	defenderID := c.Param("defenderID")
	if challengerID == "" || defenderID == "" {
		badRequest(c, "")
		return
	}
	if challengerID == defenderID {
		c.JSON(http.StatusBadRequest, errorBody(constants.ErrSameCharacterParams, service.CodeSameCharacter, ""))
		return
	}
	out, err := h.resolver.Resolve(c.Request.Context(), challengerID, defenderID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, out, "Battle resolved")
}

// LastBattle returns the most recent battle of a character owned by the
// session user.
func (h *BattleHandler) LastBattle(c *gin.Context) {
	summary, err := h.history.LastBattleFor(c.Request.Context(), c.Param("characterID"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary, "")
}
