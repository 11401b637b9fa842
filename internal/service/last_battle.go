package service

import (
	"context"
	"errors"

	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/storage"
)

// BattleHistory reads past battles.
type BattleHistory interface {
	CharacterLookup
	LastBattleFor(ctx context.Context, characterID string) (*game.Battle, error)
}

// HistoryReader rebuilds a character's most recent battle from the stored
// rolls. It never writes.
type HistoryReader struct {
	store BattleHistory
}

func NewHistoryReader(store BattleHistory) *HistoryReader {
	return &HistoryReader{store: store}
}

// LastBattleFor returns the latest battle the character fought on either
// side. Only the owner may read it.
func (h *HistoryReader) LastBattleFor(ctx context.Context, characterID, actingUserID string) (*game.BattleSummary, error) {
	character, err := h.store.GetCharacterByID(ctx, characterID)
	if err != nil || character == nil {
		if err == nil || errors.Is(err, storage.ErrNotFound) {
			return nil, newError(KindNotFound, CodeCharacterNotFound, "character not found")
		}
		return nil, persistenceError(CodeLookupFailed, "failed to load character", err)
	}
	if character.UserID != actingUserID {
		return nil, newError(KindUnauthorized, CodeUnauthorized, "character does not belong to the authenticated user")
	}

	battle, err := h.store.LastBattleFor(ctx, characterID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(KindNotFound, CodeNoBattlesFound, "character has no recorded battles")
		}
		return nil, persistenceError(CodeHistoryReadFailed, "failed to read battles", err)
	}

	wasChallenger := battle.ChallengerID == characterID
	ownRoll, opponentRoll, opponentID := battle.DefenderRoll, battle.ChallengerRoll, battle.ChallengerID
	if wasChallenger {
		ownRoll, opponentRoll, opponentID = battle.ChallengerRoll, battle.DefenderRoll, battle.DefenderID
	}

	opponent, err := h.store.GetCharacterByID(ctx, opponentID)
	if err != nil || opponent == nil {
		if err == nil {
			err = storage.ErrNotFound
		}
		return nil, persistenceError(CodeOpponentLookupFailed, "failed to load opponent", err)
	}

	// Only rolls are stored, so the roll stands in for the damage figures
	// and the higher roll is reported as the win.
	return &game.BattleSummary{
		BattleID: battle.ID,
		FoughtAt: battle.FoughtAt,
		Character: game.BattleSide{
			ID:             character.ID,
			Name:           character.Name,
			WasChallenger:  wasChallenger,
			WonBattle:      ownRoll > opponentRoll,
			DamageReceived: opponentRoll,
			DamageDealt:    ownRoll,
			Roll:           ownRoll,
		},
		Opponent: game.Opponent{
			ID:   opponent.ID,
			Name: opponent.Name,
			Roll: opponentRoll,
		},
	}, nil
}
