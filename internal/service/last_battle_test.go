package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastBattleFor_InfersRoleFromLatestRecord(t *testing.T) {
	store := newMemStore(
		fighter("a", "u1", "human", 50, 0),
		fighter("b", "u2", "human", 50, 0),
		fighter("c", "u3", "human", 50, 0),
	)
	ctx := context.Background()
	_, _ = store.InsertBattle(ctx, "a", "b", 3, 9)
	_, _ = store.InsertBattle(ctx, "c", "a", 4, 12)
	_, _ = store.InsertBattle(ctx, "b", "c", 16, 1)

	got, err := NewHistoryReader(store).LastBattleFor(ctx, "a", "u1")
	require.NoError(t, err)

	assert.Equal(t, "battle-2", got.BattleID)
	assert.False(t, got.Character.WasChallenger)
	assert.Equal(t, 12, got.Character.Roll)
	assert.True(t, got.Character.WonBattle)
	assert.Equal(t, 4, got.Character.DamageReceived)
	assert.Equal(t, 12, got.Character.DamageDealt)
	assert.Equal(t, "c", got.Opponent.ID)
	assert.Equal(t, "N-c", got.Opponent.Name)
	assert.Equal(t, 4, got.Opponent.Roll)
}

func TestLastBattleFor_EqualRollsIsNotAWin(t *testing.T) {
	store := newMemStore(fighter("a", "u1", "human", 50, 0), fighter("b", "u2", "human", 50, 0))
	_, _ = store.InsertBattle(context.Background(), "a", "b", 7, 7)

	got, err := NewHistoryReader(store).LastBattleFor(context.Background(), "a", "u1")
	require.NoError(t, err)
	assert.True(t, got.Character.WasChallenger)
	assert.False(t, got.Character.WonBattle)
}

func TestLastBattleFor_IsIdempotent(t *testing.T) {
	store := newMemStore(fighter("a", "u1", "human", 50, 0), fighter("b", "u2", "human", 50, 0))
	_, _ = store.InsertBattle(context.Background(), "a", "b", 2, 5)
	reader := NewHistoryReader(store)

	first, err := reader.LastBattleFor(context.Background(), "a", "u1")
	require.NoError(t, err)
	second, err := reader.LastBattleFor(context.Background(), "a", "u1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.writes, "only the seeded insert wrote")
}

func TestLastBattleFor_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown character", func(t *testing.T) {
		_, err := NewHistoryReader(newMemStore()).LastBattleFor(ctx, "x", "u1")
		requireCode(t, err, KindNotFound, CodeCharacterNotFound)
	})

	t.Run("other owner", func(t *testing.T) {
		store := newMemStore(fighter("a", "u1", "human", 50, 0))
		_, err := NewHistoryReader(store).LastBattleFor(ctx, "a", "u2")
		requireCode(t, err, KindUnauthorized, CodeUnauthorized)
	})

	t.Run("no battles", func(t *testing.T) {
		store := newMemStore(fighter("a", "u1", "human", 50, 0))
		_, err := NewHistoryReader(store).LastBattleFor(ctx, "a", "u1")
		requireCode(t, err, KindNotFound, CodeNoBattlesFound)
	})

	t.Run("opponent deleted", func(t *testing.T) {
		store := newMemStore(fighter("a", "u1", "human", 50, 0))
		_, _ = store.InsertBattle(ctx, "a", "gone", 2, 5)
		_, err := NewHistoryReader(store).LastBattleFor(ctx, "a", "u1")
		requireCode(t, err, KindPersistence, CodeOpponentLookupFailed)
	})

	t.Run("lookup error", func(t *testing.T) {
		store := newMemStore(fighter("a", "u1", "human", 50, 0))
		store.lookupErr = errors.New("timeout")
		_, err := NewHistoryReader(store).LastBattleFor(ctx, "a", "u1")
		requireCode(t, err, KindPersistence, CodeLookupFailed)
	})
}
