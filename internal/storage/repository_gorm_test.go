package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ericogr/arena-battles/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *gormRepository {
	t.Helper()
	db, err := OpenDB(DriverSQLite, filepath.Join(t.TempDir(), "arena.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewGormRepository(db).(*gormRepository)
}

func seedCharacter(t *testing.T, r Repository, userID, name string, hp int) *game.Character {
	t.Helper()
	c := &game.Character{UserID: userID, Name: name, HP: hp, Level: 1, IsOnline: true}
	require.NoError(t, r.CreateCharacter(context.Background(), c))
	return c
}

func TestOpenDB_UnsupportedDriver(t *testing.T) {
	_, err := OpenDB("mongo", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestUsers_CreateLookupDuplicate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := &game.User{Name: "Ana", Email: " Ana@Example.com ", Active: true}
	require.NoError(t, r.CreateUser(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ana@example.com", u.Email)

	got, err := r.GetUserByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	err = r.CreateUser(ctx, &game.User{Name: "Other", Email: "ana@example.com"})
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)

	_, err = r.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser_RemovesOwnedCharacters(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := &game.User{Name: "Ana", Email: "ana@example.com", Active: true}
	require.NoError(t, r.CreateUser(ctx, u))
	seedCharacter(t, r, u.ID, "Grom", 10)
	other := seedCharacter(t, r, "someone-else", "Lia", 10)

	require.NoError(t, r.DeleteUser(ctx, u.ID))

	owned, err := r.ListCharactersByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)
	_, err = r.GetCharacterByID(ctx, other.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, r.DeleteUser(ctx, u.ID), ErrNotFound)
}

func TestCharacters_UpdateHPAndLevel(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	c := seedCharacter(t, r, "u1", "Grom", 40)

	require.NoError(t, r.UpdateCharacterHP(ctx, c.ID, 0))
	require.NoError(t, r.UpdateCharacterLevelAndHP(ctx, c.ID, 2, 61))

	got, err := r.GetCharacterByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 61, got.HP)
	assert.Equal(t, 2, got.Level)

	assert.ErrorIs(t, r.UpdateCharacterHP(ctx, "missing", 1), ErrNotFound)
	assert.ErrorIs(t, r.DeleteCharacter(ctx, "missing"), ErrNotFound)
}

func TestLastBattleFor_PicksLatestOnEitherSide(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	_, err := r.LastBattleFor(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.InsertBattle(ctx, "a", "b", 3, 9)
	require.NoError(t, err)
	last, err := r.InsertBattle(ctx, "c", "a", 12, 4)
	require.NoError(t, err)
	_, err = r.InsertBattle(ctx, "b", "c", 1, 1)
	require.NoError(t, err)

	got, err := r.LastBattleFor(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, last.ID, got.ID)
	assert.Equal(t, "c", got.ChallengerID)
	assert.Equal(t, 12, got.ChallengerRoll)
	assert.True(t, got.FoughtAt.Equal(last.FoughtAt))
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	c := seedCharacter(t, r, "u1", "Grom", 40)
	boom := errors.New("boom")

	err := r.Transaction(ctx, func(tx Repository) error {
		if err := tx.UpdateCharacterHP(ctx, c.ID, 5); err != nil {
			return err
		}
		if _, err := tx.InsertBattle(ctx, c.ID, "x", 1, 2); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := r.GetCharacterByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.HP)
	_, err = r.LastBattleFor(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
