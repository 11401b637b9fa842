package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPasswordAndActivates(t *testing.T) {
	store := newMemStore()
	inactive := false

	u, err := Register(context.Background(), store, UserInput{Name: "Ana", Email: "Ana@Example.com", Password: "s3cret", Active: &inactive})
	require.NoError(t, err)

	assert.True(t, u.Active)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
}

func TestRegister_Failures(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	_, err := Register(ctx, store, UserInput{Email: "a@b.c"})
	requireCode(t, err, KindInvalidRequest, CodeMissingData)

	_, err = Register(ctx, store, UserInput{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	_, err = Register(ctx, store, UserInput{Email: " A@B.C ", Password: "pw"})
	requireCode(t, err, KindConflict, CodeUserExists)
}

func TestLogin(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	u, err := Register(ctx, store, UserInput{Name: "Ana", Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	got, err := Login(ctx, store, "ANA@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = Login(ctx, store, "ana@example.com", "wrong")
	requireCode(t, err, KindUnauthenticated, CodeInvalidCredentials)

	_, err = Login(ctx, store, "nobody@example.com", "s3cret")
	requireCode(t, err, KindUnauthenticated, CodeInvalidCredentials)

	_, err = Login(ctx, store, "", "")
	requireCode(t, err, KindInvalidRequest, CodeMissingData)

	store.users[u.ID].Active = false
	_, err = Login(ctx, store, "ana@example.com", "s3cret")
	requireCode(t, err, KindUnauthorized, CodeUserInactive)

	// wrong password is reported before the inactive flag
	_, err = Login(ctx, store, "ana@example.com", "wrong")
	requireCode(t, err, KindUnauthenticated, CodeInvalidCredentials)
}
