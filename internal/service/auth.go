package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// Register creates an active account with a bcrypt password hash.
func Register(ctx context.Context, repo UserStore, in UserInput) (*game.User, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, newError(KindInvalidRequest, CodeMissingData, "email and password are required")
	}
	in.Active = nil
	return createUser(ctx, repo, in, CodeUserExists)
}

// Login checks the credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func Login(ctx context.Context, repo UserStore, email, password string) (*game.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, newError(KindInvalidRequest, CodeMissingData, "email and password are required")
	}
	u, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(KindUnauthenticated, CodeInvalidCredentials, "invalid credentials")
		}
		return nil, persistenceError(CodeLookupFailed, "failed to load user", err)
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, newError(KindUnauthenticated, CodeInvalidCredentials, "invalid credentials")
	}
	if !u.Active {
		return nil, newError(KindUnauthorized, CodeUserInactive, "user is inactive")
	}
	return u, nil
}
