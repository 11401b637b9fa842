package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the subset of the repository used for account management.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*game.User, error)
	GetUserByEmail(ctx context.Context, email string) (*game.User, error)
	CreateUser(ctx context.Context, u *game.User) error
	SaveUser(ctx context.Context, u *game.User) error
}

// UserInput is the payload for a new account.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Age      int    `json:"age"`
	Active   *bool  `json:"active"`
	Password string `json:"password"`
}

// UserPatch updates only the fields that are set.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Age      *int    `json:"age"`
	Active   *bool   `json:"active"`
	Password *string `json:"password"`
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateUser stores a new account. Name and email are required and the
// email must be unused.
func CreateUser(ctx context.Context, repo UserStore, in UserInput) (*game.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, newError(KindInvalidRequest, CodeMissingData, "name and email are required")
	}
	return createUser(ctx, repo, in, CodeEmailExists)
}

func createUser(ctx context.Context, repo UserStore, in UserInput, conflictCode string) (*game.User, error) {
	if in.Age < 0 {
		return nil, newError(KindInvalidRequest, CodeInvalidData, "age must not be negative")
	}
	if _, err := repo.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, newError(KindConflict, conflictCode, "email already registered")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, persistenceError(CodeLookupFailed, "failed to check email", err)
	}

	u := &game.User{
		Name:   strings.TrimSpace(in.Name),
		Email:  in.Email,
		Phone:  in.Phone,
		Age:    in.Age,
		Active: true,
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, &Error{Kind: KindInvalidRequest, Code: CodeInvalidData, Message: "password cannot be hashed", Details: err.Error(), Err: err}
		}
		u.PasswordHash = hash
	}

	if err := repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, newError(KindConflict, conflictCode, "email already registered")
		}
		return nil, persistenceError(CodeInternalFailure, "failed to create user", err)
	}
	return u, nil
}

// GetUser returns the account or USER_NOT_FOUND.
func GetUser(ctx context.Context, repo UserStore, id string) (*game.User, error) {
	u, err := repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(KindNotFound, CodeUserNotFound, "user not found")
		}
		return nil, persistenceError(CodeLookupFailed, "failed to load user", err)
	}
	return u, nil
}

// UpdateUser applies patch to the account. Changing the email to one held
// by another account fails with EMAIL_EXISTS.
func UpdateUser(ctx context.Context, repo UserStore, id string, patch UserPatch) (*game.User, error) {
	u, err := GetUser(ctx, repo, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && !strings.EqualFold(strings.TrimSpace(*patch.Email), u.Email) {
		if strings.TrimSpace(*patch.Email) == "" {
			return nil, newError(KindInvalidRequest, CodeMissingData, "email must not be empty")
		}
		other, err := repo.GetUserByEmail(ctx, *patch.Email)
		switch {
		case err == nil && other.ID != u.ID:
			return nil, newError(KindConflict, CodeEmailExists, "email already registered")
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			return nil, persistenceError(CodeLookupFailed, "failed to check email", err)
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Age != nil {
		if *patch.Age < 0 {
			return nil, newError(KindInvalidRequest, CodeInvalidData, "age must not be negative")
		}
		u.Age = *patch.Age
	}
	if patch.Active != nil {
		u.Active = *patch.Active
	}
	if patch.Password != nil && *patch.Password != "" {
		hash, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, &Error{Kind: KindInvalidRequest, Code: CodeInvalidData, Message: "password cannot be hashed", Details: err.Error(), Err: err}
		}
		u.PasswordHash = hash
	}

	if err := repo.SaveUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, newError(KindConflict, CodeEmailExists, "email already registered")
		}
		return nil, persistenceError(CodeInternalFailure, "failed to update user", err)
	}
	return u, nil
}
