package storage

import (
	"context"
	"errors"

	"github.com/ericogr/arena-battles/internal/game"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint (user email) is violated.
	ErrDuplicate = errors.New("duplicate record")
)

type Repository interface {
	ListUsers(ctx context.Context) ([]game.User, error)
	GetUserByID(ctx context.Context, id string) (*game.User, error)
	// GetUserByEmail matches the normalized (trimmed, lower-case) email.
	GetUserByEmail(ctx context.Context, email string) (*game.User, error)
	CreateUser(ctx context.Context, u *game.User) error
	SaveUser(ctx context.Context, u *game.User) error
	// DeleteUser removes the user together with the characters it owns.
	DeleteUser(ctx context.Context, id string) error

	ListCharacters(ctx context.Context) ([]game.Character, error)
	ListCharactersByUser(ctx context.Context, userID string) ([]game.Character, error)
	GetCharacterByID(ctx context.Context, id string) (*game.Character, error)
	CreateCharacter(ctx context.Context, c *game.Character) error
	SaveCharacter(ctx context.Context, c *game.Character) error
	DeleteCharacter(ctx context.Context, id string) error

	// Battle writes. Each call is its own statement unless run inside Transaction.
	UpdateCharacterHP(ctx context.Context, id string, hp int) error
	UpdateCharacterLevelAndHP(ctx context.Context, id string, level, hp int) error
	InsertBattle(ctx context.Context, challengerID, defenderID string, challengerRoll, defenderRoll int) (*game.Battle, error)
	// LastBattleFor returns the most recent battle where the character was
	// either side, or ErrNotFound.
	LastBattleFor(ctx context.Context, characterID string) (*game.Battle, error)

	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls every write back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}
