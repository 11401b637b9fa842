package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/storage"
)

// CharacterStore is the subset of the repository used for character
// management. Owner checks go through GetUserByID.
type CharacterStore interface {
	CharacterLookup
	GetUserByID(ctx context.Context, id string) (*game.User, error)
	CreateCharacter(ctx context.Context, c *game.Character) error
	SaveCharacter(ctx context.Context, c *game.Character) error
}

type CharacterInput struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Race     string `json:"race"`
	Class    string `json:"class"`
	Guild    string `json:"guild"`
	HP       int    `json:"hp"`
	Shield   int    `json:"shield"`
	Level    int    `json:"level"`
	IsOnline bool   `json:"is_online"`
	Kingdom  string `json:"kingdom"`
}

type CharacterPatch struct {
	UserID   *string `json:"user_id"`
	Name     *string `json:"name"`
	Avatar   *string `json:"avatar"`
	Race     *string `json:"race"`
	Class    *string `json:"class"`
	Guild    *string `json:"guild"`
	HP       *int    `json:"hp"`
	Shield   *int    `json:"shield"`
	Level    *int    `json:"level"`
	IsOnline *bool   `json:"is_online"`
	Kingdom  *string `json:"kingdom"`
}

func validateStats(hp, shield, level int) error {
	switch {
	case hp < 0:
		return newError(KindInvalidRequest, CodeInvalidData, "hp must not be negative")
	case shield < 0:
		return newError(KindInvalidRequest, CodeInvalidData, "shield must not be negative")
	case level < 1:
		return newError(KindInvalidRequest, CodeInvalidData, "level must be at least 1")
	}
	return nil
}

func ensureOwner(ctx context.Context, repo CharacterStore, userID string) error {
	if _, err := repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return newError(KindNotFound, CodeUserNotFound, "user not found")
		}
		return persistenceError(CodeLookupFailed, "failed to load user", err)
	}
	return nil
}

// CreateCharacter stores a new character for an existing user. Level
// defaults to 1.
func CreateCharacter(ctx context.Context, repo CharacterStore, in CharacterInput) (*game.Character, error) {
	if strings.TrimSpace(in.Name) == "" || in.UserID == "" {
		return nil, newError(KindInvalidRequest, CodeMissingData, "name and user_id are required")
	}
	if in.Level == 0 {
		in.Level = 1
	}
	if err := validateStats(in.HP, in.Shield, in.Level); err != nil {
		return nil, err
	}
	if err := ensureOwner(ctx, repo, in.UserID); err != nil {
		return nil, err
	}

	c := &game.Character{
		UserID:   in.UserID,
		Name:     strings.TrimSpace(in.Name),
		Avatar:   in.Avatar,
		Race:     in.Race,
		Class:    in.Class,
		Guild:    in.Guild,
		HP:       in.HP,
		Shield:   in.Shield,
		Level:    in.Level,
		IsOnline: in.IsOnline,
		Kingdom:  in.Kingdom,
	}
	if err := repo.CreateCharacter(ctx, c); err != nil {
		return nil, persistenceError(CodeInternalFailure, "failed to create character", err)
	}
	return c, nil
}

// GetCharacter returns the character or CHARACTER_NOT_FOUND.
func GetCharacter(ctx context.Context, repo CharacterLookup, id string) (*game.Character, error) {
	c, err := repo.GetCharacterByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(KindNotFound, CodeCharacterNotFound, "character not found")
		}
		return nil, persistenceError(CodeLookupFailed, "failed to load character", err)
	}
	return c, nil
}

// UpdateCharacter applies patch. Moving the character to another user
// requires that user to exist.
func UpdateCharacter(ctx context.Context, repo CharacterStore, id string, patch CharacterPatch) (*game.Character, error) {
	c, err := GetCharacter(ctx, repo, id)
	if err != nil {
		return nil, err
	}

	if patch.UserID != nil && *patch.UserID != c.UserID {
		if err := ensureOwner(ctx, repo, *patch.UserID); err != nil {
			return nil, err
		}
		c.UserID = *patch.UserID
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, newError(KindInvalidRequest, CodeMissingData, "name must not be empty")
		}
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Avatar != nil {
		c.Avatar = *patch.Avatar
	}
	if patch.Race != nil {
		c.Race = *patch.Race
	}
	if patch.Class != nil {
		c.Class = *patch.Class
	}
	if patch.Guild != nil {
		c.Guild = *patch.Guild
	}
	if patch.HP != nil {
		c.HP = *patch.HP
	}
	if patch.Shield != nil {
		c.Shield = *patch.Shield
	}
	if patch.Level != nil {
		c.Level = *patch.Level
	}
	if patch.IsOnline != nil {
		c.IsOnline = *patch.IsOnline
	}
	if patch.Kingdom != nil {
		c.Kingdom = *patch.Kingdom
	}
	if err := validateStats(c.HP, c.Shield, c.Level); err != nil {
		return nil, err
	}

	if err := repo.SaveCharacter(ctx, c); err != nil {
		return nil, persistenceError(CodeInternalFailure, "failed to update character", err)
	}
	return c, nil
}
