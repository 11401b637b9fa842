package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/keys"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type gormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db, now: time.Now}
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *gormRepository) ListUsers(ctx context.Context) ([]game.User, error) {
	var users []game.User
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormRepository) GetUserByID(ctx context.Context, id string) (*game.User, error) {
	var u game.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *gormRepository) GetUserByEmail(ctx context.Context, email string) (*game.User, error) {
	var u game.User
	if err := r.db.WithContext(ctx).Where("email = ?", keys.EmailKey(email)).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *gormRepository) CreateUser(ctx context.Context, u *game.User) error {
	u.Email = keys.EmailKey(u.Email)
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *gormRepository) SaveUser(ctx context.Context, u *game.User) error {
	u.Email = keys.EmailKey(u.Email)
	return translate(r.db.WithContext(ctx).Save(u).Error)
}

func (r *gormRepository) DeleteUser(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var u game.User
	if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
		tx.Rollback()
		return translate(err)
	}
	if err := tx.Where("user_id = ?", id).Delete(&game.Character{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&u).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *gormRepository) ListCharacters(ctx context.Context) ([]game.Character, error) {
	var chars []game.Character
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&chars).Error; err != nil {
		return nil, err
	}
	return chars, nil
}

func (r *gormRepository) ListCharactersByUser(ctx context.Context, userID string) ([]game.Character, error) {
	var chars []game.Character
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&chars).Error; err != nil {
		return nil, err
	}
	return chars, nil
}

func (r *gormRepository) GetCharacterByID(ctx context.Context, id string) (*game.Character, error) {
	var c game.Character
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *gormRepository) CreateCharacter(ctx context.Context, c *game.Character) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *gormRepository) SaveCharacter(ctx context.Context, c *game.Character) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *gormRepository) DeleteCharacter(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&game.Character{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) UpdateCharacterHP(ctx context.Context, id string, hp int) error {
	return r.updateCharacter(ctx, id, map[string]interface{}{"hp": hp})
}

func (r *gormRepository) UpdateCharacterLevelAndHP(ctx context.Context, id string, level, hp int) error {
	return r.updateCharacter(ctx, id, map[string]interface{}{"level": level, "hp": hp})
}

func (r *gormRepository) updateCharacter(ctx context.Context, id string, cols map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&game.Character{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("character %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *gormRepository) InsertBattle(ctx context.Context, challengerID, defenderID string, challengerRoll, defenderRoll int) (*game.Battle, error) {
	b := game.Battle{
		FoughtAt:       r.now().UTC(),
		ChallengerID:   challengerID,
		DefenderID:     defenderID,
		ChallengerRoll: challengerRoll,
		DefenderRoll:   defenderRoll,
	}
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *gormRepository) LastBattleFor(ctx context.Context, characterID string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.WithContext(ctx).
		Where("challenger_id = ? OR defender_id = ?", characterID, characterID).
		Order("fought_at DESC").
		First(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx, now: r.now})
	})
}
