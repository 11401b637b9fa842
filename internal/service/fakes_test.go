package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ericogr/arena-battles/internal/engine"
	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/keys"
	"github.com/ericogr/arena-battles/internal/storage"
)

// memStore is an in-memory stand-in for the repository. It does not
// implement Transactor, so the resolver takes the compensating path.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*game.User
	chars   map[string]*game.Character
	battles []game.Battle
	writes  int

	lookupErr  error
	failHP     map[string]error
	revertErr  error
	rewardErr  error
	historyErr error
	base       time.Time
}

func newMemStore(chars ...game.Character) *memStore {
	m := &memStore{
		users:  map[string]*game.User{},
		chars:  map[string]*game.Character{},
		failHP: map[string]error{},
		base:   time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	for i := range chars {
		c := chars[i]
		m.chars[c.ID] = &c
	}
	return m
}

func (m *memStore) char(id string) game.Character {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.chars[id]
}

func (m *memStore) GetCharacterByID(ctx context.Context, id string) (*game.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	c, ok := m.chars[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) UpdateCharacterHP(ctx context.Context, id string, hp int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failHP[id]; err != nil {
		return err
	}
	c, ok := m.chars[id]
	if !ok {
		return storage.ErrNotFound
	}
	if m.revertErr != nil && m.writes > 0 {
		return m.revertErr
	}
	m.writes++
	c.HP = hp
	return nil
}

func (m *memStore) UpdateCharacterLevelAndHP(ctx context.Context, id string, level, hp int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rewardErr != nil {
		return m.rewardErr
	}
	c, ok := m.chars[id]
	if !ok {
		return storage.ErrNotFound
	}
	m.writes++
	c.Level, c.HP = level, hp
	return nil
}

func (m *memStore) InsertBattle(ctx context.Context, challengerID, defenderID string, challengerRoll, defenderRoll int) (*game.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	m.writes++
	b := game.Battle{
		ID:             fmt.Sprintf("battle-%d", len(m.battles)+1),
		FoughtAt:       m.base.Add(time.Duration(len(m.battles)) * time.Minute),
		ChallengerID:   challengerID,
		DefenderID:     defenderID,
		ChallengerRoll: challengerRoll,
		DefenderRoll:   defenderRoll,
	}
	m.battles = append(m.battles, b)
	return &b, nil
}

func (m *memStore) LastBattleFor(ctx context.Context, characterID string) (*game.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last *game.Battle
	for i := range m.battles {
		b := m.battles[i]
		if b.ChallengerID != characterID && b.DefenderID != characterID {
			continue
		}
		if last == nil || b.FoughtAt.After(last.FoughtAt) {
			last = &b
		}
	}
	if last == nil {
		return nil, storage.ErrNotFound
	}
	return last, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id string) (*game.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*game.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == keys.EmailKey(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) CreateUser(ctx context.Context, u *game.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = keys.EmailKey(u.Email)
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) SaveUser(ctx context.Context, u *game.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = keys.EmailKey(u.Email)
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) CreateCharacter(ctx context.Context, c *game.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = fmt.Sprintf("char-%d", len(m.chars)+1)
	}
	cp := *c
	m.chars[c.ID] = &cp
	return nil
}

func (m *memStore) SaveCharacter(ctx context.Context, c *game.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.chars[c.ID] = &cp
	return nil
}

// fixedDice replays scripted draws. Roll panics when the script runs out
// so a test notices an unexpected extra draw.
type fixedDice struct {
	rolls      []int
	factor     float64
	bonus      int
	bonusDrawn int
}

func (d *fixedDice) Roll() int {
	r := d.rolls[0]
	d.rolls = d.rolls[1:]
	return r
}

func (d *fixedDice) ShieldFactor() float64 { return d.factor }

func (d *fixedDice) RewardBonus() int {
	d.bonusDrawn++
	return d.bonus
}

var _ engine.Dice = (*fixedDice)(nil)
