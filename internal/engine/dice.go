package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"sync"
)

const (
	MinRewardBonus = 50
	MaxRewardBonus = 75
)

// Dice supplies every random draw a battle needs.
type Dice interface {
	// Roll returns an attack roll in [MinRoll, MaxRoll].
	Roll() int
	// ShieldFactor returns the absorbing share of a shield in [0, MaxShieldFactor).
	ShieldFactor() float64
	// RewardBonus returns the winner's hp bonus in [MinRewardBonus, MaxRewardBonus].
	RewardBonus() int
}

// RandomDice draws from a math/rand source seeded from crypto/rand. It is
// safe for concurrent use.
type RandomDice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomDice seeds a new source with 64 bits from crypto/rand.
func NewRandomDice() (*RandomDice, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return NewSeededDice(int64(binary.LittleEndian.Uint64(b[:]))), nil
}

// NewSeededDice returns dice with a fixed seed, for reproducible runs.
func NewSeededDice(seed int64) *RandomDice {
	return &RandomDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *RandomDice) Roll() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Intn(MaxRoll-MinRoll+1) + MinRoll
}

func (d *RandomDice) ShieldFactor() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.rng.Float64() * MaxShieldFactor
	if f >= MaxShieldFactor {
		// rounding can land exactly on the bound
		f = math.Nextafter(MaxShieldFactor, 0)
	}
	return f
}

func (d *RandomDice) RewardBonus() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Intn(MaxRewardBonus-MinRewardBonus+1) + MinRewardBonus
}
