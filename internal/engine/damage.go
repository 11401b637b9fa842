package engine

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinRoll = 1
	MaxRoll = 16

	// MaxShieldFactor is the exclusive upper bound of the random share of
	// a shield that absorbs damage in one exchange.
	MaxShieldFactor = 0.2

	shieldAdvantageMultiplier = 1.25
	lifeAdvantageRatio        = 0.20
)

// ErrComputationInvalid reports a non-finite or out-of-range intermediate
// value. Results carrying it must never be applied.
var ErrComputationInvalid = errors.New("damage computation produced an invalid value")

// Exchange is one directional attack: the attacker's roll against the
// defender's shield.
type Exchange struct {
	AttackerRoll   int
	DefenderShield int
	// ShieldFactor is drawn from [0, MaxShieldFactor) for the defender.
	ShieldFactor float64
	// Advantage is what the attacker's race holds over the defender's race.
	Advantage Advantage
}

// ExchangeResult carries the final damage plus the intermediate figures
// reported back to clients.
type ExchangeResult struct {
	RawDamage       int       `json:"raw_damage"`
	DamageToShield  int       `json:"damage_to_shield"`
	EffectiveShield int       `json:"effective_shield"`
	BonusLifeDamage int       `json:"bonus_life_damage"`
	EffectiveDamage int       `json:"effective_damage"`
	Advantage       Advantage `json:"advantage"`
}

// ComputeDamage resolves a single exchange:
//
//	effectiveShield = floor(shield * factor)
//	toShield        = roll, or floor(roll * 1.25) with a shield advantage against a shield > 0
//	effective       = max(0, toShield - effectiveShield)
//	effective      += floor(effective * 0.20) with a life advantage
func ComputeDamage(ex Exchange) (ExchangeResult, error) {
	if ex.AttackerRoll < MinRoll || ex.AttackerRoll > MaxRoll {
		return ExchangeResult{}, fmt.Errorf("%w: roll %d outside [%d,%d]", ErrComputationInvalid, ex.AttackerRoll, MinRoll, MaxRoll)
	}
	if ex.DefenderShield < 0 {
		return ExchangeResult{}, fmt.Errorf("%w: negative shield %d", ErrComputationInvalid, ex.DefenderShield)
	}
	if !isFinite(ex.ShieldFactor) || ex.ShieldFactor < 0 || ex.ShieldFactor >= MaxShieldFactor {
		return ExchangeResult{}, fmt.Errorf("%w: shield factor %v", ErrComputationInvalid, ex.ShieldFactor)
	}

	res := ExchangeResult{RawDamage: ex.AttackerRoll, Advantage: ex.Advantage}
	if res.Advantage == "" {
		res.Advantage = AdvantageNone
	}

	shield := math.Floor(float64(ex.DefenderShield) * ex.ShieldFactor)
	if !isFinite(shield) {
		return ExchangeResult{}, fmt.Errorf("%w: effective shield", ErrComputationInvalid)
	}
	res.EffectiveShield = int(shield)

	toShield := float64(ex.AttackerRoll)
	if res.Advantage == AdvantageShield && ex.DefenderShield > 0 {
		toShield = math.Floor(toShield * shieldAdvantageMultiplier)
	}
	res.DamageToShield = int(toShield)

	effective := math.Floor(math.Max(0, toShield-shield))
	if !isFinite(effective) {
		return ExchangeResult{}, fmt.Errorf("%w: effective damage", ErrComputationInvalid)
	}
	if res.Advantage == AdvantageLife {
		bonus := math.Floor(effective * lifeAdvantageRatio)
		if !isFinite(bonus) {
			return ExchangeResult{}, fmt.Errorf("%w: life bonus", ErrComputationInvalid)
		}
		res.BonusLifeDamage = int(bonus)
		effective += bonus
	}
	res.EffectiveDamage = int(effective)
	return res, nil
}

// ApplyDamage returns max(0, hp - damage).
func ApplyDamage(hp, damage int) int {
	if damage < 0 {
		damage = 0
	}
	if hp-damage < 0 {
		return 0
	}
	return hp - damage
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
