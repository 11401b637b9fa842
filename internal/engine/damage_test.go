package engine

import (
	"errors"
	"math"
	"testing"
)

func TestComputeDamage_NoShieldNoAdvantage(t *testing.T) {
	for roll := MinRoll; roll <= MaxRoll; roll++ {
		res, err := ComputeDamage(Exchange{AttackerRoll: roll, ShieldFactor: 0.15, Advantage: AdvantageNone})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.EffectiveDamage != roll {
			t.Fatalf("roll %d: expected damage %d, got %d", roll, roll, res.EffectiveDamage)
		}
		if res.EffectiveShield != 0 || res.BonusLifeDamage != 0 {
			t.Fatalf("roll %d: expected no shield or bonus, got %+v", roll, res)
		}
	}
}

func TestComputeDamage_ShieldAdvantageScalesDamageToShield(t *testing.T) {
	res, err := ComputeDamage(Exchange{AttackerRoll: 10, DefenderShield: 100, ShieldFactor: 0, Advantage: AdvantageShield})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DamageToShield != 12 {
		t.Fatalf("expected damage to shield 12, got %d", res.DamageToShield)
	}
	if res.EffectiveDamage != 12 {
		t.Fatalf("expected effective 12 with zero factor, got %d", res.EffectiveDamage)
	}

	// 100 * 0.05 = 5 absorbed
	res, err = ComputeDamage(Exchange{AttackerRoll: 10, DefenderShield: 100, ShieldFactor: 0.05, Advantage: AdvantageShield})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EffectiveShield != 5 || res.EffectiveDamage != 7 {
		t.Fatalf("expected shield 5 / damage 7, got %+v", res)
	}
}

func TestComputeDamage_ShieldAdvantageNeedsShield(t *testing.T) {
	res, err := ComputeDamage(Exchange{AttackerRoll: 10, DefenderShield: 0, ShieldFactor: 0.1, Advantage: AdvantageShield})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DamageToShield != 10 || res.EffectiveDamage != 10 {
		t.Fatalf("expected unscaled 10, got %+v", res)
	}
}

func TestComputeDamage_LifeBonusUsesPostShieldDamage(t *testing.T) {
	// shield 50 * 0.1 = 5 absorbed; 16 - 5 = 11; bonus floor(2.2) = 2
	res, err := ComputeDamage(Exchange{AttackerRoll: 16, DefenderShield: 50, ShieldFactor: 0.1, Advantage: AdvantageLife})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BonusLifeDamage != 2 || res.EffectiveDamage != 13 {
		t.Fatalf("expected bonus 2 / damage 13, got %+v", res)
	}
}

func TestComputeDamage_ShieldCanAbsorbEverything(t *testing.T) {
	res, err := ComputeDamage(Exchange{AttackerRoll: 3, DefenderShield: 1000, ShieldFactor: 0.19, Advantage: AdvantageLife})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EffectiveDamage != 0 || res.BonusLifeDamage != 0 {
		t.Fatalf("expected zero damage, got %+v", res)
	}
}

func TestComputeDamage_Bounds(t *testing.T) {
	shields := []int{0, 1, 7, 50, 100, 999}
	factors := []float64{0, 0.01, 0.1, 0.1999}
	advs := []Advantage{AdvantageNone, AdvantageLife, AdvantageShield}
	for roll := MinRoll; roll <= MaxRoll; roll++ {
		for _, s := range shields {
			for _, f := range factors {
				for _, a := range advs {
					res, err := ComputeDamage(Exchange{AttackerRoll: roll, DefenderShield: s, ShieldFactor: f, Advantage: a})
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					upper := int(math.Floor(float64(roll)*1.25)) + res.BonusLifeDamage
					if res.EffectiveDamage < 0 || res.EffectiveDamage > upper {
						t.Fatalf("damage %d outside [0,%d] for roll=%d shield=%d factor=%v adv=%s", res.EffectiveDamage, upper, roll, s, f, a)
					}
				}
			}
		}
	}
}

func TestComputeDamage_RejectsInvalidInput(t *testing.T) {
	bad := []Exchange{
		{AttackerRoll: 0},
		{AttackerRoll: 17},
		{AttackerRoll: 5, DefenderShield: -1},
		{AttackerRoll: 5, ShieldFactor: math.NaN()},
		{AttackerRoll: 5, ShieldFactor: math.Inf(1)},
		{AttackerRoll: 5, ShieldFactor: 0.2},
		{AttackerRoll: 5, ShieldFactor: -0.01},
	}
	for _, ex := range bad {
		if _, err := ComputeDamage(ex); !errors.Is(err, ErrComputationInvalid) {
			t.Fatalf("expected ErrComputationInvalid for %+v, got %v", ex, err)
		}
	}
}

func TestApplyDamage(t *testing.T) {
	if got := ApplyDamage(100, 5); got != 95 {
		t.Fatalf("expected 95, got %d", got)
	}
	if got := ApplyDamage(3, 10); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ApplyDamage(3, -4); got != 3 {
		t.Fatalf("negative damage must not heal, got %d", got)
	}
}
