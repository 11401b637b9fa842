package engine

import "github.com/ericogr/arena-battles/internal/keys"

// Advantage is a directional combat modifier one race holds over another.
type Advantage string

const (
	AdvantageNone Advantage = "none"
	// AdvantageLife adds 20% of the post-shield damage straight to life.
	AdvantageLife Advantage = "life"
	// AdvantageShield scales the damage dealt against a shield by 25%.
	AdvantageShield Advantage = "shield"
)

// Canonical race keys, as produced by keys.RaceKey.
const (
	RaceOrc      = "orc"
	RaceDwarf    = "dwarf"
	RaceElf      = "elf"
	RaceTiefling = "tiefling"
	RaceHalfElf  = "half-elf"
	RaceHuman    = "human"
)

// raceAdvantages is attacker -> defender -> advantage. Absent pairs have none.
var raceAdvantages = map[string]map[string]Advantage{
	// brute force against humans and elves
	RaceOrc: {
		RaceHuman: AdvantageLife,
		RaceElf:   AdvantageLife,
	},
	// shield breakers, dwarves included
	RaceDwarf: {
		RaceOrc:      AdvantageShield,
		RaceElf:      AdvantageShield,
		RaceHuman:    AdvantageShield,
		RaceTiefling: AdvantageShield,
		RaceHalfElf:  AdvantageShield,
		RaceDwarf:    AdvantageShield,
	},
	RaceElf: {
		RaceTiefling: AdvantageLife,
	},
	RaceTiefling: {
		RaceHuman:   AdvantageLife,
		RaceHalfElf: AdvantageLife,
	},
	RaceHalfElf: {},
	RaceHuman:   {},
}

// AdvantageOf returns the advantage attackerRace holds over defenderRace.
// Lookup is case-insensitive, trims whitespace and is asymmetric; unknown
// or empty races yield AdvantageNone.
func AdvantageOf(attackerRace, defenderRace string) Advantage {
	a, d := keys.RaceKey(attackerRace), keys.RaceKey(defenderRace)
	if a == "" || d == "" {
		return AdvantageNone
	}
	if adv, ok := raceAdvantages[a][d]; ok {
		return adv
	}
	return AdvantageNone
}

// KnownRaces lists the races present in the advantage table.
func KnownRaces() []string {
	return []string{RaceOrc, RaceDwarf, RaceElf, RaceTiefling, RaceHalfElf, RaceHuman}
}
