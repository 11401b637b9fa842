package game

import "time"

// CombatantReport describes one side of a resolved battle. Damage and
// shield fields describe what this side received. AppliedAdvantage and
// BonusLifeDamage describe what this side's race did to the opponent.
type CombatantReport struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Race                    string `json:"race"`
	HPBefore                int    `json:"hp_before"`
	HPAfter                 int    `json:"hp_after"`
	Roll                    int    `json:"roll"`
	RawDamageReceived       int    `json:"raw_damage_received"`
	DamageToShield          int    `json:"damage_to_shield"`
	Shield                  int    `json:"shield"`
	EffectiveShield         int    `json:"effective_shield"`
	EffectiveDamageReceived int    `json:"effective_damage_received"`
	AppliedAdvantage        string `json:"applied_advantage"`
	BonusLifeDamage         int    `json:"bonus_life_damage"`
	Level                   int    `json:"level"`
}

// WinnerReport is present when exactly one side was brought to 0 hp.
type WinnerReport struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LevelBefore int    `json:"level_before"`
	LevelAfter  int    `json:"level_after"`
	HPBefore    int    `json:"hp_before"`
	HPAfter     int    `json:"hp_after"`
	Bonus       int    `json:"bonus"`
}

// BattleOutcome is returned by a successful resolution.
type BattleOutcome struct {
	BattleID   string          `json:"battle_id"`
	FoughtAt   time.Time       `json:"fought_at"`
	Challenger CombatantReport `json:"challenger"`
	Defender   CombatantReport `json:"defender"`
	Winner     *WinnerReport   `json:"winner,omitempty"`
}

// BattleSide is the inspected character's view of a past battle.
type BattleSide struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	WasChallenger  bool   `json:"was_challenger"`
	WonBattle      bool   `json:"won_battle"`
	DamageReceived int    `json:"damage_received"`
	DamageDealt    int    `json:"damage_dealt"`
	Roll           int    `json:"roll"`
}

// Opponent identifies the other side of a past battle.
type Opponent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Roll int    `json:"roll"`
}

// BattleSummary is the reconstructed last battle of a character.
type BattleSummary struct {
	BattleID  string     `json:"battle_id"`
	FoughtAt  time.Time  `json:"fought_at"`
	Character BattleSide `json:"character"`
	Opponent  Opponent   `json:"opponent"`
}
