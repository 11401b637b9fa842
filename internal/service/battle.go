package service

import (
	"context"
	"errors"

	"github.com/ericogr/arena-battles/internal/constants"
	"github.com/ericogr/arena-battles/internal/engine"
	"github.com/ericogr/arena-battles/internal/game"
	"github.com/ericogr/arena-battles/internal/logging"
	"github.com/ericogr/arena-battles/internal/storage"
)

// CharacterLookup resolves a character by id. Missing characters are
// reported as storage.ErrNotFound.
type CharacterLookup interface {
	GetCharacterByID(ctx context.Context, id string) (*game.Character, error)
}

// BattleStore is everything a resolution reads and writes.
type BattleStore interface {
	CharacterLookup
	UpdateCharacterHP(ctx context.Context, id string, hp int) error
	UpdateCharacterLevelAndHP(ctx context.Context, id string, level, hp int) error
	InsertBattle(ctx context.Context, challengerID, defenderID string, challengerRoll, defenderRoll int) (*game.Battle, error)
}

// Transactor is implemented by stores able to run the battle writes
// atomically.
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx storage.Repository) error) error
}

type ResolverOption func(*Resolver)

// WithTransactions toggles running the writes inside one transaction when
// the store supports it. Enabled by default.
func WithTransactions(enabled bool) ResolverOption {
	return func(r *Resolver) { r.transactional = enabled }
}

// Resolver runs a battle between two characters and persists the result.
type Resolver struct {
	store         BattleStore
	dice          engine.Dice
	transactional bool
}

func NewResolver(store BattleStore, dice engine.Dice, opts ...ResolverOption) *Resolver {
	r := &Resolver{store: store, dice: dice, transactional: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// battlePlan is the fully computed outcome, built before any write.
type battlePlan struct {
	challenger, defender     game.Character
	challengerRoll           int
	defenderRoll             int
	toChallenger, toDefender engine.ExchangeResult
	challengerHP, defenderHP int
	winner                   *game.WinnerReport
}

// Resolve validates the pairing, computes both exchanges and persists the
// new hp values, the winner reward and the history record.
func (r *Resolver) Resolve(ctx context.Context, challengerID, defenderID, actingUserID string) (*game.BattleOutcome, error) {
	challenger, err := r.lookup(ctx, challengerID, CodeChallengerNotFound, "challenger character not found")
	if err != nil {
		return nil, err
	}
	defender, err := r.lookup(ctx, defenderID, CodeDefenderNotFound, "defender character not found")
	if err != nil {
		return nil, err
	}
	if challenger.UserID != actingUserID {
		return nil, newError(KindUnauthorized, CodeUnauthorizedChallenger, "challenger does not belong to the authenticated user")
	}
	if !challenger.IsOnline {
		return nil, newError(KindPreconditionFailed, CodeChallengerOffline, "challenger is offline")
	}
	if !defender.IsOnline {
		return nil, newError(KindPreconditionFailed, CodeDefenderOffline, "defender is offline")
	}
	if defender.HP < 1 {
		return nil, newError(KindPreconditionFailed, CodeDefenderLowHP, "defender has no hp left")
	}
	if challenger.ID == defender.ID {
		return nil, newError(KindPreconditionFailed, CodeSameCharacter, "a character cannot battle itself")
	}

	p, err := r.plan(*challenger, *defender)
	if err != nil {
		return nil, err
	}

	var record *game.Battle
	if tr, ok := r.store.(Transactor); ok && r.transactional {
		err = tr.Transaction(ctx, func(tx storage.Repository) error {
			var werr error
			record, werr = persist(ctx, tx, p, false)
			return werr
		})
		if err != nil {
			if _, ok := AsError(err); !ok {
				err = persistenceError(CodeTransactionFailed, "failed to commit battle", err)
			}
		}
	} else {
		record, err = persist(ctx, r.store, p, true)
	}
	if err != nil {
		logging.Error("battle not persisted", err, logging.Fields{
			constants.LogFieldChallengerID: challengerID,
			constants.LogFieldDefenderID:   defenderID,
			constants.LogFieldCode:         CodeOf(err),
		})
		return nil, err
	}

	out := p.outcome(record)
	fields := logging.Fields{
		constants.LogFieldBattleID:     record.ID,
		constants.LogFieldChallengerID: challengerID,
		constants.LogFieldDefenderID:   defenderID,
	}
	if out.Winner != nil {
		fields[constants.LogFieldWinnerID] = out.Winner.ID
	}
	logging.Info("battle resolved", fields)
	return out, nil
}

func (r *Resolver) lookup(ctx context.Context, id, code, msg string) (*game.Character, error) {
	c, err := r.store.GetCharacterByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(KindNotFound, code, msg)
		}
		return nil, persistenceError(CodeLookupFailed, "failed to load character", err)
	}
	if c == nil {
		return nil, newError(KindNotFound, code, msg)
	}
	return c, nil
}

func (r *Resolver) plan(challenger, defender game.Character) (*battlePlan, error) {
	p := &battlePlan{
		challenger:     challenger,
		defender:       defender,
		challengerRoll: r.dice.Roll(),
		defenderRoll:   r.dice.Roll(),
	}

	var err error
	p.toDefender, err = engine.ComputeDamage(engine.Exchange{
		AttackerRoll:   p.challengerRoll,
		DefenderShield: defender.Shield,
		ShieldFactor:   r.dice.ShieldFactor(),
		Advantage:      engine.AdvantageOf(challenger.Race, defender.Race),
	})
	if err != nil {
		return nil, &Error{Kind: KindComputationInvalid, Code: CodeComputationInvalid, Message: "damage to defender is invalid", Details: err.Error(), Err: err}
	}
	p.toChallenger, err = engine.ComputeDamage(engine.Exchange{
		AttackerRoll:   p.defenderRoll,
		DefenderShield: challenger.Shield,
		ShieldFactor:   r.dice.ShieldFactor(),
		Advantage:      engine.AdvantageOf(defender.Race, challenger.Race),
	})
	if err != nil {
		return nil, &Error{Kind: KindComputationInvalid, Code: CodeComputationInvalid, Message: "damage to challenger is invalid", Details: err.Error(), Err: err}
	}

	p.challengerHP = engine.ApplyDamage(challenger.HP, p.toChallenger.EffectiveDamage)
	p.defenderHP = engine.ApplyDamage(defender.HP, p.toDefender.EffectiveDamage)

	// Exactly one side at 0 decides the winner; a double knockout has none.
	var winner *game.Character
	var winnerHP int
	switch {
	case p.defenderHP == 0 && p.challengerHP > 0:
		winner, winnerHP = &p.challenger, p.challengerHP
	case p.challengerHP == 0 && p.defenderHP > 0:
		winner, winnerHP = &p.defender, p.defenderHP
	}
	if winner != nil {
		bonus := r.dice.RewardBonus()
		p.winner = &game.WinnerReport{
			ID:          winner.ID,
			Name:        winner.Name,
			LevelBefore: winner.Level,
			LevelAfter:  winner.Level + 1,
			HPBefore:    winnerHP,
			HPAfter:     winnerHP + bonus,
			Bonus:       bonus,
		}
	}
	return p, nil
}

// persist applies the plan. compensate restores the challenger hp when
// the defender write fails; inside a transaction the rollback covers it.
func persist(ctx context.Context, store BattleStore, p *battlePlan, compensate bool) (*game.Battle, error) {
	if err := store.UpdateCharacterHP(ctx, p.challenger.ID, p.challengerHP); err != nil {
		return nil, persistenceError(CodeHPUpdateFailed, "failed to update challenger hp", err)
	}
	if err := store.UpdateCharacterHP(ctx, p.defender.ID, p.defenderHP); err != nil {
		if compensate {
			revertCtx := context.WithoutCancel(ctx)
			if rerr := store.UpdateCharacterHP(revertCtx, p.challenger.ID, p.challenger.HP); rerr != nil {
				logging.Error("failed to revert challenger hp", rerr, logging.Fields{
					constants.LogFieldCharacterID: p.challenger.ID,
				})
			}
		}
		return nil, persistenceError(CodeHPUpdateFailed, "failed to update defender hp", err)
	}
	if w := p.winner; w != nil {
		if err := store.UpdateCharacterLevelAndHP(ctx, w.ID, w.LevelAfter, w.HPAfter); err != nil {
			return nil, persistenceError(CodeRewardUpdateFailed, "failed to reward winner", err)
		}
	}
	record, err := store.InsertBattle(ctx, p.challenger.ID, p.defender.ID, p.challengerRoll, p.defenderRoll)
	if err != nil {
		return nil, persistenceError(CodeHistoryWriteFailed, "failed to record battle", err)
	}
	return record, nil
}

// outcome reports hp after damage on both sides; the reward is only
// visible in the winner block.
func (p *battlePlan) outcome(record *game.Battle) *game.BattleOutcome {
	return &game.BattleOutcome{
		BattleID:   record.ID,
		FoughtAt:   record.FoughtAt,
		Challenger: report(p.challenger, p.challengerRoll, p.challengerHP, p.toChallenger, p.toDefender),
		Defender:   report(p.defender, p.defenderRoll, p.defenderHP, p.toDefender, p.toChallenger),
		Winner:     p.winner,
	}
}

// report describes one side: received is what hit it, dealt is its own
// attack on the opponent.
func report(c game.Character, roll, hpAfter int, received, dealt engine.ExchangeResult) game.CombatantReport {
	return game.CombatantReport{
		ID:                      c.ID,
		Name:                    c.Name,
		Race:                    c.Race,
		HPBefore:                c.HP,
		HPAfter:                 hpAfter,
		Roll:                    roll,
		RawDamageReceived:       received.RawDamage,
		DamageToShield:          received.DamageToShield,
		Shield:                  c.Shield,
		EffectiveShield:         received.EffectiveShield,
		EffectiveDamageReceived: received.EffectiveDamage,
		AppliedAdvantage:        string(dealt.Advantage),
		BonusLifeDamage:         dealt.BonusLifeDamage,
		Level:                   c.Level,
	}
}
