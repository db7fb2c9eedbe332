package engine

import (
	"errors"
	"math"
	"math/rand"
	"strconv"

	"github.com/scribble-arena/server/internal/game"
)

// Rand is the randomness source for chance-based combat effects.
// *math/rand.Rand satisfies it; tests substitute fixed sequences.
type Rand interface {
	Float64() float64
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }

// SystemRand returns a goroutine-safe source backed by the package-global
// generator. Production callers use this; tests inject their own.
func SystemRand() Rand { return systemRand{} }

// ErrInvalidAction is returned when an action outside the playable set is
// submitted for resolution.
var ErrInvalidAction = errors.New("invalid action")

// Combat tuning. Hit and charge curves are monotonic in speed.
const (
	critChance     = 0.10
	critMultiplier = 2

	kickMissBase     = 0.50
	kickMissPerSpeed = 0.10
	kickMissFloor    = 0.05

	chargeBase     = 0.50
	chargePerSpeed = 0.10
	chargeCap      = 0.90

	blockFactor     = 0.5
	blockPerDefense = 2
)

// RoundWinner identifies which side dealt strictly more damage this round.
type RoundWinner string

const (
	WinnerNone    RoundWinner = ""
	WinnerPlayer1 RoundWinner = "player1"
	WinnerPlayer2 RoundWinner = "player2"
)

// Effect is a per-combatant round result marker. EffectCharged and
// EffectChargeReleased change persisted state; the rest annotate the log.
type Effect string

const (
	EffectCritical       Effect = "critical_hit"
	EffectMissed         Effect = "missed"
	EffectCharged        Effect = "charged"
	EffectChargeReleased Effect = "charge_released"
)

// Outcome is the full result of resolving one simultaneous action pair.
type Outcome struct {
	DamageTo1  int
	DamageTo2  int
	EffectsOn1 []Effect
	EffectsOn2 []Effect
	Log        []string
	Winner     RoundWinner
}

// strike is one side's attack attempt before the opponent's stance is applied.
type strike struct {
	damage  int
	landed  bool
	effects []Effect
	log     []string
}

// ResolveRound computes the outcome of one round from both sides' pre-round
// state. It is pure: combatants are read, never mutated, and all chance is
// drawn from rng (side 1's rolls are always drawn before side 2's, so a
// fixed seed yields a fixed outcome).
func ResolveRound(c1, c2 *game.Combatant, a1, a2 game.Action, rng Rand) (*Outcome, error) {
	if !a1.Valid() || !a2.Valid() {
		return nil, ErrInvalidAction
	}

	s1 := rollStrike(c1, a1, rng)
	s2 := rollStrike(c2, a2, rng)

	out := &Outcome{
		EffectsOn1: s1.effects,
		EffectsOn2: s2.effects,
	}
	out.Log = append(out.Log, s1.log...)
	out.Log = append(out.Log, s2.log...)

	out.DamageTo2 = applyStance(s1, c2, a2)
	out.DamageTo1 = applyStance(s2, c1, a1)

	if s1.landed {
		out.Log = append(out.Log, c2.WalletAddress+" takes "+strconv.Itoa(out.DamageTo2)+" damage"+stanceTag(a2))
	}
	if s2.landed {
		out.Log = append(out.Log, c1.WalletAddress+" takes "+strconv.Itoa(out.DamageTo1)+" damage"+stanceTag(a1))
	}

	switch {
	case out.DamageTo2 > out.DamageTo1:
		out.Winner = WinnerPlayer1
	case out.DamageTo1 > out.DamageTo2:
		out.Winner = WinnerPlayer2
	}
	return out, nil
}

// rollStrike evaluates one side's action in isolation: base damage, crit and
// miss rolls, charge gain and charge release.
func rollStrike(c *game.Combatant, a game.Action, rng Rand) strike {
	name := c.WalletAddress
	attrs := c.Attributes
	var st strike

	switch a {
	case game.ActionPunch:
		st.damage = attrs.Attack
		st.landed = true
		if rng.Float64() < critChance {
			st.damage *= critMultiplier
			st.effects = append(st.effects, EffectCritical)
			st.log = append(st.log, name+" lands a critical punch!")
		} else {
			st.log = append(st.log, name+" throws a punch")
		}
	case game.ActionKick:
		miss := kickMissBase - kickMissPerSpeed*float64(attrs.Speed)
		if miss < kickMissFloor {
			miss = kickMissFloor
		}
		if rng.Float64() < miss {
			st.effects = append(st.effects, EffectMissed)
			st.log = append(st.log, name+"'s kick misses")
		} else {
			st.damage = attrs.Attack * 2
			st.landed = true
			st.log = append(st.log, name+" lands a heavy kick")
		}
	case game.ActionBlock:
		st.log = append(st.log, name+" braces behind a block")
	case game.ActionCharge:
		chance := chargeBase + chargePerSpeed*float64(attrs.Speed)
		if chance > chargeCap {
			chance = chargeCap
		}
		if rng.Float64() < chance {
			st.effects = append(st.effects, EffectCharged)
			st.log = append(st.log, name+" charges up: the next landed attack deals double damage")
		} else {
			st.log = append(st.log, name+"'s charge fizzles out")
		}
	}

	if c.Charged && st.landed {
		st.damage *= 2
		st.effects = append(st.effects, EffectChargeReleased)
		st.log = append(st.log, name+" releases stored charge")
	}
	return st
}

// applyStance folds the defender's action into a landed strike. A block
// halves the damage and defense shaves off more; landed hits never drop
// below 1.
func applyStance(st strike, defender *game.Combatant, defenderAction game.Action) int {
	if !st.landed {
		return 0
	}
	dmg := st.damage
	if defenderAction == game.ActionBlock {
		dmg = int(math.Floor(float64(dmg)*blockFactor)) - blockPerDefense*defender.Attributes.Defense
	}
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

func stanceTag(a game.Action) string {
	if a == game.ActionBlock {
		return " (blocked)"
	}
	return ""
}
