package combatant

import (
	"github.com/cubeof2/jenness-battle-simulator/internal/dice"
)

// Rolling is a player-side combatant. It makes every roll, attacking on its
// own side's turns and defending on the enemy's.
type Rolling struct {
	base
	aptitude int
}

// NewRolling builds a player-side combatant.
func NewRolling(s Stats, aptitude int) *Rolling {
	return &Rolling{base: newBase(s), aptitude: aptitude}
}

// Aptitude is the flat bonus added to every roll.
func (r *Rolling) Aptitude() int { return r.aptitude }

// Attack rolls against the target's threshold. Friction adds banes and a
// defensive expert adds one more. Damage is not applied here.
func (r *Rolling) Attack(src dice.Source, target *Passive, friction int) (int, dice.Roll) {
	banes := friction
	if target.ExpertiseDefense() {
		banes++
	}
	check := dice.NewCheck(r.aptitude, target.DT())
	check.Expertise = r.ExpertiseAttack()
	check.Banes = banes
	res := dice.ResolveRoll(src, check)
	return AttackDamage(res.Outcome), res
}

// Defend rolls against an attacking enemy's threshold. Friction adds boons
// and an attacking expert adds a bane. The caller applies DefenseDamage.
func (r *Rolling) Defend(src dice.Source, attacker *Passive, friction int) dice.Roll {
	check := dice.NewCheck(r.aptitude, attacker.DT())
	check.Expertise = r.ExpertiseDefense()
	check.Boons += friction
	if attacker.ExpertiseAttack() {
		check.Banes = 1
	}
	return dice.ResolveRoll(src, check)
}

// AttackDamage is the damage an attack deals to its target.
func AttackDamage(o dice.Outcome) int {
	switch o {
	case dice.Triumph:
		return 2
	case dice.CleanSuccess:
		return 1
	default:
		return 0
	}
}

// DefenseDamage is the damage a defender takes from its own roll.
func DefenseDamage(o dice.Outcome) int {
	switch o {
	case dice.Catastrophe:
		return 2
	case dice.Failure, dice.Setback:
		return 1
	default:
		return 0
	}
}

// Passive is an enemy-side combatant. It never rolls; its threshold is what
// player-side rolls are graded against.
type Passive struct {
	base
	dt int
}

// NewPassive builds an enemy-side combatant.
func NewPassive(s Stats, dt int) *Passive {
	return &Passive{base: newBase(s), dt: dt}
}

// DT is the difficulty threshold.
func (p *Passive) DT() int { return p.dt }

// Threshold exposes DT to targeting strategies.
func (p *Passive) Threshold() int { return p.dt }
