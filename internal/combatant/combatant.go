package combatant

import (
	"fmt"

	"github.com/cubeof2/jenness-battle-simulator/internal/targeting"
)

// Defaults applied when a scenario leaves a stat out.
const (
	DefaultAptitude = 5
	DefaultPCHP     = 4
	DefaultDT       = 12
)

// Side identifies which roster holds momentum or won a battle.
type Side int

const (
	SideNone Side = iota
	SideRolling
	SidePassive
)

// String returns the scenario-file name of the side.
func (s Side) String() string {
	switch s {
	case SideRolling:
		return "pcs"
	case SidePassive:
		return "npcs"
	default:
		return "none"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case SideRolling:
		return SidePassive
	case SidePassive:
		return SideRolling
	default:
		return SideNone
	}
}

// ParseSide reads "pcs" or "npcs".
func ParseSide(name string) (Side, error) {
	switch name {
	case "pcs":
		return SideRolling, nil
	case "npcs":
		return SidePassive, nil
	}
	return SideNone, fmt.Errorf("invalid side %q, expected pcs or npcs", name)
}

// Combatant is the state shared by both roles.
type Combatant interface {
	Name() string
	HP() int
	MaxHP() int
	Alive() bool
	TakeDamage(n int)
	ExpertiseAttack() bool
	ExpertiseDefense() bool
	Strategy() targeting.Strategy
}

// Stats holds the fields common to every combatant.
type Stats struct {
	Name             string
	HP               int
	ExpertiseAttack  bool
	ExpertiseDefense bool
	Strategy         targeting.Strategy
}

type base struct {
	name     string
	hp       int
	maxHP    int
	expAtk   bool
	expDef   bool
	strategy targeting.Strategy
}

func newBase(s Stats) base {
	strategy := s.Strategy
	if strategy == "" {
		strategy = targeting.Default
	}
	return base{
		name:     s.Name,
		hp:       s.HP,
		maxHP:    s.HP,
		expAtk:   s.ExpertiseAttack,
		expDef:   s.ExpertiseDefense,
		strategy: strategy,
	}
}

func (b *base) Name() string                 { return b.name }
func (b *base) HP() int                      { return b.hp }
func (b *base) MaxHP() int                   { return b.maxHP }
func (b *base) Alive() bool                  { return b.hp > 0 }
func (b *base) ExpertiseAttack() bool        { return b.expAtk }
func (b *base) ExpertiseDefense() bool       { return b.expDef }
func (b *base) Strategy() targeting.Strategy { return b.strategy }

// TakeDamage lowers hp, never below zero.
func (b *base) TakeDamage(n int) {
	b.hp = max(0, b.hp-n)
}

// Living filters a roster down to its living members, keeping roster order.
func Living[T Combatant](roster []T) []T {
	out := make([]T, 0, len(roster))
	for _, c := range roster {
		if c.Alive() {
			out = append(out, c)
		}
	}
	return out
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
