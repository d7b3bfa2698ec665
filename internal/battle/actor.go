package battle

import (
	"errors"

	"github.com/cubeof2/jenness-battle-simulator/internal/combatant"
)

// ErrNoLivingActor is the panic value when a side with nobody alive is asked
// to act. The loop checks for a winner first, so this signals a broken caller.
var ErrNoLivingActor = errors.New("no living combatant can act")

// SelectActor picks who acts next for the side holding momentum.
// Members that have not acted in the current run go first; among those the
// first attack expert in roster order wins, otherwise the first in order.
func SelectActor[T combatant.Combatant](roster []T, acted map[combatant.Combatant]struct{}) T {
	living := combatant.Living(roster)
	if len(living) == 0 {
		panic(ErrNoLivingActor)
	}

	candidates := make([]T, 0, len(living))
	for _, c := range living {
		if _, ok := acted[combatant.Combatant(c)]; !ok {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = living
	}

	for _, c := range candidates {
		if c.ExpertiseAttack() {
			return c
		}
	}
	return candidates[0]
}
