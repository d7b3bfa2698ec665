package battle

import (
	"github.com/cubeof2/jenness-battle-simulator/internal/combatant"
)

// State tracks momentum and friction between turns.
type State struct {
	Momentum       combatant.Side
	RunActors      map[combatant.Combatant]struct{}
	RunLength      int
	FrictionStacks int
	FrictionActive bool
	RollingRuns    []int
	PassiveRuns    []int
}

func newState(start combatant.Side) State {
	return State{
		Momentum:  start,
		RunActors: map[combatant.Combatant]struct{}{},
	}
}

// nextFriction returns the friction applied to the coming turn, adding a
// stack when friction is active.
func (s *State) nextFriction() int {
	if !s.FrictionActive {
		return 0
	}
	s.FrictionStacks++
	return s.FrictionStacks
}

// record notes that actor took a turn. Friction switches on once everyone in
// the pre-turn living snapshot has acted during this run.
func record[T combatant.Combatant](s *State, actor T, snapshot []T) {
	s.RunActors[combatant.Combatant(actor)] = struct{}{}
	s.RunLength++
	if s.FrictionActive {
		return
	}
	for _, c := range snapshot {
		if _, ok := s.RunActors[combatant.Combatant(c)]; !ok {
			return
		}
	}
	s.FrictionActive = true
}

// flush closes the current run into the holder's run lengths and clears run state.
func (s *State) flush() {
	if s.RunLength > 0 {
		switch s.Momentum {
		case combatant.SideRolling:
			s.RollingRuns = append(s.RollingRuns, s.RunLength)
		case combatant.SidePassive:
			s.PassiveRuns = append(s.PassiveRuns, s.RunLength)
		}
	}
	s.RunLength = 0
	s.RunActors = map[combatant.Combatant]struct{}{}
	s.FrictionStacks = 0
	s.FrictionActive = false
}

// shift hands momentum to the other side.
func (s *State) shift() {
	s.flush()
	s.Momentum = s.Momentum.Opponent()
}
