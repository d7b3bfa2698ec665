package scenario

import (
	"fmt"

	"github.com/cubeof2/jenness-battle-simulator/internal/combatant"
)

// Grid sweeps group sizes against threshold offsets for balance benchmarks.
type Grid struct {
	PCCounts  []int
	NPCCounts []int
	Offsets   []int
	Aptitude  int
	PCHP      int
	// GroupHP is used when more than one NPC is fielded, SoloHP otherwise.
	GroupHP int
	SoloHP  int
}

// DefaultGrid is the standard benchmark sweep.
func DefaultGrid() Grid {
	return Grid{
		PCCounts:  []int{1, 5},
		NPCCounts: []int{1, 2, 3, 5, 10, 15},
		Offsets:   []int{5, 7, 9, 10, 11, 13, 15, 17, 20},
		Aptitude:  combatant.DefaultAptitude,
		PCHP:      combatant.DefaultPCHP,
		GroupHP:   1,
		SoloHP:    10,
	}
}

// Scenarios expands the grid, ordered by PC count, NPC count, then offset.
func (g Grid) Scenarios() []Scenario {
	out := make([]Scenario, 0, len(g.PCCounts)*len(g.NPCCounts)*len(g.Offsets))
	for _, pcCount := range g.PCCounts {
		for _, npcCount := range g.NPCCounts {
			for _, offset := range g.Offsets {
				dt := g.Aptitude + offset
				npcHP := g.SoloHP
				if npcCount > 1 {
					npcHP = g.GroupHP
				}

				s := Scenario{
					ID: fmt.Sprintf("%dv%d_off%d", pcCount, npcCount, offset),
					Description: fmt.Sprintf("Grid Analysis: %d PC(s) (Apt %d) vs %d NPC(s) (DT %d). Offset: +%d",
						pcCount, g.Aptitude, npcCount, dt, offset),
					StartingMomentum: combatant.SideRolling.String(),
				}
				for i := range pcCount {
					s.PCs = append(s.PCs, PC{Name: fmt.Sprintf("PC %d", i+1), HP: Int(g.PCHP), Aptitude: Int(g.Aptitude)})
				}
				for i := range npcCount {
					s.NPCs = append(s.NPCs, NPC{Name: fmt.Sprintf("NPC %d", i+1), HP: Int(npcHP), DT: Int(dt)})
				}
				out = append(out, s)
			}
		}
	}
	return out
}
