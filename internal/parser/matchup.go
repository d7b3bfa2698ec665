package parser

import (
	"fmt"
	"strings"

	"github.com/cubeof2/jenness-battle-simulator/internal/scenario"
)

// Parse reads a matchup line.
func Parse(input string) (*Matchup, error) {
	m, err := Build().ParseString("", input)
	if err != nil {
		return nil, MapError(input, err)
	}
	return m, nil
}

// Scenario expands the matchup into numbered combatants. Unset PC stats
// keep their defaults; NPC hp and dt must be given.
func (m *Matchup) Scenario(id string) (scenario.Scenario, error) {
	if !m.PCs.IsPC() || m.NPCs.IsPC() {
		return scenario.Scenario{}, fmt.Errorf("matchup must list pcs first and npcs second")
	}
	if m.PCs.Count <= 0 || m.NPCs.Count <= 0 {
		return scenario.Scenario{}, fmt.Errorf("group sizes must be positive")
	}

	s := scenario.Scenario{
		ID:               id,
		Description:      fmt.Sprintf("%d PC(s) vs %d NPC(s)", m.PCs.Count, m.NPCs.Count),
		StartingMomentum: strings.ToLower(m.Start),
	}

	pc := scenario.PC{}
	for _, a := range m.PCs.Attrs {
		switch {
		case a.Stat != nil:
			switch strings.ToLower(a.Stat.Name) {
			case "apt":
				pc.Aptitude = scenario.Int(a.Stat.Value)
			case "hp":
				pc.HP = scenario.Int(a.Stat.Value)
			default:
				return scenario.Scenario{}, fmt.Errorf("pcs have no %q stat", a.Stat.Name)
			}
		case a.Flag != "":
			setFlag(a.Flag, &pc.ExpertiseAttack, &pc.ExpertiseDefense)
		case a.Target != "":
			pc.Targeting = strings.ToLower(a.Target)
		}
	}

	npc := scenario.NPC{}
	for _, a := range m.NPCs.Attrs {
		switch {
		case a.Stat != nil:
			switch strings.ToLower(a.Stat.Name) {
			case "hp":
				npc.HP = scenario.Int(a.Stat.Value)
			case "dt":
				npc.DT = scenario.Int(a.Stat.Value)
			default:
				return scenario.Scenario{}, fmt.Errorf("npcs have no %q stat", a.Stat.Name)
			}
		case a.Flag != "":
			setFlag(a.Flag, &npc.ExpertiseAttack, &npc.ExpertiseDefense)
		case a.Target != "":
			npc.Targeting = strings.ToLower(a.Target)
		}
	}

	for i := range m.PCs.Count {
		p := pc
		p.Name = fmt.Sprintf("PC %d", i+1)
		p.HP, p.Aptitude = clone(pc.HP), clone(pc.Aptitude)
		s.PCs = append(s.PCs, p)
	}
	for i := range m.NPCs.Count {
		n := npc
		n.Name = fmt.Sprintf("NPC %d", i+1)
		n.HP, n.DT = clone(npc.HP), clone(npc.DT)
		s.NPCs = append(s.NPCs, n)
	}
	return s, s.Validate()
}

func setFlag(flag string, attack, defense *bool) {
	if strings.EqualFold(flag, "atk") {
		*attack = true
	} else {
		*defense = true
	}
}

func clone(v *int) *int {
	if v == nil {
		return nil
	}
	return scenario.Int(*v)
}
