package scenario

import (
	"errors"
	"fmt"

	"github.com/cubeof2/jenness-battle-simulator/internal/combatant"
	"github.com/cubeof2/jenness-battle-simulator/internal/targeting"
)

// File is the on-disk container for a set of scenarios.
type File struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario describes one matchup to simulate.
type Scenario struct {
	ID               string `yaml:"id" json:"id"`
	Description      string `yaml:"description,omitempty" json:"description,omitempty"`
	StartingMomentum string `yaml:"starting_momentum,omitempty" json:"starting_momentum,omitempty"`
	PCs              []PC   `yaml:"pcs" json:"pcs"`
	NPCs             []NPC  `yaml:"npcs" json:"npcs"`
	// Expect is an optional balance expression checked after a batch.
	Expect string `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// PC configures a player-side combatant. Missing stats take the defaults.
type PC struct {
	Name             string `yaml:"name" json:"name"`
	HP               *int   `yaml:"hp,omitempty" json:"hp,omitempty"`
	Aptitude         *int   `yaml:"aptitude,omitempty" json:"aptitude,omitempty"`
	ExpertiseAttack  bool   `yaml:"expertise_attack,omitempty" json:"expertise_attack,omitempty"`
	ExpertiseDefense bool   `yaml:"expertise_defense,omitempty" json:"expertise_defense,omitempty"`
	Targeting        string `yaml:"targeting,omitempty" json:"targeting,omitempty"`
}

// NPC configures an enemy-side combatant. HP and DT are required.
type NPC struct {
	Name             string `yaml:"name" json:"name"`
	HP               *int   `yaml:"hp" json:"hp"`
	DT               *int   `yaml:"dt" json:"dt"`
	ExpertiseAttack  bool   `yaml:"expertise_attack,omitempty" json:"expertise_attack,omitempty"`
	ExpertiseDefense bool   `yaml:"expertise_defense,omitempty" json:"expertise_defense,omitempty"`
	Targeting        string `yaml:"targeting,omitempty" json:"targeting,omitempty"`
}

// Rosters are freshly built combatants for a single battle.
type Rosters struct {
	Rolling []*combatant.Rolling
	Passive []*combatant.Passive
	Start   combatant.Side
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Int returns a pointer to v, for building scenarios in code.
func Int(v int) *int {
	return &v
}

// Validate checks the scenario and returns every problem found, joined.
func (s Scenario) Validate() error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Scenario: s.ID, Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if s.ID == "" {
		fail("id", "missing field 'id'")
	}
	if s.StartingMomentum != "" {
		if _, err := combatant.ParseSide(s.StartingMomentum); err != nil {
			fail("starting_momentum", "%v", err)
		}
	}
	if len(s.PCs) == 0 {
		fail("pcs", "Scenario must have at least one PC.")
	}
	if len(s.NPCs) == 0 {
		fail("npcs", "Scenario must have at least one NPC.")
	}

	for i, pc := range s.PCs {
		field := fmt.Sprintf("pcs[%d]", i)
		if pc.Name == "" {
			fail(field, "missing field 'name'")
		}
		if pc.HP != nil && *pc.HP <= 0 {
			fail(field, "PC %q must have HP > 0", pc.Name)
		}
		if _, err := targeting.Parse(pc.Targeting); err != nil {
			fail(field, "%v", err)
		}
	}

	for i, npc := range s.NPCs {
		field := fmt.Sprintf("npcs[%d]", i)
		if npc.Name == "" {
			fail(field, "missing field 'name'")
		}
		switch {
		case npc.HP == nil:
			fail(field, "NPC %q missing field 'hp'", npc.Name)
		case *npc.HP <= 0:
			fail(field, "NPC %q must have HP > 0", npc.Name)
		}
		switch {
		case npc.DT == nil:
			fail(field, "NPC %q missing field 'dt'", npc.Name)
		case *npc.DT < 0:
			fail(field, "NPC %q must have DT >= 0", npc.Name)
		}
		if _, err := targeting.Parse(npc.Targeting); err != nil {
			fail(field, "%v", err)
		}
	}

	return errors.Join(errs...)
}

// Build validates the scenario and creates new combatants for one battle.
func (s Scenario) Build() (Rosters, error) {
	if err := s.Validate(); err != nil {
		return Rosters{}, err
	}

	start := combatant.SideRolling
	if s.StartingMomentum != "" {
		start, _ = combatant.ParseSide(s.StartingMomentum)
	}

	r := Rosters{
		Rolling: make([]*combatant.Rolling, 0, len(s.PCs)),
		Passive: make([]*combatant.Passive, 0, len(s.NPCs)),
		Start:   start,
	}
	for _, pc := range s.PCs {
		strategy, _ := targeting.Parse(pc.Targeting)
		r.Rolling = append(r.Rolling, combatant.NewRolling(combatant.Stats{
			Name:             pc.Name,
			HP:               intOr(pc.HP, combatant.DefaultPCHP),
			ExpertiseAttack:  pc.ExpertiseAttack,
			ExpertiseDefense: pc.ExpertiseDefense,
			Strategy:         strategy,
		}, intOr(pc.Aptitude, combatant.DefaultAptitude)))
	}
	for _, npc := range s.NPCs {
		strategy, _ := targeting.Parse(npc.Targeting)
		r.Passive = append(r.Passive, combatant.NewPassive(combatant.Stats{
			Name:             npc.Name,
			HP:               *npc.HP,
			ExpertiseAttack:  npc.ExpertiseAttack,
			ExpertiseDefense: npc.ExpertiseDefense,
			Strategy:         strategy,
		}, *npc.DT))
	}
	return r, nil
}

// Offset is the mean NPC threshold minus the mean PC aptitude.
func (s Scenario) Offset() float64 {
	apt := float64(combatant.DefaultAptitude)
	if len(s.PCs) > 0 {
		total := 0
		for _, pc := range s.PCs {
			total += intOr(pc.Aptitude, combatant.DefaultAptitude)
		}
		apt = float64(total) / float64(len(s.PCs))
	}
	dt := float64(combatant.DefaultDT)
	if len(s.NPCs) > 0 {
		total := 0
		for _, npc := range s.NPCs {
			total += intOr(npc.DT, combatant.DefaultDT)
		}
		dt = float64(total) / float64(len(s.NPCs))
	}
	return dt - apt
}

// Ratio is the number of NPCs per PC.
func (s Scenario) Ratio() float64 {
	if len(s.PCs) == 0 {
		return 0
	}
	return float64(len(s.NPCs)) / float64(len(s.PCs))
}

// Find returns the scenario with the given id.
func (f *File) Find(id string) (Scenario, error) {
	for _, s := range f.Scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("scenario %q not found", id)
}

// Validate checks every scenario in the file.
func (f *File) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for _, s := range f.Scenarios {
		if seen[s.ID] && s.ID != "" {
			errs = append(errs, &ConfigError{Scenario: s.ID, Field: "id", Reason: "duplicate scenario id"})
		}
		seen[s.ID] = true
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
