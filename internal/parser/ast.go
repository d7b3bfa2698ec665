package parser

import "strings"

// Matchup is a one-line description of two groups facing each other,
// e.g. "5 pcs apt 6 atk vs 3 npcs hp 1 dt 14 start npcs".
type Matchup struct {
	PCs   *Group `parser:"@@"`
	NPCs  *Group `parser:"\"vs\" @@"`
	Start string `parser:"( \"start\" @(\"pcs\"|\"npcs\") )?"`
}

// Group is a count of identical combatants and their shared attributes.
type Group struct {
	Count int     `parser:"@Int"`
	Kind  string  `parser:"@(\"pcs\"|\"pc\"|\"npcs\"|\"npc\")"`
	Attrs []*Attr `parser:"@@*"`
}

// Attr is a single stat, expertise flag or targeting choice.
type Attr struct {
	Stat   *Stat  `parser:"  @@"`
	Flag   string `parser:"| @(\"atk\"|\"def\")"`
	Target string `parser:"| \"target\" @(\"lowest_dt\"|\"random\")"`
}

// Stat assigns a numeric value, e.g. "dt 14".
type Stat struct {
	Name  string `parser:"@(\"apt\"|\"hp\"|\"dt\")"`
	Value int    `parser:"@Int"`
}

// IsPC reports whether the group is on the player side.
func (g *Group) IsPC() bool {
	kind := strings.ToLower(g.Kind)
	return kind == "pc" || kind == "pcs"
}
