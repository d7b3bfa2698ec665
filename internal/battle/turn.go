package battle

import (
	"github.com/rs/zerolog"

	"github.com/cubeof2/jenness-battle-simulator/internal/combatant"
	"github.com/cubeof2/jenness-battle-simulator/internal/dice"
)

// Turn records what happened during one turn.
type Turn struct {
	Number   int            `json:"turn"`
	Side     combatant.Side `json:"side"`
	Actor    string         `json:"actor"`
	Target   string         `json:"target"`
	Friction int            `json:"friction"`
	Roll     dice.Roll      `json:"roll"`
	// Damage is always dealt to Target.
	Damage  int  `json:"damage"`
	Shifted bool `json:"shifted"`
}

// MarshalZerologObject writes the turn as log fields.
func (t Turn) MarshalZerologObject(e *zerolog.Event) {
	e.Int("turn", t.Number).
		Stringer("side", t.Side).
		Str("actor", t.Actor).
		Str("target", t.Target).
		Int("friction", t.Friction).
		Int("d20", t.Roll.Natural).
		Int("boon", t.Roll.Boon).
		Int("bane", t.Roll.Bane).
		Int("total", t.Roll.Total).
		Int("dt", t.Roll.DT).
		Stringer("outcome", t.Roll.Outcome).
		Int("damage", t.Damage).
		Bool("shifted", t.Shifted)
}
