package parser

import (
	"fmt"
	"strings"
)

// Usage is the matchup grammar in one line.
const Usage = "<n> pcs [apt N] [hp N] [atk] [def] [target lowest_dt|random] vs <m> npcs hp N dt N [atk] [def] [target lowest_dt|random] [start pcs|npcs]"

// MapError takes a raw input and a participle error, and returns a human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("empty matchup, expected: %s", Usage)
	}

	lower := strings.ToLower(input)
	switch {
	case !strings.Contains(lower, " vs "):
		return fmt.Errorf("a matchup needs two groups separated by 'vs': %s", Usage)
	case !strings.Contains(lower, "npc"):
		return fmt.Errorf("the second group must be npcs: %s", Usage)
	}

	return fmt.Errorf("could not understand matchup (%v), expected: %s", err, Usage)
}
