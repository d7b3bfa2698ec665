package targeting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cubeof2/jenness-battle-simulator/internal/dice"
)

// ErrUnknownStrategy is returned when a strategy name is not registered.
var ErrUnknownStrategy = errors.New("unknown targeting strategy")

// Strategy names a rule for choosing an enemy.
type Strategy string

const (
	// LowestThreshold picks the enemy with the lowest difficulty threshold.
	LowestThreshold Strategy = "lowest_dt"
	// Random picks uniformly among living enemies.
	Random Strategy = "random"
)

// Default applies to combatants configured without a strategy.
const Default = Random

// Target is anything a strategy can choose.
type Target interface {
	Alive() bool
}

// Thresholder is a target exposing a difficulty threshold.
type Thresholder interface {
	Threshold() int
}

// Strategies lists every registered strategy.
func Strategies() []Strategy {
	return []Strategy{LowestThreshold, Random}
}

// Parse resolves a configured name. An empty name yields Default.
func Parse(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default, nil
	}
	for _, s := range Strategies() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Select applies the strategy to the living enemies. It reports false when
// there is nobody to target.
func Select[T Target](s Strategy, src dice.Source, enemies []T) (T, bool) {
	var zero T
	living := make([]T, 0, len(enemies))
	for _, e := range enemies {
		if e.Alive() {
			living = append(living, e)
		}
	}
	if len(living) == 0 {
		return zero, false
	}

	if s == LowestThreshold {
		if t, ok := lowestThreshold(living); ok {
			return t, true
		}
	}
	return living[src.IntN(len(living))], true
}

func lowestThreshold[T Target](living []T) (T, bool) {
	var best T
	found := false
	lowest := 0
	for _, e := range living {
		th, ok := any(e).(Thresholder)
		if !ok {
			continue
		}
		if !found || th.Threshold() < lowest {
			best, lowest, found = e, th.Threshold(), true
		}
	}
	return best, found
}
