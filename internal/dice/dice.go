package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Faces of the d20 used for every check.
const Faces = 20

// Source supplies uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return NewStream(seed, 0)
}

// NewStream returns an independent stream for seed. Distinct stream values
// yield uncorrelated sequences, one per battle of a batch.
func NewStream(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// NewSeed draws a seed from the operating system's entropy source.
func NewSeed() (uint64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("failed to read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Scripted replays fixed die faces, one per draw. It panics when the
// script runs out or a face does not fit the die being rolled.
type Scripted struct {
	faces []int
}

// NewScripted prepares a deterministic sequence of faces.
func NewScripted(faces ...int) *Scripted {
	return &Scripted{faces: faces}
}

// IntN returns the next scripted face as a zero-based value.
func (s *Scripted) IntN(n int) int {
	if len(s.faces) == 0 {
		panic(fmt.Sprintf("dice: scripted source exhausted rolling d%d", n))
	}
	face := s.faces[0]
	s.faces = s.faces[1:]
	if face < 1 || face > n {
		panic(fmt.Sprintf("dice: scripted face %d does not fit d%d", face, n))
	}
	return face - 1
}

// Remaining reports how many scripted faces are left.
func (s *Scripted) Remaining() int {
	return len(s.faces)
}

func roll(src Source, sides int) int {
	return src.IntN(sides) + 1
}

// RollD20 rolls one d20, or the higher of two with expertise.
func RollD20(src Source, expertise bool) int {
	first := roll(src, Faces)
	if !expertise {
		return first
	}
	return max(first, roll(src, Faces))
}

// scalingFaces maps stack counts to die size; five or more stacks use the last entry.
var scalingFaces = []int{4, 6, 8, 10, 12}

// ScalingDie rolls the die sized by the number of boon or bane stacks.
// Zero or negative stacks roll nothing.
func ScalingDie(src Source, stacks int) int {
	if stacks <= 0 {
		return 0
	}
	idx := min(stacks, len(scalingFaces)) - 1
	return roll(src, scalingFaces[idx])
}

// ClassifyOutcome grades a total against a difficulty threshold.
// Triumph is never produced here; it only comes from a natural 20.
func ClassifyOutcome(total, dt int) Outcome {
	switch {
	case total >= dt+3:
		return CleanSuccess
	case total >= dt-2:
		return Setback
	case total <= dt-10:
		return Catastrophe
	default:
		return Failure
	}
}

// Check describes one resolution against a threshold.
type Check struct {
	Expertise bool
	Aptitude  int
	Banes     int
	Boons     int
	DT        int
}

// NewCheck returns a check with the single boon every roll carries.
func NewCheck(aptitude, dt int) Check {
	return Check{Aptitude: aptitude, Boons: 1, DT: dt}
}

// Roll is the resolved result of a check.
type Roll struct {
	Total   int     `json:"total"`
	Natural int     `json:"natural"`
	Outcome Outcome `json:"outcome"`
	Boon    int     `json:"boon"`
	Bane    int     `json:"bane"`
	DT      int     `json:"dt"`
}

// Nat20 reports whether the d20 showed a natural 20.
func (r Roll) Nat20() bool {
	return r.Natural == Faces
}

// ResolveRoll rolls a check. Boons and banes cancel one for one and only the
// surplus side's scaling die is rolled.
func ResolveRoll(src Source, c Check) Roll {
	natural := RollD20(src, c.Expertise)

	res := Roll{Natural: natural, DT: c.DT}
	switch net := c.Boons - c.Banes; {
	case net > 0:
		res.Boon = ScalingDie(src, net)
	case net < 0:
		res.Bane = ScalingDie(src, -net)
	}

	res.Total = natural + c.Aptitude + res.Boon - res.Bane
	if res.Nat20() {
		res.Outcome = Triumph
	} else {
		res.Outcome = ClassifyOutcome(res.Total, c.DT)
	}
	return res
}
