package dice

// Outcome grades a check. Higher values are better results.
type Outcome int

const (
	Catastrophe Outcome = iota
	Failure
	Setback
	CleanSuccess
	Triumph
)

// String returns the display name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Triumph:
		return "Triumph"
	case CleanSuccess:
		return "Clean Success"
	case Setback:
		return "Setback"
	case Failure:
		return "Failure"
	case Catastrophe:
		return "Catastrophe"
	default:
		return "Unknown"
	}
}

// Keeps reports whether the outcome is a full success, the only kind that
// holds or takes momentum.
func (o Outcome) Keeps() bool {
	return o == Triumph || o == CleanSuccess
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
