package submission

// Phase is a state of the submission flow.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseBlocked
	PhaseEncoding
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

var phaseNames = [...]string{
	PhaseIdle:       "idle",
	PhaseValidating: "validating",
	PhaseBlocked:    "blocked",
	PhaseEncoding:   "encoding",
	PhaseSubmitting: "submitting",
	PhaseSucceeded:  "succeeded",
	PhaseFailed:     "failed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// MarshalText renders the phase name in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Observer receives every phase transition of a Controller.
type Observer func(from, to Phase)
