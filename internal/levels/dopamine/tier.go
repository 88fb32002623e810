package dopamine

// Tier classifies the final wellbeing of a run, best first.
type Tier int

const (
	TierExcellent Tier = iota
	TierCorrect
	TierImbalanced
	TierSevere
)

// TierFor returns the tier of a final wellbeing value.
func TierFor(wellbeing float64) Tier {
	switch {
	case wellbeing >= 60:
		return TierExcellent
	case wellbeing >= 40:
		return TierCorrect
	case wellbeing >= 20:
		return TierImbalanced
	default:
		return TierSevere
	}
}

// String returns the short tier name used in storage.
func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "excellent"
	case TierCorrect:
		return "correct"
	case TierImbalanced:
		return "imbalanced"
	case TierSevere:
		return "severe"
	default:
		return "unknown"
	}
}

// Label returns the player-facing verdict.
func (t Tier) Label() string {
	switch t {
	case TierExcellent:
		return "Excellent balance!"
	case TierCorrect:
		return "Decent balance"
	case TierImbalanced:
		return "Noticeable imbalance"
	default:
		return "Severe addiction"
	}
}
