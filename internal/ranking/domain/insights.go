package domain

// Band is a coarse label for a ranking score.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

const (
	highBandThreshold   = 30.0
	mediumBandThreshold = 15.0

	// ImportantThreshold is the importance from which a task counts as important.
	ImportantThreshold = 7
	// UrgentThreshold is the urgency score from which a task counts as urgent
	// (due within two days, or overdue).
	UrgentThreshold = 15.0
)

// BandFor classifies a score.
func BandFor(score float64) Band {
	switch {
	case score >= highBandThreshold:
		return BandHigh
	case score >= mediumBandThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// Quadrant is a cell of the Eisenhower matrix.
type Quadrant string

const (
	QuadrantDo        Quadrant = "do"        // urgent and important
	QuadrantSchedule  Quadrant = "schedule"  // important, not urgent
	QuadrantDelegate  Quadrant = "delegate"  // urgent, not important
	QuadrantEliminate Quadrant = "eliminate" // neither
)

// QuadrantFor places a task on the Eisenhower matrix from its importance and urgency score.
func QuadrantFor(importance int, urgency float64) Quadrant {
	important := importance >= ImportantThreshold
	urgent := urgency >= UrgentThreshold

	switch {
	case urgent && important:
		return QuadrantDo
	case important:
		return QuadrantSchedule
	case urgent:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}

// Top returns at most n leading tasks of a ranked list. Non-positive n yields none.
func Top(ranked []ScoredTask, n int) []ScoredTask {
	if n <= 0 {
		return []ScoredTask{}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
