package domain

// EffortScore rewards quick wins: the fewer estimated hours, the higher the score.
// Non-positive input lands in the lowest-effort bucket.
func EffortScore(hours float64) float64 {
	switch {
	case hours <= 1:
		return 8.0
	case hours <= 3:
		return 5.0
	case hours <= 6:
		return 2.0
	default:
		return -2.0
	}
}
