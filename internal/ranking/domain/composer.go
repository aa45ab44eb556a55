package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// BlockWeight is added per task that depends on the scored task.
	BlockWeight = 3.0
	// CyclePenalty applies to tasks on a circular dependency.
	CyclePenalty = -10.0

	explanationSeparator = "; "
	blocksNote           = "Blocks other tasks"
	circularNote         = "Part of a circular dependency"
)

// ScoreInputs carries everything the composer needs for one task.
type ScoreInputs struct {
	Importance       int
	EstimatedHours   float64
	Urgency          float64
	Effort           float64
	DependencyWeight float64
	Cyclic           bool
	Strategy         Strategy
}

// Score is a composed ranking score and the reasons behind it.
type Score struct {
	Value       float64
	Explanation string
}

// Compose combines component scores under the selected strategy.
// The dependency weight and cycle penalty only count under smart_balance.
func Compose(in ScoreInputs) Score {
	importance := float64(in.Importance)
	cyclePenalty := 0.0
	if in.Cyclic {
		cyclePenalty = CyclePenalty
	}

	var value float64
	switch in.Strategy {
	case StrategyFastest:
		value = in.Effort*2 + in.Urgency*0.5 + importance*0.5
	case StrategyHighImpact:
		value = importance*3 + in.Urgency + in.Effort
	case StrategyDeadline:
		value = in.Urgency*3 + importance + in.Effort*0.2
	default:
		value = importance*2.0 +
			in.Urgency*1.5 +
			in.Effort*1.0 +
			in.DependencyWeight +
			cyclePenalty
	}

	return Score{
		Value:       Round2(value),
		Explanation: explain(in),
	}
}

func explain(in ScoreInputs) string {
	parts := []string{
		fmt.Sprintf("Importance %d", in.Importance),
		fmt.Sprintf("Estimated %sh", strconv.FormatFloat(in.EstimatedHours, 'f', -1, 64)),
	}
	if in.DependencyWeight > 0 {
		parts = append(parts, blocksNote)
	}
	if in.Cyclic {
		parts = append(parts, circularNote)
	}
	return strings.Join(parts, explanationSeparator)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
