package domain

// Strategy selects how component scores combine into the ranking score.
type Strategy int

const (
	StrategySmartBalance Strategy = iota
	StrategyFastest
	StrategyHighImpact
	StrategyDeadline
)

// DefaultStrategy is used when no strategy, or an unknown one, is requested.
const DefaultStrategy = StrategySmartBalance

var strategyNames = map[Strategy]string{
	StrategySmartBalance: "smart_balance",
	StrategyFastest:      "fastest",
	StrategyHighImpact:   "high_impact",
	StrategyDeadline:     "deadline",
}

var strategyValues = map[string]Strategy{
	"smart_balance": StrategySmartBalance,
	"fastest":       StrategyFastest,
	"high_impact":   StrategyHighImpact,
	"deadline":      StrategyDeadline,
}

var strategyFormulas = map[Strategy]string{
	StrategySmartBalance: "importance*2 + urgency*1.5 + effort + dependency_weight + cycle_penalty",
	StrategyFastest:      "effort*2 + urgency*0.5 + importance*0.5",
	StrategyHighImpact:   "importance*3 + urgency + effort",
	StrategyDeadline:     "urgency*3 + importance + effort*0.2",
}

// ParseStrategy resolves a strategy name. Names match exactly, so case or padding variants
// are unknown. Unknown or empty names fall back to the default strategy; ok reports whether
// the name was recognised.
func ParseStrategy(s string) (strategy Strategy, ok bool) {
	strategy, ok = strategyValues[s]
	if !ok {
		return DefaultStrategy, false
	}
	return strategy, true
}

// String returns the wire name of the strategy.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the strategy is one of the known variants.
func (s Strategy) IsValid() bool {
	_, ok := strategyNames[s]
	return ok
}

// Formula describes how the strategy combines scores.
func (s Strategy) Formula() string {
	return strategyFormulas[s]
}

// Strategies returns every strategy, default first.
func Strategies() []Strategy {
	return []Strategy{StrategySmartBalance, StrategyFastest, StrategyHighImpact, StrategyDeadline}
}
