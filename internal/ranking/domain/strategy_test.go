package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.Strategy
		known    bool
	}{
		{"smart_balance", domain.StrategySmartBalance, true},
		{"fastest", domain.StrategyFastest, true},
		{"high_impact", domain.StrategyHighImpact, true},
		{"deadline", domain.StrategyDeadline, true},
		{"DEADLINE", domain.StrategySmartBalance, false},
		{"FASTEST", domain.StrategySmartBalance, false},
		{" fastest ", domain.StrategySmartBalance, false},
		{" deadline ", domain.StrategySmartBalance, false},
		{"", domain.StrategySmartBalance, false},
		{"quickest", domain.StrategySmartBalance, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			strategy, ok := domain.ParseStrategy(tt.input)
			assert.Equal(t, tt.expected, strategy)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "smart_balance", domain.StrategySmartBalance.String())
	assert.Equal(t, "fastest", domain.StrategyFastest.String())
	assert.Equal(t, "high_impact", domain.StrategyHighImpact.String())
	assert.Equal(t, "deadline", domain.StrategyDeadline.String())
	assert.Equal(t, "unknown", domain.Strategy(99).String())
}

func TestStrategies(t *testing.T) {
	all := domain.Strategies()

	assert.Len(t, all, 4)
	assert.Equal(t, domain.DefaultStrategy, all[0])
	for _, s := range all {
		assert.True(t, s.IsValid())
		assert.NotEmpty(t, s.Formula())
		parsed, ok := domain.ParseStrategy(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	assert.False(t, domain.Strategy(-1).IsValid())
}
