package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestRuleAppliesToRoute(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		origin      string
		destination string
		want        bool
	}{
		{"empty pattern matches all", "", "JFK", "LHR", true},
		{"exact match", "LAX-JFK", "LAX", "JFK", true},
		{"exact mismatch", "LAX-JFK", "JFK", "LAX", false},
		{"suffix wildcard matches destination", "*-LHR", "JFK", "LHR", true},
		{"suffix wildcard mismatch", "*-LHR", "JFK", "CDG", false},
		{"prefix wildcard matches origin", "LAX-*", "LAX", "JFK", true},
		{"prefix wildcard mismatch", "LAX-*", "JFK", "LAX", false},
		{"contains wildcard matches origin", "*LAX*", "LAX", "JFK", true},
		{"contains wildcard matches destination", "*LAX*", "JFK", "LAX", true},
		{"contains wildcard mismatch", "*LAX*", "JFK", "LHR", false},
		{"interior wildcard never matches", "LAX*JFK", "LAX", "JFK", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewRule("test", tt.pattern, false, 0, 0, 1.5, uuid.New())
			assert.Equal(t, tt.want, rule.AppliesToRoute(tt.origin, tt.destination))
		})
	}
}

func TestRuleAppliesToTime(t *testing.T) {
	tests := []struct {
		name         string
		hasTimeRange bool
		start, end   int
		hour         int
		want         bool
	}{
		{"no range matches all hours", false, 0, 0, 13, true},
		{"inside range", true, 6, 9, 7, true},
		{"start boundary inclusive", true, 6, 9, 6, true},
		{"end boundary inclusive", true, 6, 9, 9, true},
		{"outside range", true, 6, 9, 10, false},
		{"overnight range never matches late hour", true, 22, 4, 23, false},
		{"overnight range never matches early hour", true, 22, 4, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewRule("test", "", tt.hasTimeRange, tt.start, tt.end, 1.5, uuid.New())
			assert.Equal(t, tt.want, rule.AppliesToTime(tt.hour))
		})
	}
}

func TestApplicableMultiplierEmptyEngine(t *testing.T) {
	engine := NewEngine(logger.Nop())
	assert.Equal(t, 1.0, engine.ApplicableMultiplier("LAX", "JFK", 12))
}

func TestApplicableMultiplierFoldsMatchingRules(t *testing.T) {
	engine := NewEngine(logger.Nop())
	creator := uuid.New()

	engine.AddRule(NewRule("Peak Hours Premium", "", true, 6, 9, 1.3, creator))
	engine.AddRule(NewRule("Transatlantic Premium", "*-LHR", false, 0, 0, 1.2, creator))
	engine.AddRule(NewRule("Weekend Discount", "", false, 0, 0, 0.9, creator))

	// Hour 7 to LHR: all three match
	assert.InDelta(t, 1.3*1.2*0.9, engine.ApplicableMultiplier("JFK", "LHR", 7), 1e-9)

	// Hour 12 to CDG: only the discount matches
	assert.InDelta(t, 0.9, engine.ApplicableMultiplier("JFK", "CDG", 12), 1e-9)
}

func TestApplicableMultiplierSkipsInactiveRules(t *testing.T) {
	engine := NewEngine(logger.Nop())

	rule := NewRule("Peak Hours Premium", "", true, 6, 9, 1.3, uuid.New())
	engine.AddRule(rule)
	assert.InDelta(t, 1.3, engine.ApplicableMultiplier("LAX", "JFK", 7), 1e-9)

	assert.True(t, engine.SetActive(rule.ID, false))
	assert.Equal(t, 1.0, engine.ApplicableMultiplier("LAX", "JFK", 7))
}

func TestSetActiveUnknownRule(t *testing.T) {
	engine := NewEngine(logger.Nop())
	assert.False(t, engine.SetActive(uuid.New(), false))
}
