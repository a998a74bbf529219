package pricing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ria-intl/airportd/pkg/logger"
)

// Rule is a single pricing rule. Matching rules contribute their multiplier
// to the final price.
type Rule struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"rule_name"`
	RoutePattern string    `json:"route_pattern,omitempty"` // "LAX-*", "*-JFK", "LAX-JFK"; empty matches all
	HasTimeRange bool      `json:"has_time_range"`
	StartHour    int       `json:"start_hour"`
	EndHour      int       `json:"end_hour"`
	Multiplier   float64   `json:"multiplier"`
	IsActive     bool      `json:"is_active"`
	CreatedBy    uuid.UUID `json:"created_by"`
	CreatedDate  time.Time `json:"created_date"`
}

// NewRule creates an active rule. Pass an empty routePattern to match all
// routes. hasTimeRange gates the inclusive hour window.
func NewRule(name, routePattern string, hasTimeRange bool, startHour, endHour int, multiplier float64, createdBy uuid.UUID) Rule {
	return Rule{
		ID:           uuid.New(),
		Name:         name,
		RoutePattern: routePattern,
		HasTimeRange: hasTimeRange,
		StartHour:    startHour,
		EndHour:      endHour,
		Multiplier:   multiplier,
		IsActive:     true,
		CreatedBy:    createdBy,
		CreatedDate:  time.Now(),
	}
}

// AppliesToRoute matches the rule's pattern against "{origin}-{destination}".
// A leading and trailing "*" does a substring match on the trimmed middle, a
// leading "*" a suffix match, a trailing "*" a prefix match, no "*" an exact
// match. A "*" only in the middle of the pattern never matches.
func (r *Rule) AppliesToRoute(origin, destination string) bool {
	if r.RoutePattern == "" {
		return true
	}

	route := origin + "-" + destination
	pattern := r.RoutePattern

	if !strings.Contains(pattern, "*") {
		return route == pattern
	}

	switch {
	case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
		middle := strings.TrimSuffix(strings.TrimPrefix(pattern, "*"), "*")
		return strings.Contains(route, middle)
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(route, pattern[1:])
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(route, pattern[:len(pattern)-1])
	default:
		return false
	}
}

// AppliesToTime checks the inclusive hour window. Windows do not wrap past
// midnight: a (22,4) window never matches.
func (r *Rule) AppliesToTime(hour int) bool {
	if !r.HasTimeRange {
		return true
	}
	return hour >= r.StartHour && hour <= r.EndHour
}

// Engine evaluates pricing rules in registration order
type Engine struct {
	rules  []Rule
	logger *logger.Logger
}

// NewEngine creates an empty rule engine
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		logger: log.Named("pricing"),
	}
}

// AddRule registers a rule. Rules apply in registration order.
func (e *Engine) AddRule(rule Rule) {
	e.rules = append(e.rules, rule)
	e.logger.Info("Pricing rule added",
		logger.String("rule", rule.Name),
		logger.String("pattern", rule.RoutePattern),
		logger.Float64("multiplier", rule.Multiplier),
	)
}

// Rules returns a copy of the registered rules
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// SetActive flips a rule's active flag by id. Returns false if no rule with
// that id exists.
func (e *Engine) SetActive(id uuid.UUID, active bool) bool {
	for i := range e.rules {
		if e.rules[i].ID == id {
			e.rules[i].IsActive = active
			return true
		}
	}
	return false
}

// ApplicableMultiplier folds the multipliers of every active rule matching
// both the route and the hour, starting from 1.0. An empty rule set yields
// exactly 1.0.
func (e *Engine) ApplicableMultiplier(origin, destination string, hour int) float64 {
	multiplier := 1.0
	for i := range e.rules {
		rule := &e.rules[i]
		if !rule.IsActive {
			continue
		}
		if !rule.AppliesToRoute(origin, destination) {
			continue
		}
		if !rule.AppliesToTime(hour) {
			continue
		}
		multiplier *= rule.Multiplier
	}
	return multiplier
}
