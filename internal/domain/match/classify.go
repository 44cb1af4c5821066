package match

import (
	"strings"
	"time"
)

// Provenance tells whether a classification came straight from the provider
// or was derived from secondary signals.
type Provenance string

const (
	ProvenanceExplicit Provenance = "explicit"
	ProvenanceDerived  Provenance = "derived"
)

// Rule names the precedence step that produced a classification.
const (
	RuleExplicitStatus  = "explicit_status"
	RuleEndedFlag       = "ended_flag"
	RuleStartedFlag     = "started_flag"
	RuleScheduledFuture = "scheduled_future"
	RuleStatusKeyword   = "status_keyword"
	RuleFallback        = "fallback"
)

// Signals are the raw lifecycle hints carried by a provider payload.
type Signals struct {
	// ExplicitState is the provider tri-state field, e.g. "fixture", "live", "result".
	ExplicitState string
	Started       bool
	Ended         bool
	ScheduledAt   time.Time
	StatusText    string
}

// Classification is the tri-state outcome plus where it came from.
type Classification struct {
	State      State
	Provenance Provenance
	Rule       string
}

var (
	terminalKeywords   = []string{"won", "draw", "tied", "no result", "abandoned"}
	inProgressKeywords = []string{"innings", "break", "batting", "bowling", "need", "trail", "lead"}
)

// Classify maps signals to a lifecycle state. The first matching rule wins:
// explicit field, ended flag, started flag, future schedule, status keywords,
// then the started flag alone.
func Classify(s Signals, now time.Time) Classification {
	if state, ok := ParseExplicitState(s.ExplicitState); ok {
		return Classification{State: state, Provenance: ProvenanceExplicit, Rule: RuleExplicitStatus}
	}
	if s.Ended {
		return derived(StateCompleted, RuleEndedFlag)
	}
	if s.Started {
		return derived(StateLive, RuleStartedFlag)
	}
	if !s.ScheduledAt.IsZero() && s.ScheduledAt.After(now) {
		return derived(StateUpcoming, RuleScheduledFuture)
	}

	status := strings.ToLower(strings.TrimSpace(s.StatusText))
	if status != "" {
		if containsAny(status, terminalKeywords) {
			return derived(StateCompleted, RuleStatusKeyword)
		}
		if containsAny(status, inProgressKeywords) {
			return derived(StateLive, RuleStatusKeyword)
		}
	}

	if s.Started {
		return derived(StateLive, RuleFallback)
	}
	return derived(StateUpcoming, RuleFallback)
}

// ParseExplicitState accepts the provider tri-state vocabulary. Unknown values
// are reported as absent so classification falls through to derived rules.
func ParseExplicitState(raw string) (State, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fixture", "upcoming", "scheduled":
		return StateUpcoming, true
	case "live":
		return StateLive, true
	case "result", "completed", "ended":
		return StateCompleted, true
	default:
		return "", false
	}
}

func derived(state State, rule string) Classification {
	return Classification{State: state, Provenance: ProvenanceDerived, Rule: rule}
}

func containsAny(value string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(value, keyword) {
			return true
		}
	}
	return false
}
