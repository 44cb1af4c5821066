package match

import (
	"strings"
	"time"
)

// State is the lifecycle classification of a match.
type State string

const (
	StateUpcoming  State = "upcoming"
	StateLive      State = "live"
	StateCompleted State = "completed"
)

// Side is one of the two teams playing a match.
type Side struct {
	Name      string
	ShortName string
	ImageURL  string
}

// Score is one innings line reported by the data provider.
type Score struct {
	Inning  string
	Runs    int
	Wickets int
	Overs   float64
}

// Match is the canonical record built from a provider payload. It is never
// persisted; every poll re-fetches and re-classifies it.
type Match struct {
	ID             string
	Name           string
	MatchType      string
	TeamA          Side
	TeamB          Side
	Venue          string
	ScheduledAt    time.Time
	StatusText     string
	Scores         []Score
	Signals        Signals
	Classification Classification
}

func (m Match) State() State {
	return m.Classification.State
}

// LocalScheduledAt returns the scheduled time in the display timezone.
func (m Match) LocalScheduledAt() time.Time {
	return DisplayTime(m.ScheduledAt)
}

func (m Match) ScoreFor(side Side) string {
	return FormatTeamScore(m.Scores, side.Name)
}

// Board groups matches by lifecycle state, preserving input order.
type Board struct {
	All       []Match
	Live      []Match
	Upcoming  []Match
	Completed []Match
}

func NewBoard(matches []Match) Board {
	board := Board{
		All:       make([]Match, 0, len(matches)),
		Live:      make([]Match, 0),
		Upcoming:  make([]Match, 0),
		Completed: make([]Match, 0),
	}
	for _, m := range matches {
		board.All = append(board.All, m)
		switch m.State() {
		case StateLive:
			board.Live = append(board.Live, m)
		case StateCompleted:
			board.Completed = append(board.Completed, m)
		default:
			board.Upcoming = append(board.Upcoming, m)
		}
	}
	return board
}

// Teams returns both team names, used for search and score lookups.
func (m Match) Teams() []string {
	out := make([]string, 0, 2)
	for _, side := range []Side{m.TeamA, m.TeamB} {
		if name := strings.TrimSpace(side.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
