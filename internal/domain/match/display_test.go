package match

import (
	"testing"
	"time"
)

func TestFormatTeamScore(t *testing.T) {
	scores := []Score{
		{Inning: "India Inning 1", Runs: 182, Wickets: 6, Overs: 20},
		{Inning: "Sri Lanka Inning 1", Runs: 140, Wickets: 9, Overs: 18.4},
	}

	tests := []struct {
		team string
		want string
	}{
		{team: "india", want: "182/6 (20)"},
		{team: "Sri Lanka", want: "140/9 (18.4)"},
		{team: "Pakistan", want: ""},
		{team: "  ", want: ""},
	}

	for _, tt := range tests {
		if got := FormatTeamScore(scores, tt.team); got != tt.want {
			t.Fatalf("team %q: got=%q want=%q", tt.team, got, tt.want)
		}
	}
}

func TestFormatTeamScoreFirstMatchWins(t *testing.T) {
	scores := []Score{
		{Inning: "India Women Inning 1", Runs: 120, Wickets: 4, Overs: 20},
		{Inning: "India Inning 1", Runs: 200, Wickets: 2, Overs: 20},
	}
	if got := FormatTeamScore(scores, "India"); got != "120/4 (20)" {
		t.Fatalf("expected first containing entry, got %q", got)
	}
}

func TestDisplayTime(t *testing.T) {
	gmt := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)

	got := DisplayTime(gmt)
	if got.Hour() != 19 || got.Minute() != 30 {
		t.Fatalf("expected 19:30 IST, got %s", got.Format(time.RFC3339))
	}
	if !got.Equal(gmt) {
		t.Fatalf("display transform must not change the instant")
	}
	if !DisplayTime(time.Time{}).IsZero() {
		t.Fatalf("zero time must stay zero")
	}
}
