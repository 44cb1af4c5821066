package match

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IST is the fixed display zone (+05:30, no DST).
var IST = time.FixedZone("IST", 5*60*60+30*60)

// DisplayTime shifts a provider GMT timestamp into the display zone.
func DisplayTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(IST)
}

// FormatTeamScore renders "runs/wickets (overs)" for the first score whose
// innings label contains team, case-insensitively. Similarly named teams can
// collide; the first entry wins.
func FormatTeamScore(scores []Score, team string) string {
	needle := strings.ToLower(strings.TrimSpace(team))
	if needle == "" {
		return ""
	}
	for _, score := range scores {
		if !strings.Contains(strings.ToLower(score.Inning), needle) {
			continue
		}
		return fmt.Sprintf("%d/%d (%s)", score.Runs, score.Wickets, strconv.FormatFloat(score.Overs, 'f', -1, 64))
	}
	return ""
}
