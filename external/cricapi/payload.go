package cricapi

import (
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

const (
	statusSuccess = "success"
	gmtLayout     = "2006-01-02T15:04:05"
	dateLayout    = "2006-01-02"
)

type envelopeHead struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

type teamInfoPayload struct {
	Name      string `json:"name"`
	ShortName string `json:"shortname"`
	Img       string `json:"img"`
}

type scorePayload struct {
	Runs    int     `json:"r"`
	Wickets int     `json:"w"`
	Overs   float64 `json:"o"`
	Inning  string  `json:"inning"`
}

type matchPayload struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	MatchType    string            `json:"matchType"`
	Status       string            `json:"status"`
	MS           string            `json:"ms"`
	Venue        string            `json:"venue"`
	Date         string            `json:"date"`
	DateTimeGMT  string            `json:"dateTimeGMT"`
	Teams        []string          `json:"teams"`
	TeamInfo     []teamInfoPayload `json:"teamInfo"`
	Score        []scorePayload    `json:"score"`
	MatchStarted bool              `json:"matchStarted"`
	MatchEnded   bool              `json:"matchEnded"`
}

func toMatches(items []matchPayload) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		out = append(out, item.toMatch())
	}
	return out
}

func (p matchPayload) toMatch() match.Match {
	scheduledAt := parseGMT(p.DateTimeGMT, p.Date)

	scores := make([]match.Score, 0, len(p.Score))
	for _, s := range p.Score {
		scores = append(scores, match.Score{
			Inning:  s.Inning,
			Runs:    s.Runs,
			Wickets: s.Wickets,
			Overs:   s.Overs,
		})
	}

	return match.Match{
		ID:          strings.TrimSpace(p.ID),
		Name:        strings.TrimSpace(p.Name),
		MatchType:   strings.TrimSpace(p.MatchType),
		TeamA:       p.side(0),
		TeamB:       p.side(1),
		Venue:       strings.TrimSpace(p.Venue),
		ScheduledAt: scheduledAt,
		StatusText:  strings.TrimSpace(p.Status),
		Scores:      scores,
		Signals: match.Signals{
			ExplicitState: p.MS,
			Started:       p.MatchStarted,
			Ended:         p.MatchEnded,
			ScheduledAt:   scheduledAt,
			StatusText:    p.Status,
		},
	}
}

// side resolves the idx-th entry of teams, enriched from teamInfo by name.
// teamInfo order is not guaranteed to follow teams.
func (p matchPayload) side(idx int) match.Side {
	if idx >= len(p.Teams) {
		if idx < len(p.TeamInfo) {
			info := p.TeamInfo[idx]
			return match.Side{Name: info.Name, ShortName: info.ShortName, ImageURL: info.Img}
		}
		return match.Side{}
	}

	name := strings.TrimSpace(p.Teams[idx])
	out := match.Side{Name: name}
	for _, info := range p.TeamInfo {
		if strings.EqualFold(strings.TrimSpace(info.Name), name) {
			out.ShortName = info.ShortName
			out.ImageURL = info.Img
			break
		}
	}
	return out
}

func parseGMT(dateTime, date string) time.Time {
	if value := strings.TrimSpace(dateTime); value != "" {
		if t, err := time.Parse(gmtLayout, value); err == nil {
			return t.UTC()
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t.UTC()
		}
	}
	if value := strings.TrimSpace(date); value != "" {
		if t, err := time.Parse(dateLayout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

type squadPlayerPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BattingStyle string `json:"battingStyle"`
	BowlingStyle string `json:"bowlingStyle"`
	Country      string `json:"country"`
	PlayerImg    string `json:"playerImg"`
}

type squadPayload struct {
	TeamName  string               `json:"teamName"`
	ShortName string               `json:"shortname"`
	Img       string               `json:"img"`
	Players   []squadPlayerPayload `json:"players"`
}

// toSquadTeam passes the provider role through untouched; role inference
// happens when the squad is priced.
func (p squadPayload) toSquadTeam() player.SquadTeam {
	players := make([]player.Player, 0, len(p.Players))
	for _, item := range p.Players {
		players = append(players, player.Player{
			ID:           strings.TrimSpace(item.ID),
			Name:         strings.TrimSpace(item.Name),
			Role:         player.Role(strings.TrimSpace(item.Role)),
			Country:      item.Country,
			BattingStyle: item.BattingStyle,
			BowlingStyle: item.BowlingStyle,
			ImageURL:     item.PlayerImg,
		})
	}
	return player.SquadTeam{
		TeamName:  strings.TrimSpace(p.TeamName),
		ShortName: strings.TrimSpace(p.ShortName),
		ImageURL:  p.Img,
		Players:   players,
	}
}

type statPayload struct {
	Fn        string `json:"fn"`
	MatchType string `json:"matchtype"`
	Stat      string `json:"stat"`
	Value     string `json:"value"`
}

type playerInfoPayload struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	DateOfBirth  string        `json:"dateOfBirth"`
	Role         string        `json:"role"`
	BattingStyle string        `json:"battingStyle"`
	BowlingStyle string        `json:"bowlingStyle"`
	PlaceOfBirth string        `json:"placeOfBirth"`
	Country      string        `json:"country"`
	PlayerImg    string        `json:"playerImg"`
	Stats        []statPayload `json:"stats"`
}

func (p playerInfoPayload) toProfile() player.Profile {
	stats := make([]player.Stat, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, player.Stat{
			Function:  strings.TrimSpace(s.Fn),
			MatchType: strings.TrimSpace(s.MatchType),
			Stat:      strings.TrimSpace(s.Stat),
			Value:     strings.TrimSpace(s.Value),
		})
	}
	return player.Profile{
		ID:           strings.TrimSpace(p.ID),
		Name:         strings.TrimSpace(p.Name),
		Country:      p.Country,
		Role:         player.Role(strings.TrimSpace(p.Role)),
		BattingStyle: p.BattingStyle,
		BowlingStyle: p.BowlingStyle,
		PlaceOfBirth: p.PlaceOfBirth,
		DateOfBirth:  p.DateOfBirth,
		ImageURL:     p.PlayerImg,
		Stats:        stats,
	}
}
