package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/jobscheduler"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

const localTimeLayout = "02 Jan 2006, 03:04 PM"

// Team-size and captain rules are left to the domain validator so each
// failure carries its own reason.
type createTeamRequest struct {
	MatchID       string                    `json:"match_id" validate:"required"`
	Name          string                    `json:"name" validate:"required,max=100"`
	CaptainID     string                    `json:"captain_id" validate:"required"`
	ViceCaptainID string                    `json:"vice_captain_id" validate:"required"`
	Players       []createTeamPlayerRequest `json:"players" validate:"required,min=1,dive"`
}

// createTeamPlayerRequest carries no credits; the server prices each pick.
type createTeamPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=120"`
	Role     string `json:"role" validate:"required"`
	TeamName string `json:"team_name" validate:"max=120"`
}

type joinContestRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type sideDTO struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Score     string `json:"score,omitempty"`
}

type matchDTO struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	MatchType        string  `json:"match_type,omitempty"`
	State            string  `json:"state"`
	StateProvenance  string  `json:"state_provenance"`
	StateRule        string  `json:"state_rule"`
	TeamA            sideDTO `json:"team_a"`
	TeamB            sideDTO `json:"team_b"`
	Venue            string  `json:"venue,omitempty"`
	StatusText       string  `json:"status_text,omitempty"`
	ScheduledAt      string  `json:"scheduled_at,omitempty"`
	ScheduledAtLocal string  `json:"scheduled_at_local,omitempty"`
}

type matchBoardDTO struct {
	Live      []matchDTO `json:"live"`
	Upcoming  []matchDTO `json:"upcoming"`
	Completed []matchDTO `json:"completed"`
	Total     int        `json:"total"`
}

type playerDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Country      string  `json:"country,omitempty"`
	BattingStyle string  `json:"batting_style,omitempty"`
	BowlingStyle string  `json:"bowling_style,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	Credits      float64 `json:"credits"`
}

type squadTeamDTO struct {
	TeamName  string      `json:"team_name"`
	ShortName string      `json:"short_name,omitempty"`
	ImageURL  string      `json:"image_url,omitempty"`
	Players   []playerDTO `json:"players"`
}

type playerStatDTO struct {
	Function  string `json:"fn"`
	MatchType string `json:"match_type"`
	Stat      string `json:"stat"`
	Value     string `json:"value"`
}

type playerProfileDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	Country      string          `json:"country,omitempty"`
	BattingStyle string          `json:"batting_style,omitempty"`
	BowlingStyle string          `json:"bowling_style,omitempty"`
	PlaceOfBirth string          `json:"place_of_birth,omitempty"`
	DateOfBirth  string          `json:"date_of_birth,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Stats        []playerStatDTO `json:"stats"`
}

type teamPlayerDTO struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	TeamName string  `json:"team_name,omitempty"`
	Credits  float64 `json:"credits"`
}

type teamDTO struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	MatchID       string          `json:"match_id"`
	Name          string          `json:"name"`
	CaptainID     string          `json:"captain_id"`
	ViceCaptainID string          `json:"vice_captain_id"`
	TotalCredits  float64         `json:"total_credits"`
	Players       []teamPlayerDTO `json:"players"`
	CreatedAt     time.Time       `json:"created_at"`
}

type contestDTO struct {
	ID             string    `json:"id"`
	MatchID        string    `json:"match_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	EntryFee       int64     `json:"entry_fee"`
	PrizePool      int64     `json:"prize_pool"`
	MaxEntries     int       `json:"max_entries"`
	CurrentEntries int       `json:"current_entries"`
	SpotsLeft      int       `json:"spots_left"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type entryDTO struct {
	ID        string    `json:"id"`
	ContestID string    `json:"contest_id"`
	UserID    string    `json:"user_id"`
	TeamID    string    `json:"team_id"`
	Points    float64   `json:"points"`
	Rank      *int      `json:"rank"`
	CreatedAt time.Time `json:"created_at"`
}

type leaderboardRowDTO struct {
	EntryID  string  `json:"entry_id"`
	UserID   string  `json:"user_id"`
	UserName string  `json:"user_name"`
	TeamID   string  `json:"team_id"`
	TeamName string  `json:"team_name"`
	Points   float64 `json:"points"`
	Rank     *int    `json:"rank"`
}

type syncRunDTO struct {
	ID                       string     `json:"id"`
	Trigger                  string     `json:"trigger"`
	Status                   string     `json:"status"`
	LiveCount                int        `json:"live_count"`
	CompletedCount           int        `json:"completed_count"`
	NewlyCreatedCount        int        `json:"newly_created_count"`
	LiveContestsUpdated      int64      `json:"live_contests_updated"`
	CompletedContestsUpdated int64      `json:"completed_contests_updated"`
	ErrorMessage             string     `json:"error_message,omitempty"`
	StartedAt                time.Time  `json:"started_at"`
	FinishedAt               *time.Time `json:"finished_at,omitempty"`
	DurationMS               int64      `json:"duration_ms"`
}

func toSideDTO(m match.Match, side match.Side) sideDTO {
	return sideDTO{
		Name:      side.Name,
		ShortName: side.ShortName,
		ImageURL:  side.ImageURL,
		Score:     m.ScoreFor(side),
	}
}

func toMatchDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:              m.ID,
		Name:            m.Name,
		MatchType:       m.MatchType,
		State:           string(m.State()),
		StateProvenance: string(m.Classification.Provenance),
		StateRule:       m.Classification.Rule,
		TeamA:           toSideDTO(m, m.TeamA),
		TeamB:           toSideDTO(m, m.TeamB),
		Venue:           m.Venue,
		StatusText:      m.StatusText,
	}
	if !m.ScheduledAt.IsZero() {
		out.ScheduledAt = m.ScheduledAt.UTC().Format(time.RFC3339)
		out.ScheduledAtLocal = m.LocalScheduledAt().Format(localTimeLayout) + " IST"
	}
	return out
}

func toMatchDTOs(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toMatchDTO(item))
	}
	return out
}

func toMatchBoardDTO(board match.Board) matchBoardDTO {
	return matchBoardDTO{
		Live:      toMatchDTOs(board.Live),
		Upcoming:  toMatchDTOs(board.Upcoming),
		Completed: toMatchDTOs(board.Completed),
		Total:     len(board.All),
	}
}

func toSquadTeamDTO(team player.SquadTeam) squadTeamDTO {
	players := make([]playerDTO, 0, len(team.Players))
	for _, p := range team.Players {
		players = append(players, playerDTO{
			ID:           p.ID,
			Name:         p.Name,
			Role:         string(p.Role),
			Country:      p.Country,
			BattingStyle: p.BattingStyle,
			BowlingStyle: p.BowlingStyle,
			ImageURL:     p.ImageURL,
			Credits:      p.Credits.Float(),
		})
	}
	return squadTeamDTO{
		TeamName:  team.TeamName,
		ShortName: team.ShortName,
		ImageURL:  team.ImageURL,
		Players:   players,
	}
}

func toPlayerProfileDTO(p player.Profile) playerProfileDTO {
	stats := make([]playerStatDTO, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, playerStatDTO{Function: s.Function, MatchType: s.MatchType, Stat: s.Stat, Value: s.Value})
	}
	return playerProfileDTO{
		ID:           p.ID,
		Name:         p.Name,
		Role:         string(p.Role),
		Country:      p.Country,
		BattingStyle: p.BattingStyle,
		BowlingStyle: p.BowlingStyle,
		PlaceOfBirth: p.PlaceOfBirth,
		DateOfBirth:  p.DateOfBirth,
		ImageURL:     p.ImageURL,
		Stats:        stats,
	}
}

func toTeamDTO(t fantasyteam.Team) teamDTO {
	players := make([]teamPlayerDTO, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, teamPlayerDTO{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Role:     string(p.Role),
			TeamName: p.TeamName,
			Credits:  p.Credits.Float(),
		})
	}
	return teamDTO{
		ID:            t.ID,
		UserID:        t.UserID,
		MatchID:       t.MatchID,
		Name:          t.Name,
		CaptainID:     t.CaptainID,
		ViceCaptainID: t.ViceCaptainID,
		TotalCredits:  t.TotalCredits.Float(),
		Players:       players,
		CreatedAt:     t.CreatedAt,
	}
}

func toContestDTO(c contest.Contest) contestDTO {
	return contestDTO{
		ID:             c.ID,
		MatchID:        c.MatchID,
		Name:           c.Name,
		Slug:           c.Slug,
		EntryFee:       c.EntryFee,
		PrizePool:      c.PrizePool,
		MaxEntries:     c.MaxEntries,
		CurrentEntries: c.CurrentEntries,
		SpotsLeft:      c.SpotsLeft(),
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
	}
}

func toEntryDTO(e contest.Entry) entryDTO {
	return entryDTO{
		ID:        e.ID,
		ContestID: e.ContestID,
		UserID:    e.UserID,
		TeamID:    e.TeamID,
		Points:    e.Points,
		Rank:      e.Rank,
		CreatedAt: e.CreatedAt,
	}
}

func toSyncRunDTO(run jobscheduler.SyncRun) syncRunDTO {
	return syncRunDTO{
		ID:                       run.ID,
		Trigger:                  string(run.Trigger),
		Status:                   string(run.Status),
		LiveCount:                run.LiveCount,
		CompletedCount:           run.CompletedCount,
		NewlyCreatedCount:        run.NewlyCreatedCount,
		LiveContestsUpdated:      run.LiveContestsUpdated,
		CompletedContestsUpdated: run.CompletedContestsUpdated,
		ErrorMessage:             run.ErrorMessage,
		StartedAt:                run.StartedAt,
		FinishedAt:               run.FinishedAt,
		DurationMS:               run.Duration().Milliseconds(),
	}
}
