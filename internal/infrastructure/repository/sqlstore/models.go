package sqlstore

import (
	"database/sql"
	"time"
)

type userTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type fantasyTeamTableModel struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	MatchID       string    `db:"match_id"`
	Name          string    `db:"name"`
	CaptainID     string    `db:"captain_player_id"`
	ViceCaptainID string    `db:"vice_captain_player_id"`
	TotalCredits  int64     `db:"total_credits"`
	CreatedAt     time.Time `db:"created_at"`
}

type fantasyTeamPlayerTableModel struct {
	TeamID   string `db:"team_id"`
	PlayerID string `db:"player_id"`
	Name     string `db:"player_name"`
	Role     string `db:"role"`
	TeamName string `db:"team_name"`
	Credits  int64  `db:"credits"`
	Position int    `db:"position"`
}

type contestTableModel struct {
	ID             string    `db:"id"`
	MatchID        string    `db:"match_id"`
	Name           string    `db:"name"`
	Slug           string    `db:"slug"`
	EntryFee       int64     `db:"entry_fee"`
	PrizePool      int64     `db:"prize_pool"`
	MaxEntries     int       `db:"max_entries"`
	CurrentEntries int       `db:"current_entries"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type contestEntryTableModel struct {
	ID        string        `db:"id"`
	ContestID string        `db:"contest_id"`
	UserID    string        `db:"user_id"`
	TeamID    string        `db:"team_id"`
	Points    float64       `db:"points"`
	Rank      sql.NullInt64 `db:"rank_position"`
	CreatedAt time.Time     `db:"created_at"`
}

type leaderboardQueryModel struct {
	EntryID  string        `db:"entry_id"`
	UserID   string        `db:"user_id"`
	UserName string        `db:"user_name"`
	TeamID   string        `db:"team_id"`
	TeamName string        `db:"team_name"`
	Points   float64       `db:"points"`
	Rank     sql.NullInt64 `db:"rank_position"`
}

type syncRunTableModel struct {
	ID                       string     `db:"id"`
	Trigger                  string     `db:"trigger_source"`
	Status                   string     `db:"status"`
	LiveCount                int        `db:"live_count"`
	CompletedCount           int        `db:"completed_count"`
	NewlyCreatedCount        int        `db:"newly_created_count"`
	LiveContestsUpdated      int64      `db:"live_contests_updated"`
	CompletedContestsUpdated int64      `db:"completed_contests_updated"`
	ErrorMessage             string     `db:"error_message"`
	StartedAt                time.Time  `db:"started_at"`
	FinishedAt               *time.Time `db:"finished_at"`
}

var (
	userColumns              = []string{"id", "name", "email", "created_at", "updated_at"}
	fantasyTeamColumns       = []string{"id", "user_id", "match_id", "name", "captain_player_id", "vice_captain_player_id", "total_credits", "created_at"}
	fantasyTeamPlayerColumns = []string{"team_id", "player_id", "player_name", "role", "team_name", "credits", "position"}
	contestColumns           = []string{"id", "match_id", "name", "slug", "entry_fee", "prize_pool", "max_entries", "current_entries", "status", "created_at", "updated_at"}
	contestEntryColumns      = []string{"id", "contest_id", "user_id", "team_id", "points", "rank_position", "created_at"}
	syncRunColumns           = []string{"id", "trigger_source", "status", "live_count", "completed_count", "newly_created_count", "live_contests_updated", "completed_contests_updated", "error_message", "started_at", "finished_at"}
)
