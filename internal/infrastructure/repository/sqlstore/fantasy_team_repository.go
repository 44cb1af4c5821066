package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type FantasyTeamRepository struct {
	db *sqlx.DB
}

func NewFantasyTeamRepository(db *sqlx.DB) *FantasyTeamRepository {
	return &FantasyTeamRepository{db: db}
}

// Create writes the team row and its player snapshots in one transaction.
func (r *FantasyTeamRepository) Create(ctx context.Context, team fantasyteam.Team) error {
	if len(team.Players) == 0 {
		return fmt.Errorf("team %s has no players", team.ID)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create fantasy team: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	teamQuery, teamArgs, err := qb.InsertModel("fantasy_teams", fantasyTeamTableModel{
		ID:            team.ID,
		UserID:        team.UserID,
		MatchID:       team.MatchID,
		Name:          team.Name,
		CaptainID:     team.CaptainID,
		ViceCaptainID: team.ViceCaptainID,
		TotalCredits:  int64(team.TotalCredits),
		CreatedAt:     team.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert fantasy team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(teamQuery), teamArgs...); err != nil {
		return fmt.Errorf("insert fantasy team: %w", err)
	}

	players := make([]any, 0, len(team.Players))
	for i, p := range team.Players {
		players = append(players, fantasyTeamPlayerTableModel{
			TeamID:   team.ID,
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Role:     string(p.Role),
			TeamName: p.TeamName,
			Credits:  int64(p.Credits),
			Position: i,
		})
	}
	playerQuery, playerArgs, err := qb.InsertModels("fantasy_team_players", players, "")
	if err != nil {
		return fmt.Errorf("build insert fantasy team players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(playerQuery), playerArgs...); err != nil {
		return fmt.Errorf("insert fantasy team players: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create fantasy team: %w", err)
	}
	return nil
}

func (r *FantasyTeamRepository) GetByID(ctx context.Context, teamID string) (fantasyteam.Team, bool, error) {
	query, args, err := qb.Select(fantasyTeamColumns...).From("fantasy_teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fantasyteam.Team{}, false, fmt.Errorf("build get fantasy team query: %w", err)
	}

	var row fantasyTeamTableModel
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if isNotFound(err) {
			return fantasyteam.Team{}, false, nil
		}
		return fantasyteam.Team{}, false, fmt.Errorf("get fantasy team: %w", err)
	}

	players, err := r.playersByTeam(ctx, []string{row.ID})
	if err != nil {
		return fantasyteam.Team{}, false, err
	}
	return teamFromRow(row, players[row.ID]), true, nil
}

// ListByUser returns the user's teams, newest first. An empty matchID lists
// teams for every match.
func (r *FantasyTeamRepository) ListByUser(ctx context.Context, userID, matchID string) ([]fantasyteam.Team, error) {
	conditions := []qb.Condition{qb.Eq("user_id", userID)}
	if matchID != "" {
		conditions = append(conditions, qb.Eq("match_id", matchID))
	}
	query, args, err := qb.Select(fantasyTeamColumns...).From("fantasy_teams").
		Where(conditions...).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fantasy teams query: %w", err)
	}

	var rows []fantasyTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list fantasy teams: %w", err)
	}
	if len(rows) == 0 {
		return []fantasyteam.Team{}, nil
	}

	teamIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.ID)
	}
	players, err := r.playersByTeam(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	out := make([]fantasyteam.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row, players[row.ID]))
	}
	return out, nil
}

func (r *FantasyTeamRepository) playersByTeam(ctx context.Context, teamIDs []string) (map[string][]fantasyteam.TeamPlayer, error) {
	query, args, err := qb.Select(fantasyTeamPlayerColumns...).From("fantasy_team_players").
		Where(qb.InStrings("team_id", teamIDs)).
		OrderBy("team_id", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fantasy team players query: %w", err)
	}

	var rows []fantasyTeamPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list fantasy team players: %w", err)
	}

	out := make(map[string][]fantasyteam.TeamPlayer, len(teamIDs))
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], fantasyteam.TeamPlayer{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Role:     player.Role(row.Role),
			TeamName: row.TeamName,
			Credits:  player.Credits(row.Credits),
		})
	}
	return out, nil
}

func teamFromRow(row fantasyTeamTableModel, players []fantasyteam.TeamPlayer) fantasyteam.Team {
	return fantasyteam.Team{
		ID:            row.ID,
		UserID:        row.UserID,
		MatchID:       row.MatchID,
		Name:          row.Name,
		CaptainID:     row.CaptainID,
		ViceCaptainID: row.ViceCaptainID,
		TotalCredits:  player.Credits(row.TotalCredits),
		Players:       players,
		CreatedAt:     row.CreatedAt,
	}
}
