package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	return getContest(ctx, r.db, contestID)
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

func getContest(ctx context.Context, q queryer, contestID string) (contest.Contest, bool, error) {
	query, args, err := qb.Select(contestColumns...).From("contests").
		Where(qb.Eq("id", contestID)).
		ToSQL()
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("build get contest query: %w", err)
	}

	var row contestTableModel
	if err := sqlx.GetContext(ctx, q, &row, q.Rebind(query), args...); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("get contest: %w", err)
	}
	return contestFromRow(row), true, nil
}

func (r *ContestRepository) ListByMatch(ctx context.Context, matchID string) ([]contest.Contest, error) {
	query, args, err := qb.Select(contestColumns...).From("contests").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("max_entries DESC", "slug").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list contests by match query: %w", err)
	}

	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list contests by match: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		out = append(out, contestFromRow(row))
	}
	return out, nil
}

func (r *ContestRepository) ListMatchIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("DISTINCT match_id").From("contests").
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list contest match ids query: %w", err)
	}

	out := make([]string, 0)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list contest match ids: %w", err)
	}
	return out, nil
}

// CreateMany inserts every contest in one statement. Rows whose (match_id,
// slug) already exist are skipped by the unique constraint, so concurrent
// provisioning of one match creates each default contest once.
func (r *ContestRepository) CreateMany(ctx context.Context, items []contest.Contest) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	models := make([]any, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return 0, fmt.Errorf("invalid contest %s: %w", item.ID, err)
		}
		models = append(models, contestTableModel{
			ID:             item.ID,
			MatchID:        item.MatchID,
			Name:           item.Name,
			Slug:           item.Slug,
			EntryFee:       item.EntryFee,
			PrizePool:      item.PrizePool,
			MaxEntries:     item.MaxEntries,
			CurrentEntries: item.CurrentEntries,
			Status:         string(item.Status),
			CreatedAt:      item.CreatedAt,
			UpdatedAt:      item.UpdatedAt,
		})
	}

	query, args, err := qb.InsertModels("contests", models, "ON CONFLICT (match_id, slug) DO NOTHING")
	if err != nil {
		return 0, fmt.Errorf("build create contests query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("create contests: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected create contests: %w", err)
	}
	return int(affected), nil
}

func (r *ContestRepository) AdvanceStatus(ctx context.Context, matchID string, to contest.Status, at time.Time) (int64, error) {
	from := contest.Predecessors(to)
	if len(from) == 0 {
		return 0, nil
	}
	fromValues := make([]any, 0, len(from))
	for _, status := range from {
		fromValues = append(fromValues, string(status))
	}

	query, args, err := qb.Update("contests").
		Set("status", string(to)).
		Set("updated_at", at).
		Where(
			qb.Eq("match_id", matchID),
			qb.In("status", fromValues),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build advance contest status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("advance contest status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected advance contest status: %w", err)
	}
	return affected, nil
}

func (r *ContestRepository) GetEntryByUser(ctx context.Context, contestID, userID string) (contest.Entry, bool, error) {
	query, args, err := qb.Select(contestEntryColumns...).From("contest_entries").
		Where(
			qb.Eq("contest_id", contestID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return contest.Entry{}, false, fmt.Errorf("build get contest entry query: %w", err)
	}

	var row contestEntryTableModel
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if isNotFound(err) {
			return contest.Entry{}, false, nil
		}
		return contest.Entry{}, false, fmt.Errorf("get contest entry: %w", err)
	}
	return entryFromRow(row), true, nil
}

// CreateEntry claims a slot with a conditional update and then inserts the
// entry in the same transaction. The update only matches an existing upcoming
// contest with a free slot, so the fill count never passes max_entries; a
// failed insert rolls the claimed slot back.
func (r *ContestRepository) CreateEntry(ctx context.Context, entry contest.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create contest entry: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery, updateArgs, err := qb.Update("contests").
		SetExpr("current_entries", "current_entries + 1").
		Set("updated_at", entry.CreatedAt).
		Where(
			qb.Eq("id", entry.ContestID),
			qb.Eq("status", string(contest.StatusUpcoming)),
			qb.Expr("current_entries < max_entries"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build increment contest entries query: %w", err)
	}
	result, err := tx.ExecContext(ctx, tx.Rebind(updateQuery), updateArgs...)
	if err != nil {
		return fmt.Errorf("increment contest entries: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected increment contest entries: %w", err)
	}
	if affected == 0 {
		return rejectedEntryError(ctx, tx, entry.ContestID)
	}

	insertQuery, insertArgs, err := qb.InsertModel("contest_entries", contestEntryTableModel{
		ID:        entry.ID,
		ContestID: entry.ContestID,
		UserID:    entry.UserID,
		TeamID:    entry.TeamID,
		Points:    entry.Points,
		Rank:      ptrToNullInt(entry.Rank),
		CreatedAt: entry.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert contest entry query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(insertQuery), insertArgs...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: contest=%s", contest.ErrDuplicateEntry, entry.ContestID)
		}
		return fmt.Errorf("insert contest entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create contest entry: %w", err)
	}
	return nil
}

// rejectedEntryError explains why the conditional increment matched nothing.
// A contest that no longer exists takes no entries, so it reads as closed.
func rejectedEntryError(ctx context.Context, tx *sqlx.Tx, contestID string) error {
	current, ok, err := getContest(ctx, tx, contestID)
	if err != nil {
		return err
	}
	switch {
	case !ok:
		return fmt.Errorf("%w: contest=%s no longer exists", contest.ErrContestClosed, contestID)
	case current.IsFull():
		return fmt.Errorf("%w: contest=%s", contest.ErrContestFull, contestID)
	case !current.IsOpen():
		return fmt.Errorf("%w: contest=%s", contest.ErrContestClosed, contestID)
	default:
		return fmt.Errorf("contest %s rejected entry", contestID)
	}
}

func (r *ContestRepository) ListEntriesByUser(ctx context.Context, userID string) ([]contest.Entry, error) {
	query, args, err := qb.Select(contestEntryColumns...).From("contest_entries").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list contest entries query: %w", err)
	}

	var rows []contestEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list contest entries: %w", err)
	}

	out := make([]contest.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entryFromRow(row))
	}
	return out, nil
}

// Leaderboard lists ranked entries first by rank, then by points descending
// and join time ascending.
func (r *ContestRepository) Leaderboard(ctx context.Context, contestID string) ([]contest.LeaderboardRow, error) {
	query, args, err := qb.Select(
		"e.id AS entry_id",
		"e.user_id",
		"COALESCE(u.name, '') AS user_name",
		"e.team_id",
		"COALESCE(t.name, '') AS team_name",
		"e.points",
		"e.rank_position",
	).
		From("contest_entries e").
		Join("LEFT JOIN users u ON u.id = e.user_id").
		Join("LEFT JOIN fantasy_teams t ON t.id = e.team_id").
		Where(qb.Eq("e.contest_id", contestID)).
		OrderBy(
			"CASE WHEN e.rank_position IS NULL THEN 1 ELSE 0 END",
			"e.rank_position",
			"e.points DESC",
			"e.created_at",
			"e.id",
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build leaderboard query: %w", err)
	}

	var rows []leaderboardQueryModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}

	out := make([]contest.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, contest.LeaderboardRow{
			EntryID:  row.EntryID,
			UserID:   row.UserID,
			UserName: row.UserName,
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			Points:   row.Points,
			Rank:     nullIntToPtr(row.Rank),
		})
	}
	return out, nil
}

func contestFromRow(row contestTableModel) contest.Contest {
	return contest.Contest{
		ID:             row.ID,
		MatchID:        row.MatchID,
		Name:           row.Name,
		Slug:           row.Slug,
		EntryFee:       row.EntryFee,
		PrizePool:      row.PrizePool,
		MaxEntries:     row.MaxEntries,
		CurrentEntries: row.CurrentEntries,
		Status:         contest.Status(row.Status),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func entryFromRow(row contestEntryTableModel) contest.Entry {
	return contest.Entry{
		ID:        row.ID,
		ContestID: row.ContestID,
		UserID:    row.UserID,
		TeamID:    row.TeamID,
		Points:    row.Points,
		Rank:      nullIntToPtr(row.Rank),
		CreatedAt: row.CreatedAt,
	}
}
