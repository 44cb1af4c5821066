package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("e.id", "u.name").
		From("contest_entries e").
		Join("LEFT JOIN users u ON u.id = e.user_id").
		Where(Eq("e.contest_id", "c1"), IsNull("e.rank"), InStrings("e.user_id", []string{"u1", "u2"})).
		OrderBy("e.points DESC", "e.created_at").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT e.id, u.name FROM contest_entries e LEFT JOIN users u ON u.id = e.user_id WHERE e.contest_id = ? AND e.rank IS NULL AND e.user_id IN (?, ?) ORDER BY e.points DESC, e.created_at LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "c1" || args[2] != "u2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("contests").Where(InStrings("match_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM contests WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("contests").
		Columns("id", "slug").
		Values("c1", "mega-contest").
		Values("c2", "practice-contest").
		Suffix("ON CONFLICT (match_id, slug) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO contests (id, slug) VALUES (?, ?), (?, ?) ON CONFLICT (match_id, slug) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "c1" || args[3] != "practice-contest" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	if _, _, err := InsertInto("users").Columns("id", "name").Values("u1").ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("contests").
		SetExpr("current_entries", "current_entries + ?", 1).
		Set("updated_at", "now").
		Where(Eq("id", "c1"), Eq("status", "upcoming"), Expr("current_entries < max_entries")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE contests SET current_entries = current_entries + ?, updated_at = ? WHERE id = ? AND status = ? AND current_entries < max_entries"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != 1 || args[2] != "c1" || args[3] != "upcoming" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type testRow struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Ignored string `db:"-"`
	local   string
}

func TestInsertModels(t *testing.T) {
	query, args, err := InsertModels("users", []any{
		testRow{ID: "u1", Name: "Asha"},
		&testRow{ID: "u2", Name: "Ravi"},
	}, "")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}
	if query != "INSERT INTO users (id, name) VALUES (?, ?), (?, ?)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 4 || args[2] != "u2" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels("users", nil, ""); err == nil {
		t.Fatalf("expected error for empty model list")
	}
}
