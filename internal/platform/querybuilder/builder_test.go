package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "abbreviation").
		From("teams").
		Where(Eq("conference", "NFC"), In("division", []any{"North", "South"})).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, abbreviation FROM teams WHERE conference = $1 AND division IN ($2, $3) ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "NFC" || args[2] != "South" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("players").Where(In("team_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_OnConflictUpdatesNonKeyColumns(t *testing.T) {
	query, args, err := InsertInto("games").
		Columns("event", "home_score", "away_score").
		Values("401", 21, 17).
		OnConflict("event").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO games (event, home_score, away_score) VALUES ($1, $2, $3) " +
		"ON CONFLICT (event) DO UPDATE SET home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "401" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_ExplicitUpdateColumns(t *testing.T) {
	query, _, err := InsertInto("team_rank_snapshots").
		Columns("team_id", "off_pass_yards_rank", "updated_at").
		Values(int64(1), 2, "now").
		OnConflict("team_id").
		DoUpdate("off_pass_yards_rank").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO team_rank_snapshots (team_id, off_pass_yards_rank, updated_at) VALUES ($1, $2, $3) " +
		"ON CONFLICT (team_id) DO UPDATE SET off_pass_yards_rank = EXCLUDED.off_pass_yards_rank"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestInsertBuilder_ConflictWithoutUpdatableColumns(t *testing.T) {
	_, _, err := InsertInto("t").Columns("id").Values(1).OnConflict("id").ToSQL()
	if err == nil {
		t.Fatalf("expected error when every column is part of the conflict target")
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	if err == nil {
		t.Fatalf("expected error for mismatched row width")
	}
}

func TestUpsertModel_SkipsReadonlyColumns(t *testing.T) {
	type row struct {
		ID           int64  `db:"id,readonly"`
		Abbreviation string `db:"abbreviation"`
		Nickname     string `db:"nickname"`
		internal     string `db:"internal"`
	}

	query, args, err := UpsertModel("teams", row{ID: 9, Abbreviation: "GB", Nickname: "Packers", internal: "x"}, []string{"abbreviation"}, "id")
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (abbreviation, nickname) VALUES ($1, $2) " +
		"ON CONFLICT (abbreviation) DO UPDATE SET nickname = EXCLUDED.nickname RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "GB" || args[1] != "Packers" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpsertModel_RequiresConflictColumns(t *testing.T) {
	type row struct {
		Name string `db:"name"`
	}
	if _, _, err := UpsertModel("t", row{Name: "x"}, nil); err == nil {
		t.Fatalf("expected error without conflict columns")
	}
}
