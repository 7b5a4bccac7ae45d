package repository

import (
	"context"
	"errors"
	"testing"

	"tradedash/internal/config"
	"tradedash/internal/models"
)

// fakeSource отдает заранее заданные строки через DecodeRows
type fakeSource struct {
	body    string
	err     error
	lastQry Query
	calls   int
}

func (f *fakeSource) FetchLatest(ctx context.Context, q Query, sink RowSink) error {
	f.calls++
	f.lastQry = q
	if f.err != nil {
		return f.err
	}
	return sink.DecodeRows([]byte(f.body))
}

func (f *fakeSource) Ping(ctx context.Context) error { return f.err }
func (f *fakeSource) Backend() string                { return "fake" }
func (f *fakeSource) Close() error                   { return nil }

// ============================================================
// Query Tests
// ============================================================

func TestQuerySQL(t *testing.T) {
	q := DefaultTables().Decisions.Query(20)

	expected := "SELECT CAST(decision_time AS TEXT) AS decision_time, action, coin, reason, confidence " +
		"FROM ai_decisions AS src ORDER BY src.decision_time DESC LIMIT 20"
	if got := q.SQL(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestQuerySQL_PlainColumns(t *testing.T) {
	q := Query{Table: "t", Columns: []string{"a", "b"}, OrderBy: "a", Limit: 5}

	expected := "SELECT a, b FROM t AS src ORDER BY src.a DESC LIMIT 5"
	if got := q.SQL(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestQuerySQL_WithSchema(t *testing.T) {
	tables := NewTables("bot", config.TableNames{
		Stats:     "trading_stats",
		Decisions: "ai_decisions",
		Runtime:   "runtime_info",
		Account:   "account_info",
	})
	q := tables.Stats.Query(1)

	if got := q.QualifiedTable(); got != "bot.trading_stats" {
		t.Errorf("expected bot.trading_stats, got %s", got)
	}
	if err := q.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestQueryValidate(t *testing.T) {
	valid := DefaultTables().Runtime.Query(1)

	tests := []struct {
		name   string
		mutate func(q *Query)
	}{
		{"bad table", func(q *Query) { q.Table = "runtime_info; DROP TABLE x" }},
		{"bad schema", func(q *Query) { q.Schema = "a.b" }},
		{"bad order column", func(q *Query) { q.OrderBy = "last_update desc" }},
		{"bad column", func(q *Query) { q.Columns = []string{"*"} }},
		{"no columns", func(q *Query) { q.Columns = nil }},
		{"zero limit", func(q *Query) { q.Limit = 0 }},
		{"text column not selected", func(q *Query) { q.TextColumns = []string{"decision_time"} }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid query rejected: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			q.Columns = append([]string(nil), valid.Columns...)
			tt.mutate(&q)
			if err := q.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// ============================================================
// FetchLatest Tests
// ============================================================

func TestFetchLatest_DecodesRows(t *testing.T) {
	src := &fakeSource{body: `[
		{"decision_time":"2024-05-01T10:00:00+00:00","action":"BUY_OPEN","coin":"BNB","reason":"breakout","confidence":"HIGH"},
		{"decision_time":"2024-05-01T09:00:00+00:00","action":"HOLD","coin":"BNB","reason":"range","confidence":"LOW"}
	]`}

	rows, err := FetchLatest(context.Background(), src, DefaultTables().Decisions, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if *rows[0].Action != models.ActionBuyOpen || *rows[1].Confidence != models.ConfidenceLow {
		t.Errorf("unexpected rows: %+v", rows)
	}
	if src.lastQry.Limit != 20 || src.lastQry.OrderBy != "decision_time" {
		t.Errorf("unexpected query: %+v", src.lastQry)
	}
}

func TestFetchLatest_EmptyIsNoRows(t *testing.T) {
	src := &fakeSource{body: `[]`}

	_, err := FetchLatest(context.Background(), src, DefaultTables().Stats, 1)
	if !errors.Is(err, ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}
}

func TestFetchLatest_WrapsSourceError(t *testing.T) {
	srcErr := errors.New("relation does not exist")
	src := &fakeSource{err: srcErr}

	_, err := FetchLatest(context.Background(), src, DefaultTables().Account, 1)
	if !errors.Is(err, srcErr) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}

func TestFetchLatest_NilSource(t *testing.T) {
	_, err := FetchLatest(context.Background(), nil, DefaultTables().Account, 1)
	if !errors.Is(err, ErrDatastoreNotConfigured) {
		t.Errorf("expected ErrDatastoreNotConfigured, got %v", err)
	}
}

func TestFetchLatest_MalformedBody(t *testing.T) {
	src := &fakeSource{body: `{"message":"not an array"}`}

	_, err := FetchLatest(context.Background(), src, DefaultTables().Runtime, 1)
	if err == nil {
		t.Error("expected decode error, got nil")
	}
}

func TestFetchLatestOrDefault(t *testing.T) {
	def := []models.AccountInfo{}

	tests := []struct {
		name     string
		src      RowSource
		wantRows int
	}{
		{"error", &fakeSource{err: errors.New("boom")}, 0},
		{"no rows", &fakeSource{body: `[]`}, 0},
		{"not configured", NewUnconfiguredSource(), 0},
		{"one row", &fakeSource{body: `[{"total_balance":10}]`}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := FetchLatestOrDefault(context.Background(), tt.src, DefaultTables().Account, 1, def)
			if len(rows) != tt.wantRows {
				t.Errorf("expected %d rows, got %d", tt.wantRows, len(rows))
			}
		})
	}
}

func TestUnconfiguredSource(t *testing.T) {
	src := NewUnconfiguredSource()

	if src.Backend() != "none" {
		t.Errorf("expected backend none, got %s", src.Backend())
	}
	if err := src.Ping(context.Background()); !errors.Is(err, ErrDatastoreNotConfigured) {
		t.Errorf("expected ErrDatastoreNotConfigured, got %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}
