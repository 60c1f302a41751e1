package schema_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/goliatone/go-presenter/pkg/schema"
)

type fakeRows struct {
	rows   [][2]string
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) != 2 {
		return fmt.Errorf("expected 2 destinations, got %d", len(dest))
	}
	row := r.rows[r.pos-1]
	*(dest[0].(*string)) = row[0]
	*(dest[1].(*string)) = row[1]
	return nil
}

func (r *fakeRows) Values() ([]any, error) {
	row := r.rows[r.pos-1]
	return []any{row[0], row[1]}, nil
}

type fakeQuerier struct {
	rows *fakeRows
	err  error
	args []any
}

func (q *fakeQuerier) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	q.args = args
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestLoadPostgresTable(t *testing.T) {
	rows := &fakeRows{rows: [][2]string{
		{"id", "NO"},
		{"name", "NO"},
		{"notes", "YES"},
		{"company_id", "YES"},
	}}
	q := &fakeQuerier{rows: rows}

	table, err := schema.LoadPostgresTable(context.Background(), q, "", "projects")
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if !rows.closed {
		t.Fatalf("expected rows to be closed")
	}
	if diff := cmp.Diff([]any{"public", "projects"}, q.args); diff != "" {
		t.Fatalf("query args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"id", "name", "notes", "company_id"}, table.AttributeNames()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if rules := table.ValidationRules("name"); len(rules) != 1 || rules[0].Kind != schema.KindNotNull {
		t.Fatalf("expected not_null rule on name, got %+v", rules)
	}
	if rules := table.ValidationRules("notes"); len(rules) != 0 {
		t.Fatalf("expected nullable column without rules, got %+v", rules)
	}
}

func TestLoadPostgresTable_Errors(t *testing.T) {
	queryErr := errors.New("connection refused")
	if _, err := schema.LoadPostgresTable(context.Background(), &fakeQuerier{err: queryErr}, "public", "projects"); !errors.Is(err, queryErr) {
		t.Fatalf("expected query error to be wrapped, got %v", err)
	}

	rowsErr := errors.New("broken stream")
	q := &fakeQuerier{rows: &fakeRows{err: rowsErr}}
	if _, err := schema.LoadPostgresTable(context.Background(), q, "public", "projects"); !errors.Is(err, rowsErr) {
		t.Fatalf("expected rows error to be wrapped, got %v", err)
	}

	empty := &fakeQuerier{rows: &fakeRows{}}
	if _, err := schema.LoadPostgresTable(context.Background(), empty, "public", "missing"); err == nil {
		t.Fatalf("expected error for table without columns")
	}
}
