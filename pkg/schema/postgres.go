package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const columnsQuery = `SELECT column_name, is_nullable
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position`

// Querier is satisfied by *pgx.Conn, *pgxpool.Pool, and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgresTable reads the columns of schemaName.table from the catalog.
// NOT NULL columns get a not_null rule.
func LoadPostgresTable(ctx context.Context, q Querier, schemaName, table string) (*Table, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	rows, err := q.Query(ctx, columnsQuery, schemaName, table)
	if err != nil {
		return nil, fmt.Errorf("schema: query columns of %s.%s: %w", schemaName, table, err)
	}
	defer rows.Close()

	out := NewTable(table)
	for rows.Next() {
		var (
			column   string
			nullable string
		)
		if err := rows.Scan(&column, &nullable); err != nil {
			return nil, fmt.Errorf("schema: scan column of %s.%s: %w", schemaName, table, err)
		}
		out.columns = append(out.columns, column)
		if nullable == "NO" {
			out.Validate(column, NewRule(KindNotNull))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schema: read columns of %s.%s: %w", schemaName, table, err)
	}
	if len(out.columns) == 0 {
		return nil, fmt.Errorf("schema: table %s.%s has no columns", schemaName, table)
	}
	return out, nil
}
