package common

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// SQLBase implements the database/sql backed parts of an adapter. Provider
// packages embed it and add their catalog queries.
type SQLBase struct {
	DB *sql.DB
	QB squirrel.StatementBuilderType

	// ClassifyError maps driver errors to package sentinels such as
	// ErrTableExists. Nil leaves errors untouched.
	ClassifyError func(error) error

	// MaxParams caps bind parameters per statement; 0 means no limit.
	MaxParams int
}

func (b *SQLBase) Close() error {
	if b.DB != nil {
		return b.DB.Close()
	}
	return nil
}

func (b *SQLBase) Ping(ctx context.Context) error {
	return b.DB.PingContext(ctx)
}

func (b *SQLBase) StatementBuilder() squirrel.StatementBuilderType {
	return b.QB
}

func (b *SQLBase) MaxBindParams() int {
	return b.MaxParams
}

func (b *SQLBase) classify(err error) error {
	if err == nil || b.ClassifyError == nil {
		return err
	}
	return b.ClassifyError(err)
}

func (b *SQLBase) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := b.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, b.classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		// Some drivers cannot report affected rows; the statement still ran.
		return -1, nil
	}
	return affected, nil
}

func (b *SQLBase) ExecuteMigration(ctx context.Context, migrationSQL string) error {
	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range ParseSQLStatements(migrationSQL) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement '%s': %w", firstLine(stmt), b.classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration transaction: %w", err)
	}
	return nil
}

func (b *SQLBase) ExecuteQuery(ctx context.Context, query string, args ...interface{}) (*QueryResult, error) {
	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", b.classify(err))
	}
	defer rows.Close()

	return ScanRows(rows)
}

// ScanRows reads every row into a column-keyed map, converting []byte
// values to strings.
func ScanRows(rows *sql.Rows) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if bs, ok := values[i].([]byte); ok {
				row[col] = string(bs)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &QueryResult{
		Columns: columns,
		Rows:    results,
	}, nil
}

func firstLine(stmt string) string {
	if idx := strings.Index(stmt, "\n"); idx > 0 {
		return stmt[:idx] + " ..."
	}
	return stmt
}
