package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rana718/busseed/internal/database/common"
	"github.com/Rana718/busseed/internal/types"
)

func (s *Adapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = ?",
		tableName).Scan(&exists)
	return exists, err
}

func (s *Adapter) GetTableColumns(ctx context.Context, tableName string) ([]types.SchemaColumn, error) {
	// PRAGMA does not take parameters
	if err := common.ValidateTableName(tableName); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", s.QuoteIdentifier(tableName)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []types.SchemaColumn
	for rows.Next() {
		var cid int
		var column types.SchemaColumn
		var notNull int
		var defaultValue sql.NullString
		var pk int

		if err := rows.Scan(&cid, &column.Name, &column.Type, &notNull, &defaultValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", tableName, err)
		}
		column.Nullable = notNull == 0
		columns = append(columns, column)
	}
	return columns, rows.Err()
}

func (s *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

func (s *Adapter) DropTable(ctx context.Context, tableName string) error {
	if err := common.ValidateTableName(tableName); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", s.QuoteIdentifier(tableName)))
	return err
}
