package database

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/busseed/internal/database/common"
	"github.com/Rana718/busseed/internal/types"
)

// ErrTableExists is returned when the target table is already present.
var ErrTableExists = common.ErrTableExists

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Schema operations
	CheckTableExists(ctx context.Context, tableName string) (bool, error)
	GetTableColumns(ctx context.Context, tableName string) ([]types.SchemaColumn, error)
	GetAllTableNames(ctx context.Context) ([]string, error)
	DropTable(ctx context.Context, tableName string) error
	ExecuteMigration(ctx context.Context, migrationSQL string) error

	// Data operations
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
	ExecuteQuery(ctx context.Context, query string, args ...interface{}) (*common.QueryResult, error)

	// SQL generation
	GenerateCreateTableSQL(table types.SchemaTable) string
	MapColumnType(logicalType string) string
	QuoteIdentifier(name string) string
	StatementBuilder() squirrel.StatementBuilderType

	// MaxBindParams is the most bind parameters one statement may carry,
	// or 0 when the provider has no fixed limit.
	MaxBindParams() int
}
