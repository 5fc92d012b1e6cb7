package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/busseed/internal/database/common"
	"github.com/Rana718/busseed/internal/types"
	_ "github.com/marcboeker/go-duckdb"
)

type Adapter struct {
	common.SQLBase
	path string
}

var typeMap = map[string]string{
	"text": "VARCHAR", "varchar": "VARCHAR", "string": "VARCHAR",
	"float64": "DOUBLE", "double": "DOUBLE", "float": "DOUBLE", "real": "DOUBLE",
	"int": "INTEGER", "integer": "INTEGER", "bigint": "BIGINT",
	"bool": "BOOLEAN", "boolean": "BOOLEAN",
	"timestamp": "TIMESTAMP", "date": "DATE",
}

func New() *Adapter {
	return &Adapter{
		SQLBase: common.SQLBase{
			QB:            squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
			ClassifyError: classifyError,
		},
	}
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Adapter {
	a := New()
	a.DB = db
	return a
}

func classifyError(err error) error {
	if common.IsAlreadyExists(err) {
		return fmt.Errorf("%w: %v", common.ErrTableExists, err)
	}
	return err
}

// Connect opens (creating if absent) the database file. Accepts a bare
// path or a duckdb:// URL.
func (d *Adapter) Connect(ctx context.Context, url string) error {
	d.path = strings.TrimPrefix(url, "duckdb://")

	db, err := sql.Open("duckdb", d.path)
	if err != nil {
		return fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to open DuckDB database %s: %w", d.path, err)
	}

	d.DB = db
	return nil
}

func (d *Adapter) Path() string {
	return d.path
}

func (d *Adapter) MapColumnType(logicalType string) string {
	if mapped, exists := typeMap[strings.ToLower(logicalType)]; exists {
		return mapped
	}
	return strings.ToUpper(logicalType)
}

func (d *Adapter) QuoteIdentifier(name string) string {
	return common.QuoteDouble(name)
}

func (d *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.BuildCreateTableSQL(table, d.QuoteIdentifier, d.MapColumnType)
}
