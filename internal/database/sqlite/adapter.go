package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/busseed/internal/database/common"
	"github.com/Rana718/busseed/internal/types"
	_ "github.com/mattn/go-sqlite3"
)

// SQLITE_MAX_VARIABLE_NUMBER of the bundled library
const maxBindParams = 32766

type Adapter struct {
	common.SQLBase
	path string
}

var typeMap = map[string]string{
	"text": "TEXT", "varchar": "TEXT", "char": "TEXT", "string": "TEXT",
	"float64": "REAL", "real": "REAL", "double": "REAL", "float": "REAL",
	"int": "INTEGER", "integer": "INTEGER", "bigint": "INTEGER",
	"bool": "INTEGER", "boolean": "INTEGER",
	"date": "TEXT", "datetime": "TEXT", "timestamp": "TEXT",
}

func New() *Adapter {
	return &Adapter{
		SQLBase: common.SQLBase{
			QB:            squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
			ClassifyError: classifyError,
			MaxParams:     maxBindParams,
		},
	}
}

func classifyError(err error) error {
	if common.IsAlreadyExists(err) {
		return fmt.Errorf("%w: %v", common.ErrTableExists, err)
	}
	return err
}

// Connect opens (creating if absent) the database file. Accepts a bare path
// or a sqlite:// URL.
func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	s.path = dbPath
	if idx := strings.Index(s.path, "?"); idx > 0 {
		s.path = s.path[:idx]
	}
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to open SQLite database %s: %w", s.path, err)
	}

	s.DB = db
	return nil
}

func (s *Adapter) Path() string {
	return s.path
}

func (s *Adapter) MapColumnType(logicalType string) string {
	if mapped, exists := typeMap[strings.ToLower(logicalType)]; exists {
		return mapped
	}
	return strings.ToUpper(logicalType)
}

func (s *Adapter) QuoteIdentifier(name string) string {
	return common.QuoteDouble(name)
}

func (s *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.BuildCreateTableSQL(table, s.QuoteIdentifier, s.MapColumnType)
}
