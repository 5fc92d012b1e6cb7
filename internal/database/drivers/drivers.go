// Package drivers maps provider names to database adapters.
package drivers

import (
	"fmt"
	"strings"

	"github.com/Rana718/busseed/internal/database"
	"github.com/Rana718/busseed/internal/database/duckdb"
	"github.com/Rana718/busseed/internal/database/mysql"
	"github.com/Rana718/busseed/internal/database/postgres"
	"github.com/Rana718/busseed/internal/database/sqlite"
)

var (
	_ database.DatabaseAdapter = (*duckdb.Adapter)(nil)
	_ database.DatabaseAdapter = (*sqlite.Adapter)(nil)
	_ database.DatabaseAdapter = (*postgres.Adapter)(nil)
	_ database.DatabaseAdapter = (*mysql.Adapter)(nil)
)

// NewAdapter returns an unconnected adapter for provider. An empty provider
// selects DuckDB.
func NewAdapter(provider string) (database.DatabaseAdapter, error) {
	switch strings.ToLower(provider) {
	case "duckdb", "":
		return duckdb.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}
