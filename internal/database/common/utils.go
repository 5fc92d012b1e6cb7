package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Rana718/busseed/internal/types"
)

// ErrTableExists is returned when a CREATE TABLE targets a table that is
// already present.
var ErrTableExists = errors.New("table already exists")

// Pre-compiled regex patterns for SQL parsing
var (
	commentRegex    = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex     = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")
	validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

type QueryResult struct {
	Columns []string
	Rows    []map[string]interface{}
}

// IsValidIdentifier checks if a string is a valid SQL identifier
func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// ValidateTableName rejects names that cannot be used unquoted in DDL.
func ValidateTableName(name string) error {
	if !IsValidIdentifier(name) {
		return fmt.Errorf("invalid table name: %s", name)
	}
	return nil
}

// ParseSQLStatements splits a script on semicolons that are not inside
// string literals, dropping line comments.
func ParseSQLStatements(sql string) []string {
	sql = commentRegex.ReplaceAllString(sql, "")

	stringPositions := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(sql, -1) {
		for i := match[0]; i < match[1]; i++ {
			stringPositions[i] = true
		}
	}

	estimatedStmts := strings.Count(sql, ";") + 1
	statements := make([]string, 0, estimatedStmts)

	var currentStatement strings.Builder
	currentStatement.Grow(len(sql) / estimatedStmts)

	for i, char := range sql {
		if char == ';' && !stringPositions[i] {
			stmt := strings.TrimSpace(currentStatement.String())
			if stmt != "" && !strings.HasPrefix(stmt, "/*") {
				statements = append(statements, stmt)
			}
			currentStatement.Reset()
		} else {
			currentStatement.WriteRune(char)
		}
	}

	if currentStatement.Len() > 0 {
		stmt := strings.TrimSpace(currentStatement.String())
		if stmt != "" && !strings.HasPrefix(stmt, "/*") {
			statements = append(statements, stmt)
		}
	}

	return statements
}

// BuildCreateTableSQL renders a CREATE TABLE statement. There is no
// IF NOT EXISTS guard: creating over an existing table is an error.
func BuildCreateTableSQL(table types.SchemaTable, quote func(string) string, mapType func(string) string) string {
	lines := make([]string, 0, len(table.Columns)+2)
	lines = append(lines, fmt.Sprintf("CREATE TABLE %s (", quote(table.Name)))

	for i, column := range table.Columns {
		comma := ","
		if i == len(table.Columns)-1 {
			comma = ""
		}
		def := fmt.Sprintf("  %s %s", quote(column.Name), mapType(column.Type))
		if !column.Nullable {
			def += " NOT NULL"
		}
		lines = append(lines, def+comma)
	}

	lines = append(lines, ")")
	return strings.Join(lines, "\n")
}

// QuoteDouble quotes an identifier with ANSI double quotes.
func QuoteDouble(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// IsAlreadyExists reports whether a driver error message describes a
// duplicate table. Used for drivers without structured error codes.
func IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "already exists")
}
