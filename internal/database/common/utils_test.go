package common

import (
	"errors"
	"strings"
	"testing"

	"github.com/Rana718/busseed/internal/types"
)

func TestParseSQLStatements(t *testing.T) {
	sql := `-- create table
CREATE TABLE a (x TEXT);
INSERT INTO a VALUES ('one;two');

DROP TABLE b`

	stmts := ParseSQLStatements(sql)
	if len(stmts) != 3 {
		t.Fatalf("Expected 3 statements, got %d: %q", len(stmts), stmts)
	}
	if stmts[1] != "INSERT INTO a VALUES ('one;two')" {
		t.Errorf("semicolon inside string literal split the statement: %q", stmts[1])
	}
	if stmts[2] != "DROP TABLE b" {
		t.Errorf("trailing statement = %q", stmts[2])
	}
}

func TestBuildCreateTableSQL(t *testing.T) {
	table := types.SchemaTable{
		Name: "buses",
		Columns: []types.SchemaColumn{
			{Name: "bus_number", Type: "text", Nullable: true},
			{Name: "lat_min", Type: "float64", Nullable: false},
		},
	}

	got := BuildCreateTableSQL(table, QuoteDouble, strings.ToUpper)
	want := "CREATE TABLE \"buses\" (\n  \"bus_number\" TEXT,\n  \"lat_min\" FLOAT64 NOT NULL\n)"
	if got != want {
		t.Errorf("BuildCreateTableSQL() =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(got, "IF NOT EXISTS") {
		t.Error("CREATE TABLE must fail on an existing table")
	}
}

func TestValidateTableName(t *testing.T) {
	for _, name := range []string{"buses", "_tmp", "Bus2"} {
		if err := ValidateTableName(name); err != nil {
			t.Errorf("ValidateTableName(%q) error: %v", name, err)
		}
	}
	for _, name := range []string{"", "2buses", "bus es", "buses;", `bus"es`} {
		if err := ValidateTableName(name); err == nil {
			t.Errorf("ValidateTableName(%q) expected error", name)
		}
	}
}

func TestQuoteDouble(t *testing.T) {
	if got := QuoteDouble(`a"b`); got != `"a""b"` {
		t.Errorf("QuoteDouble() = %s", got)
	}
}

func TestIsAlreadyExists(t *testing.T) {
	if !IsAlreadyExists(errors.New("table buses already exists")) {
		t.Error("expected sqlite message to match")
	}
	if !IsAlreadyExists(errors.New(`Catalog Error: Table with name "buses" already exists!`)) {
		t.Error("expected duckdb message to match")
	}
	if IsAlreadyExists(errors.New("disk I/O error")) || IsAlreadyExists(nil) {
		t.Error("unexpected match")
	}
}
