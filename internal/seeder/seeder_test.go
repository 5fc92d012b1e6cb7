package seeder

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Rana718/busseed/internal/bus"
	"github.com/Rana718/busseed/internal/database"
	"github.com/Rana718/busseed/internal/database/mysql"
	gomysql "github.com/go-sql-driver/mysql"
)

func recordRows(records []bus.Record) *sqlmock.Rows {
	rows := sqlmock.NewRows(bus.ColumnNames())
	for _, r := range records {
		values := make([]driver.Value, 0, len(bus.Columns))
		for _, v := range r.Values() {
			values = append(values, v)
		}
		rows.AddRow(values...)
	}
	return rows
}

func columnRows() *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"column_name", "column_type", "is_nullable"})
	for _, c := range bus.Columns {
		typ := "double"
		if c.Type == bus.TypeText {
			typ = "varchar(64)"
		}
		rows.AddRow(c.Name, typ, "YES")
	}
	return rows
}

func newMockSeeder(t *testing.T) (*Seeder, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(mysql.NewWithDB(db)), mock
}

func expectTableExists(mock sqlmock.Sqlmock, exists bool) {
	count := 0
	if exists {
		count = 1
	}
	mock.ExpectQuery("information_schema\\.tables").WithArgs("buses").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func expectCreateAndInsert(mock sqlmock.Sqlmock, records []bus.Record) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `buses` (")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `buses` (bus_number,company,region,lat_min,lat_max,lng_min,lng_max) VALUES")).
		WillReturnResult(sqlmock.NewResult(0, int64(len(records))))
}

func expectVerify(mock sqlmock.Sqlmock, records []bus.Record, sample int) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT bus_number, company, region, lat_min, lat_max, lng_min, lng_max FROM `buses`") + "$").
		WillReturnRows(recordRows(records))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("buses").
		WillReturnRows(columnRows())
	mock.ExpectQuery(regexp.QuoteMeta("FROM `buses` LIMIT 5")).
		WillReturnRows(recordRows(records[:sample]))
}

func TestSeedFreshTable(t *testing.T) {
	s, mock := newMockSeeder(t)
	records := NewDataGenerator(42).Generate(20)

	expectTableExists(mock, false)
	expectCreateAndInsert(mock, records)
	expectVerify(mock, records, 5)

	result, err := s.Seed(context.Background(), SeedConfig{Table: "buses", Count: 20, RandomSeed: 42, Sample: 5})
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	if result.Inserted != 20 {
		t.Errorf("Expected 20 inserted, got %d", result.Inserted)
	}
	if result.RowCount != 20 {
		t.Errorf("Expected row count 20, got %d", result.RowCount)
	}
	if len(result.Columns) != 7 || result.Columns[0].Name != "bus_number" || result.Columns[6].Name != "lng_max" {
		t.Errorf("Unexpected columns: %+v", result.Columns)
	}
	if result.Sample == nil || len(result.Sample.Rows) != 5 {
		t.Fatalf("Expected 5 sample rows, got %+v", result.Sample)
	}
	if result.Sample.Rows[0]["bus_number"] != "103" {
		t.Errorf("Expected first sample bus_number 103, got %v", result.Sample.Rows[0]["bus_number"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedSingleInsertStatement(t *testing.T) {
	s, mock := newMockSeeder(t)
	records := NewDataGenerator(42).Generate(3)

	args := make([]driver.Value, 0, 21)
	for _, r := range records {
		for _, v := range r.Values() {
			args = append(args, v)
		}
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `buses` (bus_number,company,region,lat_min,lat_max,lng_min,lng_max) VALUES (?,?,?,?,?,?,?),(?,?,?,?,?,?,?),(?,?,?,?,?,?,?)")).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.InsertRecords(context.Background(), "buses", records)
	if err != nil {
		t.Fatalf("InsertRecords failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 rows affected, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedExistingTableFails(t *testing.T) {
	s, mock := newMockSeeder(t)

	expectTableExists(mock, true)

	_, err := s.Seed(context.Background(), SeedConfig{Table: "buses", Count: 20, RandomSeed: 42, Sample: 5})
	if !errors.Is(err, database.ErrTableExists) {
		t.Fatalf("Expected ErrTableExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedReplaceDropsTable(t *testing.T) {
	s, mock := newMockSeeder(t)
	records := NewDataGenerator(42).Generate(20)

	expectTableExists(mock, true)
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS `buses`")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectCreateAndInsert(mock, records)
	expectVerify(mock, records, 5)

	_, err := s.Seed(context.Background(), SeedConfig{Table: "buses", Count: 20, RandomSeed: 42, Sample: 5, Replace: true})
	if err != nil {
		t.Fatalf("Seed with replace failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedCreateCollisionFromDriver(t *testing.T) {
	s, mock := newMockSeeder(t)

	// The table appears between the existence check and CREATE TABLE.
	expectTableExists(mock, false)
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE").
		WillReturnError(&gomysql.MySQLError{Number: 1050, Message: "Table 'buses' already exists"})
	mock.ExpectRollback()

	_, err := s.Seed(context.Background(), SeedConfig{Table: "buses", Count: 20, RandomSeed: 42, Sample: 5})
	if !errors.Is(err, database.ErrTableExists) {
		t.Fatalf("Expected ErrTableExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedRowCountMismatch(t *testing.T) {
	s, mock := newMockSeeder(t)
	records := NewDataGenerator(42).Generate(20)

	expectTableExists(mock, false)
	expectCreateAndInsert(mock, records)
	mock.ExpectQuery("FROM `buses`$").WillReturnRows(recordRows(records[:19]))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("buses").WillReturnRows(columnRows())

	_, err := s.Seed(context.Background(), SeedConfig{Table: "buses", Count: 20, RandomSeed: 42})
	if err == nil {
		t.Fatal("Expected row count mismatch error")
	}
}

func TestSeedInvalidConfig(t *testing.T) {
	s, mock := newMockSeeder(t)

	tests := []SeedConfig{
		{Table: "buses", Count: 0},
		{Table: "buses", Count: 20, Sample: -1},
		{Table: "buses; DROP TABLE x", Count: 20},
	}
	for _, cfg := range tests {
		if _, err := s.Seed(context.Background(), cfg); err == nil {
			t.Errorf("Expected error for config %+v", cfg)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("Expected no database calls: %v", err)
	}
}

func TestSeedRejectsCountOverBindLimit(t *testing.T) {
	s, mock := newMockSeeder(t)

	// MySQL allows 65535 placeholders, 9362 records of 7 columns.
	_, err := s.Seed(context.Background(), SeedConfig{Table: "buses", Count: 9363, RandomSeed: 42})
	if err == nil || !strings.Contains(err.Error(), "max count 9362") {
		t.Fatalf("Expected bind limit error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("Expected no database calls: %v", err)
	}
}

func TestValidateConfigBindLimit(t *testing.T) {
	tests := []struct {
		count     int
		maxParams int
		wantErr   bool
	}{
		{4680, 32766, false},
		{4681, 32766, true},
		{9362, 65535, false},
		{100000, 0, false},
	}
	for _, tt := range tests {
		err := validateConfig(SeedConfig{Table: "buses", Count: tt.count}, tt.maxParams)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateConfig(count=%d, max=%d) error = %v, wantErr %v", tt.count, tt.maxParams, err, tt.wantErr)
		}
	}
}
