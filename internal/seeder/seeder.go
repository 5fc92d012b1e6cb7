package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rana718/busseed/internal/bus"
	"github.com/Rana718/busseed/internal/database"
	"github.com/Rana718/busseed/internal/database/common"
	"github.com/Rana718/busseed/internal/types"
	"github.com/fatih/color"
)

type Seeder struct {
	adapter database.DatabaseAdapter
	logger  *slog.Logger
}

// New returns a seeder writing through adapter. The adapter must already be
// connected; the caller owns it and closes it.
func New(adapter database.DatabaseAdapter) *Seeder {
	return &Seeder{
		adapter: adapter,
		logger:  slog.Default(),
	}
}

// SchemaTable returns the bus table definition under the given name.
func SchemaTable(name string) types.SchemaTable {
	table := types.SchemaTable{Name: name}
	for _, c := range bus.Columns {
		table.Columns = append(table.Columns, types.SchemaColumn{
			Name:     c.Name,
			Type:     c.Type,
			Nullable: true,
		})
	}
	return table
}

// validateConfig checks cfg before anything touches the database. maxParams
// is the provider's bind parameter limit, 0 for none.
func validateConfig(cfg SeedConfig, maxParams int) error {
	if err := common.ValidateTableName(cfg.Table); err != nil {
		return err
	}
	if cfg.Count < 1 {
		return fmt.Errorf("record count must be at least 1, got %d", cfg.Count)
	}
	if cfg.Sample < 0 {
		return fmt.Errorf("sample size cannot be negative, got %d", cfg.Sample)
	}
	if maxParams > 0 {
		// All records go into a single INSERT.
		maxCount := maxParams / len(bus.Columns)
		if cfg.Count > maxCount {
			return fmt.Errorf("record count %d needs %d bind parameters, the database allows at most %d per statement (max count %d)",
				cfg.Count, cfg.Count*len(bus.Columns), maxParams, maxCount)
		}
	}
	return nil
}

// Seed generates the records, creates the table, inserts every record in a
// single statement and reads the table back. An existing table is an error
// wrapping database.ErrTableExists unless cfg.Replace is set.
func (s *Seeder) Seed(ctx context.Context, cfg SeedConfig) (*Result, error) {
	if err := validateConfig(cfg, s.adapter.MaxBindParams()); err != nil {
		return nil, err
	}

	color.Cyan("🌱 Generating %d bus records (seed %d)...", cfg.Count, cfg.RandomSeed)
	records := NewDataGenerator(cfg.RandomSeed).Generate(cfg.Count)
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("generated record %d is invalid: %w", i, err)
		}
	}

	if err := s.prepareTable(ctx, cfg); err != nil {
		return nil, err
	}

	inserted, err := s.InsertRecords(ctx, cfg.Table, records)
	if err != nil {
		return nil, fmt.Errorf("failed to insert records: %w", err)
	}
	color.Green("  ✅ Inserted %d records into %s", len(records), cfg.Table)

	result, err := s.Verify(ctx, cfg.Table, cfg.Sample)
	if err != nil {
		return nil, err
	}
	result.Records = records
	result.Inserted = inserted

	if result.RowCount != len(records) {
		return result, fmt.Errorf("expected %d rows in %s after insert, found %d", len(records), cfg.Table, result.RowCount)
	}
	return result, nil
}

func (s *Seeder) prepareTable(ctx context.Context, cfg SeedConfig) error {
	exists, err := s.adapter.CheckTableExists(ctx, cfg.Table)
	if err != nil {
		return fmt.Errorf("failed to check for table %s: %w", cfg.Table, err)
	}

	if exists {
		if !cfg.Replace {
			return fmt.Errorf("cannot create %s: %w", cfg.Table, database.ErrTableExists)
		}
		color.Yellow("🗑️  Dropping existing table %s", cfg.Table)
		if err := s.adapter.DropTable(ctx, cfg.Table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", cfg.Table, err)
		}
	}

	return s.CreateTable(ctx, cfg.Table)
}

// CreateTable issues the CREATE TABLE statement for the bus schema.
func (s *Seeder) CreateTable(ctx context.Context, table string) error {
	ddl := s.adapter.GenerateCreateTableSQL(SchemaTable(table))
	s.logger.Debug("creating table", "table", table, "sql", ddl)

	if err := s.adapter.ExecuteMigration(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	color.Cyan("  📋 Created table %s", table)
	return nil
}

// InsertRecords writes all records with one multi-row INSERT.
func (s *Seeder) InsertRecords(ctx context.Context, table string, records []bus.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	insert := s.adapter.StatementBuilder().
		Insert(s.adapter.QuoteIdentifier(table)).
		Columns(bus.ColumnNames()...)
	for _, r := range records {
		insert = insert.Values(r.Values()...)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}
	s.logger.Debug("inserting records", "table", table, "rows", len(records), "args", len(args))

	return s.adapter.Exec(ctx, query, args...)
}

// Verify reads the whole table back, checks every row, and fetches the
// column layout and a sample of at most sample rows.
func (s *Seeder) Verify(ctx context.Context, table string, sample int) (*Result, error) {
	all, err := s.selectRecords(ctx, table, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read back %s: %w", table, err)
	}
	for i, row := range all.Rows {
		r, err := bus.FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", i, table, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", i, table, err)
		}
	}

	columns, err := s.adapter.GetTableColumns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	result := &Result{
		RowCount: len(all.Rows),
		Columns:  columns,
	}

	if sample > 0 {
		result.Sample, err = s.selectRecords(ctx, table, sample)
		if err != nil {
			return nil, fmt.Errorf("failed to read sample of %s: %w", table, err)
		}
	}

	s.logger.Debug("verified table", "table", table, "rows", result.RowCount, "columns", len(columns))
	return result, nil
}

func (s *Seeder) selectRecords(ctx context.Context, table string, limit int) (*common.QueryResult, error) {
	query := s.adapter.StatementBuilder().
		Select(bus.ColumnNames()...).
		From(s.adapter.QuoteIdentifier(table))
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	return s.adapter.ExecuteQuery(ctx, sql, args...)
}
