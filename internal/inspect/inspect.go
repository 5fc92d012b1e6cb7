// Package inspect holds the read-only queries run against a seeded table.
package inspect

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/busseed/internal/bus"
	"github.com/Rana718/busseed/internal/database"
	"github.com/Rana718/busseed/internal/database/common"
)

// AreaExpr is the planar envelope area of a record in squared degrees.
const AreaExpr = "(lng_max - lng_min) * (lat_max - lat_min)"

type ShowOptions struct {
	Company string
	Region  string
	Limit   int
}

// Filters are the distinct values a listing can be narrowed by.
type Filters struct {
	Companies []string `json:"companies" yaml:"companies"`
	Regions   []string `json:"regions" yaml:"regions"`
}

type Inspector struct {
	adapter database.DatabaseAdapter
	table   string
}

func New(adapter database.DatabaseAdapter, table string) (*Inspector, error) {
	if err := common.ValidateTableName(table); err != nil {
		return nil, err
	}
	return &Inspector{adapter: adapter, table: table}, nil
}

func (i *Inspector) ensureTable(ctx context.Context) error {
	exists, err := i.adapter.CheckTableExists(ctx, i.table)
	if err != nil {
		return fmt.Errorf("failed to check for table %s: %w", i.table, err)
	}
	if !exists {
		return fmt.Errorf("table %s does not exist, run 'busseed seed' first", i.table)
	}
	return nil
}

// Show lists records with their area, narrowed by the non-empty options.
func (i *Inspector) Show(ctx context.Context, opts ShowOptions) (*common.QueryResult, error) {
	if opts.Limit < 0 {
		return nil, fmt.Errorf("limit cannot be negative, got %d", opts.Limit)
	}
	if err := i.ensureTable(ctx); err != nil {
		return nil, err
	}

	query := i.adapter.StatementBuilder().
		Select(AreaExpr + " AS area").
		Columns(bus.ColumnNames()...).
		From(i.adapter.QuoteIdentifier(i.table))
	if opts.Company != "" {
		query = query.Where(squirrel.Eq{"company": opts.Company})
	}
	if opts.Region != "" {
		query = query.Where(squirrel.Eq{"region": opts.Region})
	}
	if opts.Limit > 0 {
		query = query.Limit(uint64(opts.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := i.adapter.ExecuteQuery(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", i.table, err)
	}
	return result, nil
}

// Filters returns the sorted distinct companies and regions in the table.
func (i *Inspector) Filters(ctx context.Context) (*Filters, error) {
	if err := i.ensureTable(ctx); err != nil {
		return nil, err
	}

	companies, err := i.distinct(ctx, "company")
	if err != nil {
		return nil, err
	}
	regions, err := i.distinct(ctx, "region")
	if err != nil {
		return nil, err
	}
	return &Filters{Companies: companies, Regions: regions}, nil
}

func (i *Inspector) distinct(ctx context.Context, column string) ([]string, error) {
	sql, args, err := i.adapter.StatementBuilder().
		Select(column).
		Distinct().
		From(i.adapter.QuoteIdentifier(i.table)).
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := i.adapter.ExecuteQuery(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read distinct %s: %w", column, err)
	}

	values := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		if v, ok := row[column].(string); ok {
			values = append(values, v)
		}
	}
	// Collation differs per provider.
	sort.Strings(values)
	return values, nil
}
