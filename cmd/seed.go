package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Rana718/busseed/internal/database"
	"github.com/Rana718/busseed/internal/metrics"
	"github.com/Rana718/busseed/internal/seeder"
	"github.com/Rana718/busseed/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seedCount       int
	seedRandomSeed  uint32
	seedSample      int
	seedReplace     bool
	seedMetricsFile string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate bus records and write them to a new table",
	Long: `
Generate synthetic bus records, create the table, insert every record in a
single statement and print a sample read back from the database.

With no configuration this writes 20 records (seed 42) into the table
"buses" of the DuckDB file db.duckdb. Running it again against the same
file fails because the table already exists; pass --replace to drop it.

Examples:
  busseed seed
  busseed seed --count 100 --seed 7
  busseed seed --provider sqlite --db data/buses.sqlite
  busseed seed --replace --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("count") {
			cfg.Seeding.Count = seedCount
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seeding.RandomSeed = seedRandomSeed
		}
		if cmd.Flags().Changed("sample") {
			cfg.Seeding.Sample = seedSample
		}
		if seedMetricsFile != "" {
			cfg.MetricsFile = seedMetricsFile
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}

		if seedReplace {
			force, _ := cmd.Flags().GetBool("force")
			input := &utils.InputUtils{In: os.Stdin, Out: os.Stdout}
			if !input.AskConfirmation(fmt.Sprintf("⚠️  Drop table %s if it already exists?", cfg.Table), force) {
				color.Yellow("Seeding cancelled")
				return nil
			}
		}

		recorder := metrics.NewRecorder()
		start := time.Now()
		rows := 0
		defer func() {
			recordRun(recorder, cfg.Database.Provider, cfg.MetricsFile, rows, time.Since(start), err)
		}()

		ctx := cmd.Context()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		result, err := seeder.New(adapter).Seed(ctx, seeder.SeedConfig{
			Table:      cfg.Table,
			Count:      cfg.Seeding.Count,
			RandomSeed: cfg.Seeding.RandomSeed,
			Sample:     cfg.Seeding.Sample,
			Replace:    seedReplace,
		})
		if err != nil {
			if errors.Is(err, database.ErrTableExists) {
				color.Yellow("💡 Table %s already exists. Use --replace to drop and recreate it.", cfg.Table)
			}
			return err
		}
		rows = result.RowCount

		if result.Sample != nil && len(result.Sample.Rows) > 0 {
			fmt.Println()
			fmt.Println("Sample of created data:")
			utils.DisplayResultsTable(os.Stdout, result.Sample.Columns, result.Sample.Rows)
		}

		fmt.Println()
		color.Green("✅ Seeded %d records into %s", result.RowCount, cfg.Table)
		return nil
	},
}

func recordRun(recorder *metrics.Recorder, provider, metricsFile string, rows int, elapsed time.Duration, err error) {
	outcome := metrics.OutcomeSuccess
	switch {
	case errors.Is(err, database.ErrTableExists):
		outcome = metrics.OutcomeTableExists
	case err != nil:
		outcome = metrics.OutcomeError
	}
	recorder.ObserveRun(provider, outcome, rows, elapsed)

	if metricsFile == "" {
		return
	}
	if werr := recorder.WriteTextfile(metricsFile); werr != nil {
		slog.Warn("failed to write metrics", "path", metricsFile, "error", werr)
	}
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 20, "number of records to generate")
	seedCmd.Flags().Uint32Var(&seedRandomSeed, "seed", 42, "random seed; equal seeds produce identical data")
	seedCmd.Flags().IntVar(&seedSample, "sample", 5, "rows to read back and print")
	seedCmd.Flags().BoolVar(&seedReplace, "replace", false, "drop the table first if it exists")
	seedCmd.Flags().StringVar(&seedMetricsFile, "metrics-file", "", "write run metrics in Prometheus textfile format")
}
