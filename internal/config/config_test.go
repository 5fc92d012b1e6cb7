package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Provider != "duckdb" {
		t.Errorf("Expected provider 'duckdb', got '%s'", cfg.Database.Provider)
	}
	if cfg.Database.Path != "db.duckdb" {
		t.Errorf("Expected path 'db.duckdb', got '%s'", cfg.Database.Path)
	}
	if cfg.Table != "buses" {
		t.Errorf("Expected table 'buses', got '%s'", cfg.Table)
	}
	if cfg.Seeding.Count != 20 {
		t.Errorf("Expected count 20, got %d", cfg.Seeding.Count)
	}
	if cfg.Seeding.RandomSeed != 42 {
		t.Errorf("Expected random seed 42, got %d", cfg.Seeding.RandomSeed)
	}
	if cfg.Seeding.Sample != 5 {
		t.Errorf("Expected sample 5, got %d", cfg.Seeding.Sample)
	}
	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected url_env 'DATABASE_URL', got '%s'", cfg.Database.URLEnv)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("database.provider", "SQLite")
	viper.Set("seeding.count", 0)
	viper.Set("seeding.random_seed", 7)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Provider != "sqlite" {
		t.Errorf("Expected provider 'sqlite', got '%s'", cfg.Database.Provider)
	}
	if cfg.Database.Path != "db.sqlite" {
		t.Errorf("Expected path 'db.sqlite', got '%s'", cfg.Database.Path)
	}
	if cfg.Seeding.RandomSeed != 7 {
		t.Errorf("Expected random seed 7, got %d", cfg.Seeding.RandomSeed)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "seeding.count") {
		t.Errorf("Expected count validation error, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), "busseed.config.json")
	content := `{"table": "coaches", "database": {"provider": "sqlite", "path": "data/fleet.db"}, "seeding": {"sample": 3}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Table != "coaches" {
		t.Errorf("Expected table 'coaches', got '%s'", cfg.Table)
	}
	if cfg.Database.Path != "data/fleet.db" {
		t.Errorf("Expected path 'data/fleet.db', got '%s'", cfg.Database.Path)
	}
	if cfg.Seeding.Sample != 3 {
		t.Errorf("Expected sample 3, got %d", cfg.Seeding.Sample)
	}
	if cfg.Seeding.Count != 20 {
		t.Errorf("Expected default count 20, got %d", cfg.Seeding.Count)
	}
}

func TestValidateProvider(t *testing.T) {
	cfg := &Config{
		Table:      "buses",
		ExportPath: "db/export",
		Database:   Database{Provider: "oracle"},
		Seeding:    Seeding{Count: 20, Sample: 5},
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Expected unsupported provider error")
	}
}

func TestGetDatabaseURL(t *testing.T) {
	t.Setenv("BUSSEED_TEST_URL", "")

	cfg := &Config{Database: Database{Provider: "duckdb", Path: "db.duckdb", URLEnv: "BUSSEED_TEST_URL"}}
	url, err := cfg.GetDatabaseURL()
	if err != nil || url != "db.duckdb" {
		t.Errorf("Expected file path fallback, got %q (%v)", url, err)
	}

	t.Setenv("BUSSEED_TEST_URL", "duckdb://other.duckdb")
	url, err = cfg.GetDatabaseURL()
	if err != nil || url != "duckdb://other.duckdb" {
		t.Errorf("Expected environment URL, got %q (%v)", url, err)
	}

	t.Setenv("BUSSEED_TEST_URL", "")
	cfg.Database.Provider = "postgresql"
	if _, err := cfg.GetDatabaseURL(); err == nil {
		t.Error("Expected error for server provider without URL")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		ExportPath:  filepath.Join(dir, "export"),
		MetricsFile: filepath.Join(dir, "metrics", "busseed.prom"),
		Database:    Database{Provider: "sqlite", Path: filepath.Join(dir, "data", "db.sqlite")},
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, sub := range []string{"metrics", "data"} {
		if _, err := os.Stat(filepath.Join(dir, sub)); os.IsNotExist(err) {
			t.Errorf("Directory %s was not created", sub)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "export")); !os.IsNotExist(err) {
		t.Errorf("Export directory should not be created, stat error: %v", err)
	}
}

func TestGetDatabaseURLExplicitPathWins(t *testing.T) {
	t.Setenv("BUSSEED_TEST_URL", "env.duckdb")

	cfg := &Config{Database: Database{Provider: "duckdb", Path: "db.duckdb", URLEnv: "BUSSEED_TEST_URL"}}
	cfg.SetPath("flag.duckdb")

	url, err := cfg.GetDatabaseURL()
	if err != nil || url != "flag.duckdb" {
		t.Errorf("Expected explicit path, got %q (%v)", url, err)
	}
}

func TestGetDatabaseURLConfigPathWins(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("DATABASE_URL", "env.duckdb")

	viper.Set("database.path", "data/fleet.duckdb")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	url, err := cfg.GetDatabaseURL()
	if err != nil || url != "data/fleet.duckdb" {
		t.Errorf("Expected configured path, got %q (%v)", url, err)
	}
}

func TestGetDatabaseURLSchemeMismatch(t *testing.T) {
	t.Setenv("BUSSEED_TEST_URL", "postgres://u:p@localhost:5432/transit")

	cfg := &Config{Database: Database{Provider: "sqlite", Path: "db.sqlite", URLEnv: "BUSSEED_TEST_URL"}}
	url, err := cfg.GetDatabaseURL()
	if err != nil || url != "db.sqlite" {
		t.Errorf("Expected default sqlite file, got %q (%v)", url, err)
	}

	t.Setenv("BUSSEED_TEST_URL", "sqlite://other.sqlite")
	url, err = cfg.GetDatabaseURL()
	if err != nil || url != "sqlite://other.sqlite" {
		t.Errorf("Expected sqlite URL from environment, got %q (%v)", url, err)
	}

	t.Setenv("BUSSEED_TEST_URL", "postgres://u:p@localhost:5432/transit")
	cfg.Database.Provider = "mysql"
	if _, err := cfg.GetDatabaseURL(); err == nil || !strings.Contains(err.Error(), "mysql") {
		t.Errorf("Expected scheme mismatch error, got %v", err)
	}

	cfg.Database.Provider = "postgresql"
	if url, err := cfg.GetDatabaseURL(); err != nil || !strings.HasPrefix(url, "postgres://") {
		t.Errorf("Expected postgres URL, got %q (%v)", url, err)
	}
}
