package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Version     string   `json:"version" mapstructure:"version"`
	Table       string   `json:"table" mapstructure:"table"`
	ExportPath  string   `json:"export_path" mapstructure:"export_path"`
	MetricsFile string   `json:"metrics_file,omitempty" mapstructure:"metrics_file"`
	Database    Database `json:"database" mapstructure:"database"`
	Seeding     Seeding  `json:"seeding" mapstructure:"seeding"`
	Log         Log      `json:"log" mapstructure:"log"`

	// pathSet records that the database path came from the config file or
	// a flag rather than a provider default.
	pathSet bool
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	Path     string `json:"path" mapstructure:"path"`       // file path for embedded providers
	URLEnv   string `json:"url_env" mapstructure:"url_env"` // overrides Path when set in the environment
}

type Seeding struct {
	Count      int    `json:"count" mapstructure:"count"`
	RandomSeed uint32 `json:"random_seed" mapstructure:"random_seed"`
	Sample     int    `json:"sample" mapstructure:"sample"`
}

type Log struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

const (
	DefaultProvider   = "duckdb"
	DefaultPath       = "db.duckdb"
	DefaultTable      = "buses"
	DefaultCount      = 20
	DefaultRandomSeed = 42
	DefaultSample     = 5
)

var supportedProviders = []string{"duckdb", "sqlite", "sqlite3", "postgresql", "postgres", "mysql"}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = "db/export"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = DefaultProvider
	}
	cfg.Database.Provider = strings.ToLower(cfg.Database.Provider)
	cfg.pathSet = viper.IsSet("database.path") && cfg.Database.Path != ""
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultPathFor(cfg.Database.Provider)
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if !viper.IsSet("seeding.count") {
		cfg.Seeding.Count = DefaultCount
	}
	if !viper.IsSet("seeding.random_seed") {
		cfg.Seeding.RandomSeed = DefaultRandomSeed
	}
	if !viper.IsSet("seeding.sample") {
		cfg.Seeding.Sample = DefaultSample
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return &cfg, nil
}

// DefaultPathFor returns the database file used by an embedded provider.
func DefaultPathFor(provider string) string {
	switch provider {
	case "sqlite", "sqlite3":
		return "db.sqlite"
	case "duckdb":
		return DefaultPath
	default:
		return ""
	}
}

// IsEmbedded reports whether the provider stores the database in a local file.
func (c *Config) IsEmbedded() bool {
	switch c.Database.Provider {
	case "duckdb", "sqlite", "sqlite3":
		return true
	default:
		return false
	}
}

// SetPath sets an explicit database file path, which takes precedence over
// the url_env variable for embedded providers.
func (c *Config) SetPath(path string) {
	c.Database.Path = path
	c.pathSet = path != ""
}

// GetDatabaseURL returns the connection URL. An explicitly configured path
// wins for embedded providers; otherwise the environment variable named by
// url_env is used when its scheme fits the provider, and embedded providers
// fall back to their default file.
func (c *Config) GetDatabaseURL() (string, error) {
	if c.IsEmbedded() && c.pathSet {
		return c.Database.Path, nil
	}

	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		if c.acceptsURL(dbURL) {
			return dbURL, nil
		}
		if !c.IsEmbedded() {
			return "", fmt.Errorf("%s does not hold a %s URL", c.Database.URLEnv, c.Database.Provider)
		}
	}

	if c.IsEmbedded() && c.Database.Path != "" {
		return c.Database.Path, nil
	}
	return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
}

var providerSchemes = map[string][]string{
	"duckdb":     {"duckdb"},
	"sqlite":     {"sqlite", "sqlite3"},
	"sqlite3":    {"sqlite", "sqlite3"},
	"postgresql": {"postgres", "postgresql"},
	"postgres":   {"postgres", "postgresql"},
	"mysql":      {"mysql"},
}

// acceptsURL reports whether url can be handed to the provider's adapter.
// Scheme-less values (file paths, driver DSNs) are accepted.
func (c *Config) acceptsURL(url string) bool {
	idx := strings.Index(url, "://")
	if idx <= 0 {
		return true
	}
	scheme := strings.ToLower(url[:idx])
	for _, s := range providerSchemes[c.Database.Provider] {
		if s == scheme {
			return true
		}
	}
	return false
}

// EnsureDirectories creates the parent directories of the database file and
// the metrics file. The export directory is created by the export itself.
func (c *Config) EnsureDirectories() error {
	var dirs []string
	if c.IsEmbedded() {
		dirs = append(dirs, filepath.Dir(c.Database.Path))
	}
	if c.MetricsFile != "" {
		dirs = append(dirs, filepath.Dir(c.MetricsFile))
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Table == "" {
		return fmt.Errorf("table cannot be empty")
	}
	if c.Seeding.Count < 1 {
		return fmt.Errorf("seeding.count must be at least 1, got %d", c.Seeding.Count)
	}
	if c.Seeding.Sample < 0 {
		return fmt.Errorf("seeding.sample cannot be negative, got %d", c.Seeding.Sample)
	}
	if c.ExportPath == "" {
		return fmt.Errorf("export_path cannot be empty")
	}

	return nil
}
