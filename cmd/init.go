package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Rana718/busseed/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const configFileName = "busseed.config.json"

var (
	duckdbFlag     bool
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a busseed.config.json with the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.DuckDB
		flagCount := 0

		if duckdbFlag {
			flagCount++
		}
		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--duckdb, --sqlite, --postgresql, or --mysql)")
		}

		force, _ := cmd.Flags().GetBool("force")
		return initializeProject(dbType, force)
	},
}

func init() {
	initCmd.Flags().BoolVar(&duckdbFlag, "duckdb", false, "Use an embedded DuckDB file (default)")
	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Use an embedded SQLite file")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Use a PostgreSQL server")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Use a MySQL server")
}

func initializeProject(dbType template.DatabaseType, force bool) error {
	if _, err := os.Stat(configFileName); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
	}

	tmpl := template.NewProjectTemplate(dbType)

	content, err := tmpl.GetConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFileName, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create file %s: %w", configFileName, err)
	}

	if err := handleEnvFile(".env", tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	color.Green("✅ Initialized busseed for %s", dbType)
	fmt.Println()
	fmt.Println("📝 Configuration file created:")
	fmt.Printf("   %s\n", configFileName)

	if !tmpl.IsEmbedded() && os.Getenv("DATABASE_URL") == "" {
		fmt.Println()
		color.Yellow("ℹ️  Set DATABASE_URL in .env before seeding")
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   busseed seed      # Create and fill the table\n")
	fmt.Printf("   busseed show      # List the records\n")

	return nil
}

// handleEnvFile writes envContent to envPath, or appends it when the file
// exists without a DATABASE_URL entry.
func handleEnvFile(envPath, envContent string) error {
	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(envContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}
	existingStr += "\n# Added by busseed\n" + envContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
