package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔════════════════════════════════════════════╗",
		"║                                            ║",
		"║     🚌  B U S S E E D  🚌                   ║",
		"║                                            ║",
		"║     Synthetic bus data for your database   ║",
		"║     DuckDB • SQLite • PostgreSQL • MySQL   ║",
		"║                                            ║",
		"╚════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "busseed",
	Short: "Seed a database with synthetic bus route records",
	Long: `
busseed generates a reproducible set of fictitious bus records (number,
operator, region and a bounding box of coordinates) and writes them into a
freshly created table, then reads a sample back.

Database Support:
- DuckDB (default, embedded file db.duckdb)
- SQLite (embedded databases)
- PostgreSQL
- MySQL`,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("busseed version %s\n", Version)
			return nil
		}

		showBanner()
		fmt.Println()
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./busseed.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.PersistentFlags().String("provider", "", "database provider (duckdb, sqlite, postgresql, mysql)")
	rootCmd.PersistentFlags().String("db", "", "database file path for embedded providers")
	rootCmd.PersistentFlags().String("table", "", "table name (default is buses)")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")

	RegisterBaseCommands()
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("busseed.config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, color.YellowString("⚠️  Could not read config %s: %v", cfgFile, err))
		}
	}
}
