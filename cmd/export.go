package cmd

import (
	"fmt"

	"github.com/Rana718/busseed/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the seeded table",
	Long: `
Export the seeded table to a timestamped file under export_path.
Supported formats: json (default), csv, yaml

Examples:
  busseed export
  busseed export --csv
  busseed export --yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		format := "json"
		if csv, _ := cmd.Flags().GetBool("csv"); csv {
			format = "csv"
		} else if yaml, _ := cmd.Flags().GetBool("yaml"); yaml {
			format = "yaml"
		}

		ctx := cmd.Context()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		exportPath, err := export.PerformExport(ctx, adapter, cfg.Table, cfg.ExportPath, format)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Export completed: %s\n", exportPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().Bool("json", false, "Export as JSON (default)")
	exportCmd.Flags().Bool("csv", false, "Export as CSV")
	exportCmd.Flags().Bool("yaml", false, "Export as YAML")
	exportCmd.MarkFlagsMutuallyExclusive("json", "csv", "yaml")
}
