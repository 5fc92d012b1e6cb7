package cmd

import (
	"fmt"
	"os"

	"github.com/Rana718/busseed/internal/inspect"
	"github.com/Rana718/busseed/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	showCompany string
	showRegion  string
	showLimit   int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List seeded bus records with their area",
	Long: `
List the records of the seeded table together with the area of each
bounding box in squared degrees, optionally narrowed by company or region.

Examples:
  busseed show
  busseed show --company Arriva
  busseed show --region Wales --limit 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		inspector, err := inspect.New(adapter, cfg.Table)
		if err != nil {
			return err
		}

		result, err := inspector.Show(ctx, inspect.ShowOptions{
			Company: showCompany,
			Region:  showRegion,
			Limit:   showLimit,
		})
		if err != nil {
			return err
		}

		if len(result.Rows) == 0 {
			color.Yellow("No matching records")
			return nil
		}

		utils.DisplayResultsTable(os.Stdout, result.Columns, result.Rows)
		fmt.Printf("\n%d row(s)\n", len(result.Rows))
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showCompany, "company", "", "only records of this company")
	showCmd.Flags().StringVar(&showRegion, "region", "", "only records in this region")
	showCmd.Flags().IntVarP(&showLimit, "limit", "l", 0, "maximum rows to print (0 for all)")
}
