package cmd

import (
	"fmt"

	"github.com/Rana718/busseed/internal/inspect"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the companies and regions present in the table",
	Args:  cobra.NoArgs,
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

		filters, err := inspector.Filters(ctx)
		if err != nil {
			return err
		}

		color.Cyan("🚌 Companies (%d)", len(filters.Companies))
		for _, c := range filters.Companies {
			fmt.Printf("   %s\n", c)
		}
		fmt.Println()
		color.Cyan("🗺️  Regions (%d)", len(filters.Regions))
		for _, r := range filters.Regions {
			fmt.Printf("   %s\n", r)
		}
		return nil
	},
}
