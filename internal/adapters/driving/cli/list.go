package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List distinct field values in the corpus",
}

var listCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List distinct incident categories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return outputValues(cmd, func(ctx context.Context) []string {
			return advisorService.Categories(ctx)
		})
	},
}

var listRiskLevelsCmd = &cobra.Command{
	Use:   "risk-levels",
	Short: "List distinct risk levels",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return outputValues(cmd, func(ctx context.Context) []string {
			return advisorService.RiskLevels(ctx)
		})
	},
}

var listLocationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List distinct locations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return outputValues(cmd, func(ctx context.Context) []string {
			return advisorService.Locations(ctx)
		})
	},
}

func init() {
	listCmd.AddCommand(listCategoriesCmd)
	listCmd.AddCommand(listRiskLevelsCmd)
	listCmd.AddCommand(listLocationsCmd)
	rootCmd.AddCommand(listCmd)
}

func outputValues(cmd *cobra.Command, fetch func(context.Context) []string) error {
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	values := fetch(context.Background())
	if len(values) == 0 {
		cmd.Println("No values recorded.")
		return nil
	}

	for _, v := range values {
		cmd.Println(v)
	}
	return nil
}
