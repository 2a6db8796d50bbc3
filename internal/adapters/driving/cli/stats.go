package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show incident database statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	ctx := context.Background()
	report, err := advisorService.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("statistics failed: %w", err)
	}

	if statsJSON {
		return outputJSON(cmd, report)
	}

	return outputStats(cmd, report)
}

func outputStats(cmd *cobra.Command, report domain.StatsReport) error {
	cmd.Println("Incident Database Statistics")
	cmd.Println("============================")
	cmd.Println()
	cmd.Printf("Total incidents: %d\n", report.TotalIncidents)
	cmd.Printf("Total corrective actions: %d\n", report.TotalActions)

	printCounts(cmd, "By risk level", report.ByRiskLevel)
	printCounts(cmd, "By category", report.ByCategory)
	printCounts(cmd, "By severity", report.BySeverity)
	printCounts(cmd, "By location", report.ByLocation)

	return nil
}

// printCounts renders a count map sorted by count descending, then name.
func printCounts(cmd *cobra.Command, heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if counts[keys[a]] != counts[keys[b]] {
			return counts[keys[a]] > counts[keys[b]]
		}
		return keys[a] < keys[b]
	})

	cmd.Printf("\n%s:\n", heading)
	for _, k := range keys {
		cmd.Printf("  %-30s %d\n", k, counts[k])
	}
}
