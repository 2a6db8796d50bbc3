package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search index from the store",
	Long: `Reloads all incidents from the store and rebuilds the TF-IDF index.
Needed after editing the data files outside of advisor.`,
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	if err := advisorService.Rebuild(context.Background()); err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	cmd.Println("Search index rebuilt.")
	return nil
}
