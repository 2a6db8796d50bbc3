package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/services"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

var (
	recommendTopN  int
	recommendJSON  bool
	recommendProse bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [description]",
	Short: "Recommend corrective actions for an incident description",
	Long: `Finds past incidents similar to the description and lists the
corrective actions that were taken, with the case each action came from.

With --prose and a configured LLM provider, the structured results are
synthesised into a prose answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendTopN, "top", "n", 0, "maximum number of similar incidents (default from settings)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output results as JSON")
	recommendCmd.Flags().BoolVar(&recommendProse, "prose", false, "synthesise a prose answer via the configured LLM")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	description := args[0]

	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	ctx := context.Background()
	recs, err := advisorService.Recommendations(ctx, description, recommendTopN)
	if err != nil {
		return fmt.Errorf("recommendations failed: %w", err)
	}

	if recommendJSON {
		return outputJSON(cmd, recs)
	}

	if recommendProse && synthService != nil {
		prose, err := synthService.Synthesise(ctx, description, services.RenderRecommendationContext(recs))
		if err == nil {
			cmd.Println(prose)
			return nil
		}
		logger.Warn("Synthesis failed, falling back to structured output: %v", err)
	}

	return outputRecommendations(cmd, recs)
}

func outputRecommendations(cmd *cobra.Command, recs domain.Recommendations) error {
	if len(recs.Incidents) == 0 {
		cmd.Println("No similar incidents found.")
		return nil
	}

	cmd.Printf("Similar incidents (%d):\n\n", len(recs.Incidents))
	for i := range recs.Incidents {
		inc := recs.Incidents[i].Incident
		cmd.Printf("  [%d] %s - %s (%.2f)\n", i+1, inc.CaseID, inc.Title, recs.Incidents[i].Similarity)
	}

	if len(recs.Actions) == 0 {
		cmd.Println("\nNo corrective actions recorded for these incidents.")
		return nil
	}

	cmd.Printf("\nRecommended actions (%d):\n\n", len(recs.Actions))
	for i, act := range recs.Actions {
		cmd.Printf("  [%d] %s\n", i+1, act.Action.Action)
		cmd.Printf("      Owner: %s  Timing: %s  From: %s\n",
			valueOrDash(act.Action.Owner), valueOrDash(act.Action.Timing), act.CaseID)
	}

	return nil
}

func valueOrDash(val string) string {
	if domain.IsNullText(val) {
		return "-"
	}
	return val
}
