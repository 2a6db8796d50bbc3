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
	trainTopN  int
	trainJSON  bool
	trainProse bool
)

var trainCmd = &cobra.Command{
	Use:   "train [topic]",
	Short: "Suggest training topics from past incidents",
	Long: `Extracts lessons-to-prevent and what-went-well entries from past
incidents similar to the topic, for use in training and toolbox talks.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().IntVarP(&trainTopN, "top", "n", 0, "maximum number of similar incidents (default from settings)")
	trainCmd.Flags().BoolVar(&trainJSON, "json", false, "output results as JSON")
	trainCmd.Flags().BoolVar(&trainProse, "prose", false, "synthesise a prose answer via the configured LLM")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	topic := args[0]

	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	ctx := context.Background()
	suggestions, err := advisorService.TrainingSuggestions(ctx, topic, trainTopN)
	if err != nil {
		return fmt.Errorf("training suggestions failed: %w", err)
	}

	if trainJSON {
		return outputJSON(cmd, suggestions)
	}

	if trainProse && synthService != nil {
		prose, err := synthService.Synthesise(ctx, topic, services.RenderTrainingContext(suggestions))
		if err == nil {
			cmd.Println(prose)
			return nil
		}
		logger.Warn("Synthesis failed, falling back to structured output: %v", err)
	}

	return outputTrainingSuggestions(cmd, suggestions)
}

func outputTrainingSuggestions(cmd *cobra.Command, suggestions domain.TrainingSuggestions) error {
	if len(suggestions.Lessons) == 0 && len(suggestions.GoodPractices) == 0 {
		cmd.Println("No training suggestions found for that topic.")
		return nil
	}

	if len(suggestions.Lessons) > 0 {
		cmd.Println("Lessons from similar incidents:")
		cmd.Println()
		for i, l := range suggestions.Lessons {
			cmd.Printf("  [%d] %s - %s\n", i+1, l.CaseID, l.Title)
			cmd.Printf("      %s\n", snippet(l.Text, 300))
		}
		cmd.Println()
	}

	if len(suggestions.GoodPractices) > 0 {
		cmd.Println("Good practices to reinforce:")
		cmd.Println()
		for i, g := range suggestions.GoodPractices {
			cmd.Printf("  [%d] %s - %s\n", i+1, g.CaseID, g.Title)
			cmd.Printf("      %s\n", snippet(g.Text, 300))
		}
	}

	return nil
}
