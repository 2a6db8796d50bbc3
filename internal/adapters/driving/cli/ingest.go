package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

var ingestDraft domain.IncidentDraft

var ingestActions []string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Record a new incident report",
	Long: `Appends a new incident to the store and assigns the next case id.
Corrective actions are given as repeatable --action flags with fields
separated by pipes:

  advisor ingest --title "Valve failure" \
    --what-happened "Relief valve stuck during startup" \
    --risk-level High \
    --action "Inspect all relief valves|Maintenance|2 weeks" \
    --action "Update startup checklist"

The search index is rebuilt after the incident is stored.`,
	RunE: runIngest,
}

func init() {
	flags := ingestCmd.Flags()
	flags.StringVar(&ingestDraft.Title, "title", "", "short incident title (required)")
	flags.StringVar(&ingestDraft.WhatHappened, "what-happened", "", "what happened (required)")
	flags.StringVar(&ingestDraft.WhyDidItHappen, "why", "", "why it happened")
	flags.StringVar(&ingestDraft.CausalFactors, "causal-factors", "", "causal factors")
	flags.StringVar(&ingestDraft.LessonsToPrevent, "lessons", "", "lessons to prevent recurrence")
	flags.StringVar(&ingestDraft.WhatWentWell, "went-well", "", "what went well")
	flags.StringVar(&ingestDraft.WhatCouldHaveHappened, "could-have-happened", "", "worst credible outcome")
	flags.StringVar(&ingestDraft.Category, "category", "", "incident category")
	flags.StringVar(&ingestDraft.RiskLevel, "risk-level", "", "risk level")
	flags.StringVar(&ingestDraft.Location, "location", "", "location")
	flags.StringVar(&ingestDraft.Setting, "setting", "", "work setting")
	flags.StringVar(&ingestDraft.InjuryCategory, "injury-category", "", "injury category")
	flags.StringVar(&ingestDraft.Severity, "severity", "", "severity")
	flags.StringVar(&ingestDraft.PrimaryClassification, "classification", "", "primary classification")
	flags.StringVar(&ingestDraft.Date, "date", "", "incident date YYYY-MM-DD (default today)")
	flags.StringArrayVar(&ingestActions, "action", nil, "corrective action as text|owner|timing|verification, repeatable")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	if strings.TrimSpace(ingestDraft.Title) == "" {
		return errors.New("--title is required")
	}
	if strings.TrimSpace(ingestDraft.WhatHappened) == "" {
		return errors.New("--what-happened is required")
	}

	actions, err := parseActions(ingestActions)
	if err != nil {
		return err
	}

	ctx := context.Background()
	caseID, err := advisorService.Ingest(ctx, ingestDraft, actions)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Recorded incident %s with %d corrective actions.\n", caseID, len(actions))

	if err := advisorService.Rebuild(ctx); err != nil {
		return fmt.Errorf("incident stored but index rebuild failed: %w", err)
	}
	cmd.Println("Search index rebuilt.")

	return nil
}

// parseActions splits pipe-separated action specs into drafts. Only the
// action text is required.
func parseActions(specs []string) ([]domain.ActionDraft, error) {
	actions := make([]domain.ActionDraft, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, "|", 4)
		if strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid action %q, text must not be empty", spec)
		}

		draft := domain.ActionDraft{Action: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			draft.Owner = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			draft.Timing = strings.TrimSpace(parts[2])
		}
		if len(parts) > 3 {
			draft.Verification = strings.TrimSpace(parts[3])
		}
		actions = append(actions, draft)
	}
	return actions, nil
}
