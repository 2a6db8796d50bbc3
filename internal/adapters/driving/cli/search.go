package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

var (
	searchTopN    int
	searchFilters []string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search incidents by text similarity",
	Long: `Finds past incidents similar to the query, ranked by TF-IDF cosine
similarity over the incident narratives.

Filters restrict results to incidents whose field contains the given
value (case-insensitive), e.g. --filter risk_level=high.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopN, "top", "n", 0, "maximum number of results (default from settings)")
	searchCmd.Flags().StringArrayVar(&searchFilters, "filter", nil, "field=value filter, repeatable")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	filters, err := parseFilters(searchFilters)
	if err != nil {
		return err
	}

	ctx := context.Background()
	opts := domain.SearchOptions{
		TopN:    searchTopN,
		Filters: filters,
	}

	results, err := advisorService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

// parseFilters converts key=value pairs into a filter map.
func parseFilters(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	filters := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected field=value", pair)
		}
		filters[key] = value
	}
	return filters, nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No similar incidents found.")
		return nil
	}

	cmd.Println("Similar incidents:")
	cmd.Println()
	for i := range results {
		inc := results[i].Incident
		cmd.Printf("  [%d] %s - %s (%.2f)\n", i+1, inc.CaseID, inc.Title, results[i].Similarity)
		if !domain.IsNullText(inc.RiskLevel) {
			cmd.Printf("      Risk: %s\n", inc.RiskLevel)
		}
		if !domain.IsNullText(inc.WhatHappened) {
			cmd.Printf("      %s\n", snippet(inc.WhatHappened, 150))
		}
		cmd.Println()
	}

	return nil
}

// snippet trims text to max bytes for table output, backing up to a
// rune boundary so multibyte characters are never split.
func snippet(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
