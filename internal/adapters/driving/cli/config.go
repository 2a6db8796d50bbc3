package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and configure the incident store backend, search settings,
and the optional LLM provider for prose synthesis.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Set the incident store backend",
	Long: `Set the incident store backend.

Available backends:
  csv    - Append-only reports.csv + actions.csv pair (default)
  sqlite - Single SQLite database file`,
	RunE: runConfigStore,
}

var configLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM provider for prose synthesis",
	Long: `Configure the optional LLM provider. Without one, recommendations
and training suggestions use the structured rendering only.`,
	RunE: runConfigLLM,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configStoreCmd)
	configCmd.AddCommand(configLLMCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Description())
	if settings.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.DataDir)
	}
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Max features: %d\n", settings.Index.MaxFeatures)
	cmd.Printf("  N-gram range: %d..%d\n", settings.Index.NgramMin, settings.Index.NgramMax)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Threshold: %g\n", settings.Search.Threshold)
	cmd.Printf("  Top N: %d\n", settings.Search.TopN)
	cmd.Println()

	cmd.Println("[LLM]")
	if settings.LLM.Provider.IsValid() {
		cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
		if settings.LLM.Provider.IsLocal() {
			cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
		}
		if settings.LLM.Provider.RequiresAPIKey() {
			if settings.LLM.APIKey != "" {
				cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
			} else {
				cmd.Printf("  API Key: (not set)\n")
			}
		}
		status := "configured"
		if !settings.LLM.IsConfigured() {
			status = "not configured"
		}
		cmd.Printf("  Status: %s\n", status)
	} else {
		cmd.Println("  Provider: (not set, structured output only)")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigStore(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Store Backend")
	cmd.Println("--------------------")
	backends := domain.AllStoreBackends()
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(backends), 1)
	selected := backends[idx-1]

	if err := settingsService.SetStoreBackend(selected); err != nil {
		return fmt.Errorf("failed to set store backend: %w", err)
	}

	cmd.Printf("Store backend set to: %s\n", selected.Description())
	cmd.Println("Restart advisor for the change to take effect.")
	return nil
}

func runConfigLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select LLM Provider")
	providers := domain.AllAIProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read the key without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
