// Command advisor is the incident similarity and recommendation engine.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/crestline-labs/advisor-cli/internal/adapters/driven/ai"
	configfile "github.com/crestline-labs/advisor-cli/internal/adapters/driven/config/file"
	"github.com/crestline-labs/advisor-cli/internal/adapters/driven/storage/csvfile"
	"github.com/crestline-labs/advisor-cli/internal/adapters/driven/storage/sqlite"
	"github.com/crestline-labs/advisor-cli/internal/adapters/driving/cli"
	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
	"github.com/crestline-labs/advisor-cli/internal/core/services"
	"github.com/crestline-labs/advisor-cli/internal/logger"
	"github.com/crestline-labs/advisor-cli/internal/responder"
	"github.com/crestline-labs/advisor-cli/internal/watcher"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settings := services.LoadSettings(cfg)

	store, err := openStore(settings)
	if err != nil {
		return fmt.Errorf("opening incident store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	advisor := services.NewAdvisorService(store, settings)
	if err := advisor.Rebuild(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	synth := buildSynthesiser(settings)

	w := watcher.New([]string{store.Path()}, 0, advisor.Rebuild)
	if err := w.Start(ctx); err != nil {
		logger.Warn("Store watcher unavailable: %v", err)
	} else {
		defer w.Stop() //nolint:errcheck
	}

	cli.SetVersion(version)
	cli.SetAdvisorService(advisor)
	cli.SetSettingsService(services.NewSettingsService(cfg, ai.NewConfigValidator()))
	cli.SetSynthesiser(synth)
	cli.SetResponder(responder.New(advisor, synth))

	return cli.Execute()
}

// openStore creates the incident store for the configured backend.
func openStore(settings domain.AppSettings) (driven.IncidentStore, error) {
	switch settings.Store {
	case domain.StoreBackendSQLite:
		return sqlite.NewStore(settings.DataDir)
	default:
		return csvfile.NewStore(settings.DataDir)
	}
}

// buildSynthesiser wires the optional LLM. Returns nil when no provider
// is configured or the service cannot be created; the structured
// rendering covers every operation without it.
func buildSynthesiser(settings domain.AppSettings) driving.Synthesiser {
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable, using structured output: %v", err)
		return nil
	}
	if llm == nil {
		return nil
	}

	if aware, ok := llm.(driven.PromptStoreAware); ok {
		if prompts, err := configfile.NewPromptStore(""); err == nil {
			aware.SetPromptStore(prompts)
		}
	}

	return services.NewSynthesisService(llm)
}
