// Package cli provides the cobra command tree for the advisor CLI.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/crestline-labs/advisor-cli/internal/core/ports/driving"
	"github.com/crestline-labs/advisor-cli/internal/logger"
	"github.com/crestline-labs/advisor-cli/internal/responder"
)

// version is set via SetVersion before Execute.
var version = "dev"

// Services injected by the composition root.
var (
	advisorService  driving.AdvisorService
	settingsService driving.SettingsService
	synthService    driving.Synthesiser
	chatResponder   *responder.Responder
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Incident similarity and recommendation engine",
	Long: `Advisor searches a corpus of historical safety incidents and
recommends corrective actions, training topics, and statistics based on
text similarity to past cases.

Describe an incident and advisor finds the most similar past cases,
surfaces the corrective actions that were taken, and extracts lessons
worth reinforcing in training.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetAdvisorService injects the advisor service.
func SetAdvisorService(svc driving.AdvisorService) {
	advisorService = svc
}

// SetSettingsService injects the settings service.
func SetSettingsService(svc driving.SettingsService) {
	settingsService = svc
}

// SetSynthesiser injects the optional prose synthesiser.
func SetSynthesiser(svc driving.Synthesiser) {
	synthService = svc
}

// SetResponder injects the chat responder used by ask and chat.
func SetResponder(r *responder.Responder) {
	chatResponder = r
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
