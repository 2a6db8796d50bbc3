package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/crestline-labs/advisor-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat interface",
	Long: `Launch an interactive chat session with the advisor.

Describe incidents, ask for recommendations, training suggestions, or
statistics in plain language. The advisor classifies each message and
responds with results from the incident corpus.

Controls:
  Enter    - Send message
  ↑/↓      - Scroll history
  Esc, q   - Quit (q only when the input is empty)
  Ctrl+C   - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatResponder == nil {
		return errors.New("responder not configured")
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("chat requires an interactive terminal, use 'advisor ask' instead")
	}

	// Panic recovery to get stack traces out of raw mode
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Responder: chatResponder,
		Advisor:   advisorService,
	})
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}

	return nil
}
