package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask the advisor a one-off question",
	Long: `Classifies the message and routes it to the matching operation:
search, recommendations, training suggestions, statistics, or help.

  advisor ask "What should we do about a hydraulic fluid leak?"
  advisor ask "Show me high risk incidents involving cranes"
  advisor ask "What training for confined space entry?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatResponder == nil {
		return errors.New("responder not configured")
	}

	reply, err := chatResponder.Respond(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(reply)
	return nil
}
