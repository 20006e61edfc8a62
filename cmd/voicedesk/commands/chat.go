// ABOUTME: Interactive chat command running a persistent conversation session
// ABOUTME: Reads queries from stdin until exit; context carries across turns
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long: `Start an interactive conversation with the assistant.

Each turn is classified and routed; conversation context carries
across turns, so follow-ups like "give me more details" and
contextual references like "that ticket" resolve against history.

Type 'exit' or 'quit' to end the session.`,
		RunE: runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, store, err := buildSession(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintf(out, "Session %s. Type 'exit' to quit.\n\n", sess.Context.SessionID)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		reply := sess.Ask(cmd.Context(), query)
		fmt.Fprintf(out, "voicedesk> %s\n", reply.Text)
		if verbose {
			fmt.Fprintf(out, "[intent: %s, confidence: %.2f, escalated: %v]\n",
				reply.Intent.Category, reply.Intent.Confidence, reply.Escalated)
		}
		if reply.Escalated {
			break
		}
	}

	if !quiet {
		fmt.Fprintln(out, "Goodbye!")
	}
	return scanner.Err()
}
