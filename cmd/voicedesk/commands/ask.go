// ABOUTME: One-shot ask command: classify, route, and answer a single query
// ABOUTME: Prints the conversational answer, or the full reply as JSON
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask the assistant a single question",
		Long: `Ask the assistant one question and print its answer.

The query is classified, routed to the ticket and knowledge agents,
and answered conversationally. Use 'chat' for a multi-turn session.

Examples:
  voicedesk ask "What is the status of ticket IT-001?"
  voicedesk ask "How do I install a network probe?"
  voicedesk ask --format json "show all open tickets"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	reply := sess.Ask(cmd.Context(), args[0])

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"response":  reply.Text,
			"intent":    reply.Intent,
			"agents":    reply.Routing.AgentNames(),
			"escalated": reply.Escalated,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "\n[intent: %s, confidence: %.2f, agents: %v, escalated: %v]\n",
			reply.Intent.Category, reply.Intent.Confidence, reply.Routing.AgentNames(), reply.Escalated)
	}
	return nil
}
