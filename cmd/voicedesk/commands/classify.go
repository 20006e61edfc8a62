// ABOUTME: Classify command: show how a query would be categorized
// ABOUTME: Runs the regex fast path only; no agents are dispatched
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/voicedesk/voicedesk/internal/core"
	"github.com/voicedesk/voicedesk/internal/models"
)

// NewClassifyCmd creates the classify command
func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <query>",
		Short: "Classify a query without answering it",
		Long: `Classify a query into an intent category and show the extracted
entities. Only the rule-based fast path runs; queries it cannot place
report as unknown.

Examples:
  voicedesk classify "What is the status of ticket IT-001?"
  voicedesk classify --format json "give me more details"`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	classifier := core.NewFastClassifier()
	intent, matched := classifier.Classify(args[0])
	if !matched {
		intent = models.UnknownIntent("no pattern match")
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"intent":       intent,
			"rule_matched": matched,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CATEGORY\t%s\n", intent.Category)
	fmt.Fprintf(w, "CONFIDENCE\t%.2f\n", intent.Confidence)
	fmt.Fprintf(w, "RULE MATCHED\t%v\n", matched)
	for k, v := range intent.Entities {
		fmt.Fprintf(w, "ENTITY %s\t%s\n", k, v)
	}
	if verbose && intent.Reasoning != "" {
		fmt.Fprintf(w, "REASONING\t%s\n", intent.Reasoning)
	}
	return w.Flush()
}
