// ABOUTME: Knowledge base command group: semantic search over stored chunks
// ABOUTME: Embeds the query with OpenAI and ranks chunks by cosine similarity
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/voicedesk/voicedesk/internal/storage"
)

// NewKBCmd creates the kb command group
func NewKBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Search the knowledge base",
		Long:  `Search stored knowledge chunks by semantic similarity. Requires an OpenAI API key for query embedding.`,
	}

	cmd.AddCommand(newKBSearchCmd())
	return cmd
}

func newKBSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find knowledge chunks relevant to a query",
		Long: `Find knowledge chunks relevant to a query. The query is embedded
and chunks are ranked by cosine similarity.

Examples:
  voicedesk kb search "how do I reset my password"
  voicedesk kb search --limit 5 "VPN setup"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKBSearch(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 3, "Maximum number of chunks to return")
	return cmd
}

func runKBSearch(cmd *cobra.Command, query string, limit int) error {
	if err := validatePositiveInt(limit, "limit"); err != nil {
		return err
	}

	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	vector, err := client.GenerateEmbedding(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("embedding query: %w", err)
	}

	chunks, err := store.Knowledge.SearchSimilar(vector, limit)
	if err != nil {
		return fmt.Errorf("searching knowledge base: %w", err)
	}

	if len(chunks) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No knowledge chunks found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(chunks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tID\tCONTENT\n")
	fmt.Fprintf(w, "-----\t--\t-------\n")
	for _, chunk := range chunks {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n", chunk.Relevance, chunk.ID, truncate(chunk.Content, 70))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d chunk(s)\n", len(chunks))
	}
	return nil
}
