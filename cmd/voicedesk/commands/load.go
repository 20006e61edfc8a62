// ABOUTME: Load command group: seed tickets and knowledge chunks from JSON files
// ABOUTME: Knowledge chunks are embedded at load time when an API key is present
package commands

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/voicedesk/voicedesk/internal/models"
	"github.com/voicedesk/voicedesk/internal/storage"
)

// NewLoadCmd creates the load command group
func NewLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load seed data into the database",
		Long:  `Load tickets or knowledge chunks from a JSON file into the local database.`,
	}

	cmd.AddCommand(newLoadTicketsCmd(), newLoadKBCmd())
	return cmd
}

func newLoadTicketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickets <file>",
		Short: "Load tickets from a JSON file",
		Long: `Load tickets from a JSON file containing an array of ticket records.
Existing tickets with the same ID are updated.

Example:
  voicedesk load tickets seed/tickets.json`,
		Args: cobra.ExactArgs(1),
		RunE: runLoadTickets,
	}
}

func newLoadKBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kb <file>",
		Short: "Load knowledge chunks from a JSON file",
		Long: `Load knowledge chunks from a JSON file containing an array of chunks.
When an OpenAI API key is configured each chunk is embedded as it is
stored; without a key chunks are stored unembedded and will not appear
in similarity search.

Example:
  voicedesk load kb seed/knowledge.json`,
		Args: cobra.ExactArgs(1),
		RunE: runLoadKB,
	}
}

func runLoadTickets(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !fileExists(path) {
		return fmt.Errorf("file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var tickets []models.TicketRecord
	if err := json.Unmarshal(data, &tickets); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	for i, ticket := range tickets {
		if err := store.Tickets.Save(ticket); err != nil {
			return fmt.Errorf("saving ticket %d (%s): %w", i, ticket.ID, err)
		}
		if verbose {
			log.Printf("[Load] Saved ticket %s: %s", ticket.ID, ticket.Title)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d ticket(s) from %s\n", len(tickets), path)
	}
	return nil
}

func runLoadKB(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !fileExists(path) {
		return fmt.Errorf("file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var chunks []models.KnowledgeChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	embedded := 0
	if cfg.OpenAIKey != "" {
		client, err := newLLMClient(cfg)
		if err != nil {
			return err
		}
		for i, chunk := range chunks {
			vector, err := client.GenerateEmbedding(cmd.Context(), chunk.Content)
			if err != nil {
				return fmt.Errorf("embedding chunk %d (%s): %w", i, chunk.ID, err)
			}
			if err := store.Knowledge.SaveChunk(chunk, vector); err != nil {
				return fmt.Errorf("saving chunk %d (%s): %w", i, chunk.ID, err)
			}
			embedded++
			if verbose {
				log.Printf("[Load] Embedded and saved chunk %s", chunk.ID)
			}
		}
	} else {
		if !quiet {
			log.Println("[Load] OPENAI_API_KEY not set: storing chunks without embeddings")
		}
		for i, chunk := range chunks {
			if err := store.Knowledge.SaveChunk(chunk, nil); err != nil {
				return fmt.Errorf("saving chunk %d (%s): %w", i, chunk.ID, err)
			}
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d chunk(s) from %s (%d embedded)\n", len(chunks), path, embedded)
	}
	return nil
}
