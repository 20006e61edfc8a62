// ABOUTME: Tickets command group: exact lookup and criteria search
// ABOUTME: Bypasses the classifier and talks to the ticket store directly
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/voicedesk/voicedesk/internal/core"
	"github.com/voicedesk/voicedesk/internal/storage"
)

// NewTicketsCmd creates the tickets command group
func NewTicketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Look up and search support tickets",
		Long:  `Look up one ticket by ID or search the ticket store with a natural-language query.`,
	}

	cmd.AddCommand(newTicketsGetCmd(), newTicketsSearchCmd())
	return cmd
}

func newTicketsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <ticket-id>",
		Short: "Look up one ticket by ID",
		Long: `Look up one ticket by its ID. Any recognized form works; IDs are
normalized to IT-NNN.

Examples:
  voicedesk tickets get IT-001
  voicedesk tickets get 42`,
		Args: cobra.ExactArgs(1),
		RunE: runTicketsGet,
	}
}

func newTicketsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search tickets with a natural-language query",
		Long: `Search tickets. Category, priority, status, and team filters are
extracted from the query; remaining words match title and description.

Examples:
  voicedesk tickets search "all open network tickets"
  voicedesk tickets search --format json "critical tickets assigned to engineering"`,
		Args: cobra.ExactArgs(1),
		RunE: runTicketsSearch,
	}
}

func runTicketsGet(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id := core.NormalizeTicketID(args[0])
	ticket, err := store.Tickets.GetByID(id)
	if err != nil {
		return fmt.Errorf("looking up ticket: %w", err)
	}

	if ticket == nil {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Ticket %s not found\n", id)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(ticket, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", ticket.ID)
	fmt.Fprintf(w, "TITLE\t%s\n", ticket.Title)
	fmt.Fprintf(w, "STATUS\t%s\n", ticket.Status)
	fmt.Fprintf(w, "PRIORITY\t%s\n", ticket.Priority)
	fmt.Fprintf(w, "CATEGORY\t%s\n", ticket.Category)
	fmt.Fprintf(w, "TEAM\t%s\n", ticket.AssignedTeam)
	if ticket.Resolution != "" {
		fmt.Fprintf(w, "RESOLUTION\t%s\n", ticket.Resolution)
	}
	if ticket.ResolutionTime != "" {
		fmt.Fprintf(w, "RESOLVED IN\t%s\n", ticket.ResolutionTime)
	}
	return w.Flush()
}

func runTicketsSearch(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	criteria := core.ParseCriteria(args[0], nil)
	tickets, err := store.Tickets.Search(criteria)
	if err != nil {
		return fmt.Errorf("searching tickets: %w", err)
	}

	if len(tickets) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No tickets found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(tickets, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tSTATUS\tPRIORITY\tTEAM\tTITLE\n")
	fmt.Fprintf(w, "--\t------\t--------\t----\t-----\n")
	for _, t := range tickets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Status, t.Priority, t.AssignedTeam, truncate(t.Title, 50))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d ticket(s)\n", len(tickets))
	}
	return nil
}

// openStorage opens the configured ticket database.
func openStorage() (*storage.Storage, error) {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}
