// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the voicedesk banner and shared verbose/quiet/format flags
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags shared by all commands
var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██╗   ██╗ ██████╗ ██╗ ██████╗███████╗██████╗ ███████╗███████╗██╗  ██╗
██║   ██║██╔═══██╗██║██╔════╝██╔════╝██╔══██╗██╔════╝██╔════╝██║ ██╔╝
██║   ██║██║   ██║██║██║     █████╗  ██║  ██║█████╗  ███████╗█████╔╝
╚██╗ ██╔╝██║   ██║██║██║     ██╔══╝  ██║  ██║██╔══╝  ╚════██║██╔═██╗
 ╚████╔╝ ╚██████╔╝██║╚██████╗███████╗██████╔╝███████╗███████║██║  ██╗
  ╚═══╝   ╚═════╝ ╚═╝ ╚═════╝╚══════╝╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝

███ Voice-first support assistant ███
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voicedesk",
		Short: "Intent-routing support assistant for tickets and knowledge",
		Long: banner + `
voicedesk classifies customer queries, routes them to ticket and
knowledge agents, and answers conversationally. A regex fast path
handles common phrasings; an LLM fallback covers the rest.

Queries about tickets hit the local SQLite ticket store. General
questions run semantic search over the embedded knowledge base.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, or json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewAskCmd(),
		NewChatCmd(),
		NewClassifyCmd(),
		NewTicketsCmd(),
		NewKBCmd(),
		NewLoadCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
