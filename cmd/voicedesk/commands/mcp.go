// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to query tickets and knowledge via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/voicedesk/voicedesk/internal/agents"
	"github.com/voicedesk/voicedesk/internal/core"
	"github.com/voicedesk/voicedesk/internal/llm"
	"github.com/voicedesk/voicedesk/internal/mcp"
	"github.com/voicedesk/voicedesk/internal/session"
	"github.com/voicedesk/voicedesk/internal/storage"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs voicedesk as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to classify queries, look up tickets, and
search the knowledge base via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  voicedesk mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "voicedesk": {
  #       "command": "voicedesk",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - LLM fallback and knowledge search will not work")
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	policy := &core.EscalationPolicy{
		RoutingThreshold: cfg.RoutingThreshold,
		StreakThreshold:  cfg.StreakThreshold,
		StreakWindow:     cfg.StreakWindow,
	}

	agentList := []agents.Agent{agents.NewTicketAgent(store)}

	// LLM features are optional; without a key the MCP server still serves
	// ticket lookup and rule-based classification.
	var (
		fallback session.IntentFallback
		embedder agents.Embedder
	)
	var client *llm.Client
	if cfg.OpenAIKey != "" {
		client, err = newLLMClient(cfg)
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("initializing OpenAI client: %w", err)
		}
		fallback = core.NewFallbackClassifier(client)
		embedder = client
		agentList = append(agentList, agents.NewKnowledgeAgent(store, client, cfg.TopK, cfg.KnowledgeThreshold))
		if verbose {
			log.Println("[MCP] OpenAI client initialized")
		}
	}

	sess := session.New(fallback, policy, agentList...)
	if client != nil {
		sess.UseResponseLLM(client)
	}

	server := mcpserver.NewMCPServer(
		"voicedesk",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, store, sess, embedder)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("voicedesk MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		if err := store.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		_ = store.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
