// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Session construction plus small formatting helpers
package commands

import (
	"fmt"
	"log"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voicedesk/voicedesk/internal/agents"
	"github.com/voicedesk/voicedesk/internal/config"
	"github.com/voicedesk/voicedesk/internal/core"
	"github.com/voicedesk/voicedesk/internal/llm"
	"github.com/voicedesk/voicedesk/internal/session"
	"github.com/voicedesk/voicedesk/internal/storage"
)

// buildSession wires storage, the LLM client, agents, and the escalation
// policy into a ready session. The LLM is optional; without an API key the
// fallback classifier and knowledge agent are disabled.
func buildSession(cfg *config.Config) (*session.Session, *storage.Storage, error) {
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	policy := &core.EscalationPolicy{
		RoutingThreshold: cfg.RoutingThreshold,
		StreakThreshold:  cfg.StreakThreshold,
		StreakWindow:     cfg.StreakWindow,
	}

	ticketAgent := agents.NewTicketAgent(store)

	var (
		fallback  session.IntentFallback
		agentList = []agents.Agent{agents.Agent(ticketAgent)}
	)

	var client *llm.Client
	if cfg.OpenAIKey != "" {
		client, err = newLLMClient(cfg)
		if err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
		fallback = core.NewFallbackClassifier(client)
		agentList = append(agentList, agents.NewKnowledgeAgent(store, client, cfg.TopK, cfg.KnowledgeThreshold))
		if verbose {
			log.Println("[CLI] OpenAI client initialized")
		}
	} else if !quiet {
		log.Println("[CLI] OPENAI_API_KEY not set: LLM fallback and knowledge search disabled")
	}

	sess := session.New(fallback, policy, agentList...)
	if client != nil {
		sess.UseResponseLLM(client)
	}
	return sess, store, nil
}

// loadConfig loads configuration, exiting early on invalid values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newLLMClient builds the OpenAI client from configuration.
func newLLMClient(cfg *config.Config) (*llm.Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for this command")
	}
	return llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
		MaxBackoff:     cfg.MaxBackoff,
	})
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// fileExists reports whether path is an existing regular file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
