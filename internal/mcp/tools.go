// ABOUTME: MCP tool definitions and registration for the voicedesk server
// ABOUTME: Defines JSON schemas for the 5 assistant tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/voicedesk/voicedesk/internal/agents"
	"github.com/voicedesk/voicedesk/internal/session"
	"github.com/voicedesk/voicedesk/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Storage, sess *session.Session, embedder agents.Embedder) *Handlers {
	handlers := &Handlers{
		storage:  store,
		session:  sess,
		embedder: embedder,
	}

	// 1. ask - Full assistant turn: classify, route, and answer
	server.AddTool(mcp.Tool{
		Name:        "ask",
		Description: "Ask the support assistant a question. Classifies the query, routes it to the ticket or knowledge agents, and returns a conversational answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The user's question or request",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.Ask)

	// 2. classify_intent - Classify a query without answering it
	server.AddTool(mcp.Tool{
		Name:        "classify_intent",
		Description: "Classify a query into an intent category (ticket_query, knowledge_query, mixed_query, greeting, escalation, followup, unknown) without dispatching agents.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The query to classify",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.ClassifyIntent)

	// 3. get_ticket - Exact ticket lookup
	server.AddTool(mcp.Tool{
		Name:        "get_ticket",
		Description: "Look up one support ticket by its ID (e.g. IT-001).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ticket_id": map[string]interface{}{
					"type":        "string",
					"description": "Ticket ID in any recognized form; normalized to IT-NNN",
				},
			},
			Required: []string{"ticket_id"},
		},
	}, handlers.GetTicket)

	// 4. search_tickets - Criteria search over tickets
	server.AddTool(mcp.Tool{
		Name:        "search_tickets",
		Description: "Search support tickets with a natural-language query. Filters on category, priority, status, and assigned team are extracted automatically.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language search query",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchTickets)

	// 5. search_knowledge - Semantic knowledge base search
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge",
		Description: "Semantic search over the knowledge base. Returns the most relevant chunks for the query.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of chunks to return (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchKnowledge)

	return handlers
}
