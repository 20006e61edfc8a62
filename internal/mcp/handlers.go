// ABOUTME: MCP tool handler implementations for the voicedesk server
// ABOUTME: Thin adapters from tool arguments to the session, stores, and classifier
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/voicedesk/voicedesk/internal/agents"
	"github.com/voicedesk/voicedesk/internal/core"
	"github.com/voicedesk/voicedesk/internal/models"
	"github.com/voicedesk/voicedesk/internal/session"
	"github.com/voicedesk/voicedesk/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage  *storage.Storage
	session  *session.Session
	embedder agents.Embedder
}

// Ask handles the ask tool
func (h *Handlers) Ask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	reply := h.session.Ask(ctx, query)

	response := map[string]interface{}{
		"response":    reply.Text,
		"intent":      reply.Intent,
		"agents_used": reply.Routing.AgentNames(),
		"escalated":   reply.Escalated,
		"session_id":  h.session.Context.SessionID,
	}
	return marshalResult(response)
}

// ClassifyIntent handles the classify_intent tool
func (h *Handlers) ClassifyIntent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	classifier := core.NewFastClassifier()
	intent, matched := classifier.Classify(query)
	if !matched {
		intent = models.UnknownIntent("no pattern match")
	}

	response := map[string]interface{}{
		"intent":       intent,
		"rule_matched": matched,
	}
	return marshalResult(response)
}

// GetTicket handles the get_ticket tool
func (h *Handlers) GetTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawID, err := request.RequireString("ticket_id")
	if err != nil {
		return mcp.NewToolResultError("ticket_id argument is required and must be a string"), nil
	}

	id := core.NormalizeTicketID(rawID)
	ticket, err := h.storage.Tickets.GetByID(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ticket lookup failed: %v", err)), nil
	}

	response := models.SpecificTicketResult{TicketID: id, Found: ticket != nil, Ticket: ticket}
	return marshalResult(response)
}

// SearchTickets handles the search_tickets tool
func (h *Handlers) SearchTickets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	criteria := core.ParseCriteria(query, nil)
	tickets, err := h.storage.Tickets.Search(criteria)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ticket search failed: %v", err)), nil
	}

	matches := make([]models.TicketMatch, len(tickets))
	for i, t := range tickets {
		matches[i] = models.TicketMatch{Ticket: t, Source: "structured"}
	}
	response := models.SearchResultsSet{Matches: matches, TotalFound: len(matches), Criteria: criteria}
	return marshalResult(response)
}

// SearchKnowledge handles the search_knowledge tool
func (h *Handlers) SearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 3)

	if h.embedder == nil {
		return mcp.NewToolResultError("knowledge search requires an OpenAI API key for embeddings"), nil
	}

	vector, err := h.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query embedding failed: %v", err)), nil
	}

	chunks, err := h.storage.Knowledge.SearchSimilar(vector, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("knowledge search failed: %v", err)), nil
	}

	response := models.KnowledgeSearchResult{Chunks: chunks}
	return marshalResult(response)
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
