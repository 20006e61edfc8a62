// ABOUTME: Knowledge agent: semantic search over the knowledge base
// ABOUTME: Embeds the query and ranks stored chunks by cosine similarity
package agents

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/voicedesk/voicedesk/internal/core"
	"github.com/voicedesk/voicedesk/internal/models"
	"github.com/voicedesk/voicedesk/internal/storage"
)

// Embedder is the embedding surface the knowledge agent needs.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// DefaultKnowledgeThreshold marks answers too weak to present without a
// human in the loop.
const DefaultKnowledgeThreshold = 0.4

const (
	relevantChunkScore     = 0.5
	minRelevantConfidence  = 0.6
	maxRetrievalConfidence = 0.95
)

// KnowledgeAgent answers general questions from the embedded knowledge base.
type KnowledgeAgent struct {
	store     *storage.Storage
	embedder  Embedder
	topK      int
	threshold float64
}

// NewKnowledgeAgent creates a KnowledgeAgent retrieving topK chunks.
func NewKnowledgeAgent(store *storage.Storage, embedder Embedder, topK int, threshold float64) *KnowledgeAgent {
	if topK <= 0 {
		topK = 3
	}
	if threshold <= 0 {
		threshold = DefaultKnowledgeThreshold
	}
	return &KnowledgeAgent{store: store, embedder: embedder, topK: topK, threshold: threshold}
}

// Name implements Agent.
func (a *KnowledgeAgent) Name() string {
	return string(models.AgentKnowledge)
}

// Handle embeds the query and retrieves the most similar chunks. The result
// flags escalation when retrieval is empty or too weak, unless the query is
// a follow-up cue continuing an answered thread.
func (a *KnowledgeAgent) Handle(ctx context.Context, task models.AgentTask, conv *models.ConversationContext) models.AgentResult {
	start := time.Now()

	vector, err := a.embedder.GenerateEmbedding(ctx, task.Query)
	if err != nil {
		log.Printf("[KnowledgeAgent] embedding failed: %v", err)
		return models.ErrorAgentResult(a.Name(), fmt.Sprintf("query embedding failed: %v", err), time.Since(start))
	}

	chunks, err := a.store.Knowledge.SearchSimilar(vector, a.topK)
	if err != nil {
		log.Printf("[KnowledgeAgent] search failed: %v", err)
		return models.ErrorAgentResult(a.Name(), fmt.Sprintf("knowledge search failed: %v", err), time.Since(start))
	}

	relevant := relevantChunks(chunks)
	confidence := retrievalConfidence(relevant)

	followup := core.IsFollowupCue(task.Query)
	escalate := (len(relevant) == 0 || confidence < a.threshold) && !followup

	return models.AgentResult{
		AgentName:          a.Name(),
		Kind:               models.ResultKnowledge,
		Knowledge:          &models.KnowledgeSearchResult{Chunks: chunks},
		Confidence:         confidence,
		ProcessingTime:     time.Since(start),
		RequiresEscalation: escalate,
		Metadata:           task.Metadata,
	}
}

// relevantChunks keeps chunks scoring at least relevantChunkScore.
func relevantChunks(chunks []models.KnowledgeChunk) []models.KnowledgeChunk {
	var relevant []models.KnowledgeChunk
	for _, c := range chunks {
		if c.Relevance >= relevantChunkScore {
			relevant = append(relevant, c)
		}
	}
	return relevant
}

// retrievalConfidence scores a retrieval from the mean relevance of its
// relevant chunks, lightly boosted and capped, with a floor whenever any
// relevant chunk came back at all.
func retrievalConfidence(relevant []models.KnowledgeChunk) float64 {
	if len(relevant) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range relevant {
		sum += c.Relevance
	}
	confidence := (sum / float64(len(relevant))) * 1.1
	if confidence > maxRetrievalConfidence {
		confidence = maxRetrievalConfidence
	}
	if confidence < minRelevantConfidence {
		confidence = minRelevantConfidence
	}
	return confidence
}
