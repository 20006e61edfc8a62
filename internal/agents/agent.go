// ABOUTME: Agent interface shared by the ticket and knowledge retrieval agents
// ABOUTME: Agents never return errors; failures become error-kind results
package agents

import (
	"context"

	"github.com/voicedesk/voicedesk/internal/models"
)

// Agent handles one routed task and always produces a result. Failures are
// reported inside the AgentResult so a broken agent cannot abort the turn.
type Agent interface {
	Name() string
	Handle(ctx context.Context, task models.AgentTask, conv *models.ConversationContext) models.AgentResult
}
