package llm

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/entity"
)

// MockConnector simulates a streamed answer with one retrieval call, so the
// chat path can be exercised end to end without a provider key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) StreamChat(
	ctx context.Context,
	params entity.StreamParams,
	callbacks entity.StreamCallbacks,
) error {
	ctxzap.Info(ctx, "[MOCK] streaming chat answer", zap.String("bot_id", params.BotID))

	question := ""
	if len(params.Messages) > 0 {
		question = params.Messages[len(params.Messages)-1].Content
	}

	knowledge, err := callbacks.OnTool(entity.ToolCall{
		Name:     retrievalToolName,
		Question: question,
		BotID:    params.BotID,
	})
	if err != nil {
		return err
	}

	answer := "Here is what I found: " + knowledge
	for _, word := range strings.Fields(answer) {
		if err := callbacks.OnDelta(word + " "); err != nil {
			return err
		}
	}
	return nil
}
