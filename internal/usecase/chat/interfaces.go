package chat

import (
	"context"

	"github.com/botbee/botbee-backend/internal/entity"
)

type LLMConnector interface {
	StreamChat(ctx context.Context, params entity.StreamParams, callbacks entity.StreamCallbacks) error
}

type Retriever interface {
	Retrieve(ctx context.Context, botID, question string) (*entity.RetrievedChunk, error)
}
