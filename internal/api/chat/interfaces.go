package chat

import (
	"context"

	"github.com/botbee/botbee-backend/internal/entity"
)

type ChatUsecase interface {
	StreamAnswer(ctx context.Context, req *entity.ChatRequest, emit func(entity.StreamEvent) error) error
}
