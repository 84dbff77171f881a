package bot

import (
	"context"

	"github.com/botbee/botbee-backend/internal/entity"
)

type BotUsecase interface {
	CreateBot(ctx context.Context, req *entity.CreateBotRequest) (*entity.Bot, error)
	GetBot(ctx context.Context, botID, userID string) (*entity.Bot, error)
	ListBots(ctx context.Context, userID string) ([]*entity.BotSummary, error)
	DeleteBot(ctx context.Context, botID, userID string) error
}
