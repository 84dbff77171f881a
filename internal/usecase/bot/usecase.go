package bot

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/entity"
	"github.com/botbee/botbee-backend/internal/pkg/validator"
	"github.com/botbee/botbee-backend/internal/repository"
)

// CacheInvalidator evicts a bot's cached configuration after a delete, so
// the public chat path stops answering for it immediately.
type CacheInvalidator interface {
	InvalidateBot(botID string)
}

// BotUsecase implements bot lifecycle business logic.
type BotUsecase struct {
	botRepo     repository.BotRepository
	validator   *validator.Validator
	invalidator CacheInvalidator
	logger      *zap.Logger
}

func NewUsecase(
	botRepo repository.BotRepository,
	validator *validator.Validator,
	invalidator CacheInvalidator,
	logger *zap.Logger,
) *BotUsecase {
	return &BotUsecase{
		botRepo:     botRepo,
		validator:   validator,
		invalidator: invalidator,
		logger:      logger,
	}
}

// CreateBot validates the wizard payload and persists a new bot persona.
func (uc *BotUsecase) CreateBot(ctx context.Context, req *entity.CreateBotRequest) (*entity.Bot, error) {
	if err := uc.validator.ValidateCreateBot(req); err != nil {
		return nil, err
	}

	bot := entity.Bot{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		Name:            req.Name,
		Description:     req.Description,
		Tone:            req.Tone,
		Language:        req.Language,
		Greeting:        req.Greeting,
		Avatar:          req.Avatar,
		BrandGuidelines: req.BrandGuidelines,
		Instructions:    req.Instructions,
	}

	created, err := uc.botRepo.Create(ctx, bot)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	ctxzap.Info(ctx, "bot created",
		zap.String("bot_id", created.ID),
		zap.String("name", created.Name),
	)

	return created, nil
}

// GetBot fetches one bot after an ownership check.
func (uc *BotUsecase) GetBot(ctx context.Context, botID, userID string) (*entity.Bot, error) {
	bot, err := uc.fetchOwned(ctx, botID, userID)
	if err != nil {
		return nil, err
	}
	return bot, nil
}

// ListBots returns the caller's bots with their resource counts.
func (uc *BotUsecase) ListBots(ctx context.Context, userID string) ([]*entity.BotSummary, error) {
	bots, err := uc.botRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bots: %w", err)
	}
	return bots, nil
}

// DeleteBot removes a bot; its resources and chunks cascade with it.
func (uc *BotUsecase) DeleteBot(ctx context.Context, botID, userID string) error {
	if _, err := uc.fetchOwned(ctx, botID, userID); err != nil {
		return err
	}

	if err := uc.botRepo.Delete(ctx, botID); err != nil {
		return fmt.Errorf("delete bot: %w", err)
	}

	uc.invalidator.InvalidateBot(botID)

	ctxzap.Info(ctx, "bot deleted", zap.String("bot_id", botID))
	return nil
}

func (uc *BotUsecase) fetchOwned(ctx context.Context, botID, userID string) (*entity.Bot, error) {
	if _, err := uuid.Parse(botID); err != nil {
		return nil, fmt.Errorf("%w: invalid bot ID format", entity.ErrInvalidParameter)
	}

	bot, err := uc.botRepo.Get(ctx, botID)
	if err != nil {
		return nil, err
	}
	if bot.UserID != userID {
		return nil, entity.ErrNotOwner
	}
	return bot, nil
}
