package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
	"github.com/botbee/botbee-backend/internal/repository"
)

// noKnowledgeResult is what the model sees when retrieval finds nothing
// relevant; the prompt instructs it to admit it doesn't know in that case.
const noKnowledgeResult = "No relevant information was found in the knowledge base."

// ChatUsecase orchestrates one answering turn: load the bot persona, build
// its system prompt, and stream the model's answer while serving its
// retrieval calls. Embeddings and similarity results are never cached; only
// the bot configuration is, briefly, to spare a lookup per turn.
type ChatUsecase struct {
	botRepo   repository.BotRepository
	llm       LLMConnector
	retriever Retriever
	botCache  *gocache.Cache
	cfg       config.ChatConfig
	logger    *zap.Logger
}

func NewUsecase(
	botRepo repository.BotRepository,
	llm LLMConnector,
	retriever Retriever,
	cfg config.ChatConfig,
	logger *zap.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		botRepo:   botRepo,
		llm:       llm,
		retriever: retriever,
		botCache:  gocache.New(cfg.BotCacheTTL, 2*cfg.BotCacheTTL),
		cfg:       cfg,
		logger:    logger,
	}
}

// StreamAnswer runs one chat turn and pushes stream events through emit.
// The turn is bounded by the configured ceiling; the caller's context cancels
// it early when the client disconnects.
func (uc *ChatUsecase) StreamAnswer(ctx context.Context, req *entity.ChatRequest, emit func(entity.StreamEvent) error) error {
	if len(req.Messages) == 0 {
		return fmt.Errorf("%w: messages", entity.ErrMissingField)
	}
	if _, err := uuid.Parse(req.BotID); err != nil {
		return fmt.Errorf("%w: invalid bot ID format", entity.ErrInvalidParameter)
	}

	bot, err := uc.getBot(ctx, req.BotID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.MaxDuration)
	defer cancel()

	ctxzap.Info(ctx, "answering chat turn",
		zap.String("bot_id", bot.ID),
		zap.Int("history_length", len(req.Messages)),
	)

	callbacks := entity.StreamCallbacks{
		OnDelta: func(text string) error {
			return emit(entity.StreamEvent{Type: entity.StreamEventDelta, Text: text})
		},
		OnTool: func(call entity.ToolCall) (string, error) {
			if err := emit(entity.StreamEvent{Type: entity.StreamEventTool, Text: call.Question}); err != nil {
				return "", err
			}
			return uc.lookupKnowledge(ctx, call)
		},
	}

	err = uc.llm.StreamChat(ctx, entity.StreamParams{
		SystemPrompt: buildSystemPrompt(bot),
		BotID:        bot.ID,
		Messages:     req.Messages,
	}, callbacks)
	if err != nil {
		return fmt.Errorf("stream answer: %w", err)
	}

	return emit(entity.StreamEvent{Type: entity.StreamEventDone})
}

// lookupKnowledge serves one retrieval call from the model. A miss is a valid
// answer, not an error: the model is told nothing was found.
func (uc *ChatUsecase) lookupKnowledge(ctx context.Context, call entity.ToolCall) (string, error) {
	chunk, err := uc.retriever.Retrieve(ctx, call.BotID, call.Question)
	if err != nil {
		return "", err
	}
	if chunk == nil {
		return noKnowledgeResult, nil
	}
	return chunk.Content, nil
}

// InvalidateBot drops a bot's cached configuration so a deletion takes
// effect on the public chat path immediately instead of after the TTL.
func (uc *ChatUsecase) InvalidateBot(botID string) {
	uc.botCache.Delete(botID)
}

func (uc *ChatUsecase) getBot(ctx context.Context, botID string) (*entity.Bot, error) {
	if cached, ok := uc.botCache.Get(botID); ok {
		return cached.(*entity.Bot), nil
	}

	bot, err := uc.botRepo.Get(ctx, botID)
	if err != nil {
		return nil, err
	}

	uc.botCache.SetDefault(botID, bot)
	return bot, nil
}
