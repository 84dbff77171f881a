package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
)

type countingBotRepo struct {
	bot  *entity.Bot
	gets int
}

func (r *countingBotRepo) Create(_ context.Context, bot entity.Bot) (*entity.Bot, error) {
	return &bot, nil
}

func (r *countingBotRepo) Get(_ context.Context, id string) (*entity.Bot, error) {
	r.gets++
	if r.bot == nil || r.bot.ID != id {
		return nil, entity.ErrBotNotFound
	}
	return r.bot, nil
}

func (r *countingBotRepo) ListByUser(context.Context, string) ([]*entity.BotSummary, error) {
	return nil, nil
}

func (r *countingBotRepo) Delete(context.Context, string) error { return nil }

// scriptedLLM calls the retrieval tool once, then streams a few deltas.
type scriptedLLM struct {
	deltas     []string
	err        error
	gotParams  entity.StreamParams
	toolResult string
}

func (s *scriptedLLM) StreamChat(_ context.Context, params entity.StreamParams, callbacks entity.StreamCallbacks) error {
	s.gotParams = params
	if s.err != nil {
		return s.err
	}

	result, err := callbacks.OnTool(entity.ToolCall{
		Name:     "getInformation",
		Question: params.Messages[len(params.Messages)-1].Content,
		BotID:    params.BotID,
	})
	if err != nil {
		return err
	}
	s.toolResult = result

	for _, delta := range s.deltas {
		if err := callbacks.OnDelta(delta); err != nil {
			return err
		}
	}
	return nil
}

type fixedRetriever struct {
	chunk *entity.RetrievedChunk
	err   error
	botID string
}

func (f *fixedRetriever) Retrieve(_ context.Context, botID, _ string) (*entity.RetrievedChunk, error) {
	f.botID = botID
	return f.chunk, f.err
}

func chatConfig() config.ChatConfig {
	return config.ChatConfig{
		MaxDuration:  5 * time.Second,
		MaxToolSteps: 5,
		BotCacheTTL:  time.Minute,
	}
}

func testBot() *entity.Bot {
	return &entity.Bot{
		ID:       uuid.New().String(),
		UserID:   uuid.New().String(),
		Name:     "Support Bot",
		Tone:     entity.BotToneFriendly,
		Language: entity.BotLanguageBritish,
	}
}

func TestStreamAnswer_EventSequence(t *testing.T) {
	bot := testBot()
	repo := &countingBotRepo{bot: bot}
	llm := &scriptedLLM{deltas: []string{"Refunds ", "take 30 days."}}
	retriever := &fixedRetriever{chunk: &entity.RetrievedChunk{Content: "Refunds within 30 days.", Similarity: 0.92}}

	uc := NewUsecase(repo, llm, retriever, chatConfig(), zap.NewNop())

	var events []entity.StreamEvent
	err := uc.StreamAnswer(context.Background(), &entity.ChatRequest{
		BotID:    bot.ID,
		Messages: []entity.ChatMessage{{Role: "user", Content: "what is the refund policy"}},
	}, func(e entity.StreamEvent) error {
		events = append(events, e)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, entity.StreamEventTool, events[0].Type)
	assert.Equal(t, "what is the refund policy", events[0].Text)
	assert.Equal(t, entity.StreamEventDelta, events[1].Type)
	assert.Equal(t, entity.StreamEventDelta, events[2].Type)
	assert.Equal(t, entity.StreamEventDone, events[3].Type)

	assert.Equal(t, "Refunds within 30 days.", llm.toolResult)
	assert.Equal(t, bot.ID, retriever.botID, "retrieval must be scoped to the asked bot")
	assert.Contains(t, llm.gotParams.SystemPrompt, `Always refer to yourself as "Support Bot"`)
}

func TestStreamAnswer_NoKnowledgeFound(t *testing.T) {
	bot := testBot()
	llm := &scriptedLLM{deltas: []string{"I don't know."}}

	uc := NewUsecase(&countingBotRepo{bot: bot}, llm, &fixedRetriever{chunk: nil}, chatConfig(), zap.NewNop())

	err := uc.StreamAnswer(context.Background(), &entity.ChatRequest{
		BotID:    bot.ID,
		Messages: []entity.ChatMessage{{Role: "user", Content: "unknown topic"}},
	}, func(entity.StreamEvent) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, noKnowledgeResult, llm.toolResult)
}

func TestStreamAnswer_ProviderFailure(t *testing.T) {
	bot := testBot()
	llm := &scriptedLLM{err: entity.ErrProviderStream}

	uc := NewUsecase(&countingBotRepo{bot: bot}, llm, &fixedRetriever{}, chatConfig(), zap.NewNop())

	var events []entity.StreamEvent
	err := uc.StreamAnswer(context.Background(), &entity.ChatRequest{
		BotID:    bot.ID,
		Messages: []entity.ChatMessage{{Role: "user", Content: "hi"}},
	}, func(e entity.StreamEvent) error {
		events = append(events, e)
		return nil
	})

	require.ErrorIs(t, err, entity.ErrProviderStream)
	for _, e := range events {
		assert.NotEqual(t, entity.StreamEventDone, e.Type, "done must not be emitted after a failure")
	}
}

func TestStreamAnswer_UnknownBot(t *testing.T) {
	uc := NewUsecase(&countingBotRepo{}, &scriptedLLM{}, &fixedRetriever{}, chatConfig(), zap.NewNop())

	err := uc.StreamAnswer(context.Background(), &entity.ChatRequest{
		BotID:    uuid.New().String(),
		Messages: []entity.ChatMessage{{Role: "user", Content: "hi"}},
	}, func(entity.StreamEvent) error { return nil })

	assert.ErrorIs(t, err, entity.ErrBotNotFound)
}

func TestStreamAnswer_EmptyMessages(t *testing.T) {
	bot := testBot()
	uc := NewUsecase(&countingBotRepo{bot: bot}, &scriptedLLM{}, &fixedRetriever{}, chatConfig(), zap.NewNop())

	err := uc.StreamAnswer(context.Background(), &entity.ChatRequest{BotID: bot.ID}, func(entity.StreamEvent) error { return nil })

	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestStreamAnswer_BotConfigCached(t *testing.T) {
	bot := testBot()
	repo := &countingBotRepo{bot: bot}
	llm := &scriptedLLM{deltas: []string{"hello"}}

	uc := NewUsecase(repo, llm, &fixedRetriever{}, chatConfig(), zap.NewNop())

	req := &entity.ChatRequest{
		BotID:    bot.ID,
		Messages: []entity.ChatMessage{{Role: "user", Content: "hi"}},
	}
	emit := func(entity.StreamEvent) error { return nil }

	require.NoError(t, uc.StreamAnswer(context.Background(), req, emit))
	require.NoError(t, uc.StreamAnswer(context.Background(), req, emit))

	assert.Equal(t, 1, repo.gets, "second turn must hit the bot cache")
}

func TestInvalidateBot_DeletedBotStopsAnswering(t *testing.T) {
	bot := testBot()
	repo := &countingBotRepo{bot: bot}
	llm := &scriptedLLM{deltas: []string{"hello"}}

	uc := NewUsecase(repo, llm, &fixedRetriever{}, chatConfig(), zap.NewNop())

	req := &entity.ChatRequest{
		BotID:    bot.ID,
		Messages: []entity.ChatMessage{{Role: "user", Content: "hi"}},
	}
	emit := func(entity.StreamEvent) error { return nil }

	require.NoError(t, uc.StreamAnswer(context.Background(), req, emit))

	// Bot deleted: without eviction the cached config would keep answering
	// until the TTL expires.
	repo.bot = nil
	uc.InvalidateBot(bot.ID)

	err := uc.StreamAnswer(context.Background(), req, emit)
	assert.ErrorIs(t, err, entity.ErrBotNotFound)
	assert.Equal(t, 2, repo.gets, "eviction must force a repository lookup")
}
