package bot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
	"github.com/botbee/botbee-backend/internal/pkg/validator"
)

type fakeBotRepo struct {
	bots map[string]*entity.Bot
}

func newFakeBotRepo() *fakeBotRepo {
	return &fakeBotRepo{bots: map[string]*entity.Bot{}}
}

func (f *fakeBotRepo) Create(_ context.Context, bot entity.Bot) (*entity.Bot, error) {
	f.bots[bot.ID] = &bot
	return &bot, nil
}

func (f *fakeBotRepo) Get(_ context.Context, id string) (*entity.Bot, error) {
	bot, ok := f.bots[id]
	if !ok {
		return nil, entity.ErrBotNotFound
	}
	return bot, nil
}

func (f *fakeBotRepo) ListByUser(_ context.Context, userID string) ([]*entity.BotSummary, error) {
	var out []*entity.BotSummary
	for _, bot := range f.bots {
		if bot.UserID == userID {
			out = append(out, &entity.BotSummary{ID: bot.ID, Name: bot.Name})
		}
	}
	return out, nil
}

func (f *fakeBotRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.bots[id]; !ok {
		return entity.ErrBotNotFound
	}
	delete(f.bots, id)
	return nil
}

type fakeInvalidator struct {
	evicted []string
}

func (f *fakeInvalidator) InvalidateBot(botID string) {
	f.evicted = append(f.evicted, botID)
}

func newUsecase(repo *fakeBotRepo) *BotUsecase {
	return NewUsecase(repo, validator.NewValidator(config.FileUploadConfig{}), &fakeInvalidator{}, zap.NewNop())
}

func TestCreateBot(t *testing.T) {
	uc := newUsecase(newFakeBotRepo())

	bot, err := uc.CreateBot(context.Background(), &entity.CreateBotRequest{
		UserID:   uuid.New().String(),
		Name:     "Support Bot",
		Tone:     entity.BotToneFriendly,
		Language: entity.BotLanguageBritish,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, bot.ID)
	assert.Equal(t, "Support Bot", bot.Name)
}

func TestCreateBot_InvalidTone(t *testing.T) {
	uc := newUsecase(newFakeBotRepo())

	_, err := uc.CreateBot(context.Background(), &entity.CreateBotRequest{
		UserID:   uuid.New().String(),
		Name:     "Bot",
		Tone:     entity.BotTone("Sarcastic"),
		Language: entity.BotLanguageBritish,
	})

	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestCreateBot_UnsupportedLanguage(t *testing.T) {
	uc := newUsecase(newFakeBotRepo())

	_, err := uc.CreateBot(context.Background(), &entity.CreateBotRequest{
		UserID:   uuid.New().String(),
		Name:     "Bot",
		Tone:     entity.BotToneHelpful,
		Language: entity.BotLanguage("Australian English"),
	})

	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestGetBot_OwnershipEnforced(t *testing.T) {
	repo := newFakeBotRepo()
	uc := newUsecase(repo)

	owner := uuid.New().String()
	bot, err := uc.CreateBot(context.Background(), &entity.CreateBotRequest{
		UserID:   owner,
		Name:     "Private Bot",
		Tone:     entity.BotToneHelpful,
		Language: entity.BotLanguageAmerican,
	})
	require.NoError(t, err)

	_, err = uc.GetBot(context.Background(), bot.ID, uuid.New().String())
	assert.ErrorIs(t, err, entity.ErrNotOwner)

	got, err := uc.GetBot(context.Background(), bot.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, bot.ID, got.ID)
}

func TestDeleteBot(t *testing.T) {
	repo := newFakeBotRepo()
	uc := newUsecase(repo)

	owner := uuid.New().String()
	bot, err := uc.CreateBot(context.Background(), &entity.CreateBotRequest{
		UserID:   owner,
		Name:     "Doomed Bot",
		Tone:     entity.BotToneCasual,
		Language: entity.BotLanguageBritish,
	})
	require.NoError(t, err)

	require.ErrorIs(t, uc.DeleteBot(context.Background(), bot.ID, uuid.New().String()), entity.ErrNotOwner)
	require.NoError(t, uc.DeleteBot(context.Background(), bot.ID, owner))

	_, err = uc.GetBot(context.Background(), bot.ID, owner)
	assert.ErrorIs(t, err, entity.ErrBotNotFound)
}

func TestDeleteBot_EvictsCachedConfig(t *testing.T) {
	repo := newFakeBotRepo()
	inv := &fakeInvalidator{}
	uc := NewUsecase(repo, validator.NewValidator(config.FileUploadConfig{}), inv, zap.NewNop())

	owner := uuid.New().String()
	bot, err := uc.CreateBot(context.Background(), &entity.CreateBotRequest{
		UserID:   owner,
		Name:     "Cached Bot",
		Tone:     entity.BotToneHelpful,
		Language: entity.BotLanguageAmerican,
	})
	require.NoError(t, err)

	// A failed delete must not evict anything.
	require.ErrorIs(t, uc.DeleteBot(context.Background(), bot.ID, uuid.New().String()), entity.ErrNotOwner)
	assert.Empty(t, inv.evicted)

	require.NoError(t, uc.DeleteBot(context.Background(), bot.ID, owner))
	assert.Equal(t, []string{bot.ID}, inv.evicted)
}
