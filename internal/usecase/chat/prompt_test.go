package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botbee/botbee-backend/internal/entity"
)

func TestBuildSystemPrompt_CasualAmericanBot(t *testing.T) {
	bot := &entity.Bot{
		Name:            "Acme Helper",
		Tone:            entity.BotToneCasual,
		Language:        entity.BotLanguageAmerican,
		Greeting:        "Hey there, welcome to Acme!",
		BrandGuidelines: "Always mention our 30-day guarantee.",
		Instructions:    "Never discuss competitors.",
	}

	prompt := buildSystemPrompt(bot)

	assert.Contains(t, prompt, `Always refer to yourself as "Acme Helper"`)
	assert.Contains(t, prompt, "Casual: Use relaxed, informal, and conversational language.")
	assert.Contains(t, prompt, "American English")
	assert.Contains(t, prompt, `"color", "organize"`)
	assert.NotContains(t, prompt, `"colour", "organise"`)
	assert.Contains(t, prompt, "Hey there, welcome to Acme!")
	assert.Contains(t, prompt, "Always mention our 30-day guarantee.")
	assert.Contains(t, prompt, "Never discuss competitors.")
}

func TestBuildSystemPrompt_BritishVariantRules(t *testing.T) {
	bot := &entity.Bot{
		Name:     "Tea Bot",
		Tone:     entity.BotToneProfessional,
		Language: entity.BotLanguageBritish,
	}

	prompt := buildSystemPrompt(bot)

	assert.Contains(t, prompt, `"colour", "organise"`)
	assert.Contains(t, prompt, "DD/MM/YYYY")
	assert.NotContains(t, prompt, "MM/DD/YYYY")
	assert.Contains(t, prompt, "Professional: Use formal, precise, and respectful language.")
}

func TestBuildSystemPrompt_Fallbacks(t *testing.T) {
	bot := &entity.Bot{
		Name:     "Bare Bot",
		Tone:     entity.BotTone("Mysterious"),
		Language: entity.BotLanguageBritish,
	}

	prompt := buildSystemPrompt(bot)

	assert.Contains(t, prompt, "Use the tone specified by the user.")
	assert.Contains(t, prompt, "No specific brand guidelines have been set by the user.")
	assert.Contains(t, prompt, "Hello! How can I assist you today?")
}

func TestBuildSystemPrompt_SectionOrder(t *testing.T) {
	bot := &entity.Bot{
		Name:     "Order Bot",
		Tone:     entity.BotToneHelpful,
		Language: entity.BotLanguageAmerican,
	}

	prompt := buildSystemPrompt(bot)

	sections := []string{"<goal>", "<bot_name>", "<capabilities>", "<instructions>", "<tone>", "<brand_guidelines>", "<language>", "<example_interactions>", "<greeting>", "<closing>"}
	last := -1
	for _, section := range sections {
		idx := strings.Index(prompt, section)
		require.GreaterOrEqual(t, idx, 0, "missing section %s", section)
		assert.Greater(t, idx, last, "section %s out of order", section)
		last = idx
	}
}
