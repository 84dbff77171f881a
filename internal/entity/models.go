package entity

import (
	"fmt"
	"time"
)

// ResourceKind identifies how a knowledge resource entered the system.
type ResourceKind string

const (
	ResourceKindFile  ResourceKind = "file"
	ResourceKindURL   ResourceKind = "url"
	ResourceKindAudio ResourceKind = "audio"
)

func (k ResourceKind) Validate() error {
	switch k {
	case ResourceKindFile, ResourceKindURL, ResourceKindAudio:
		return nil
	default:
		return fmt.Errorf("unknown resource kind: %s", k)
	}
}

// BotTone selects the conversational register baked into the system prompt.
type BotTone string

const (
	BotToneProfessional BotTone = "Professional"
	BotToneFriendly     BotTone = "Friendly"
	BotToneHelpful      BotTone = "Helpful"
	BotToneCasual       BotTone = "Casual"
	BotTonePlayful      BotTone = "Playful"
)

func (t BotTone) Validate() error {
	switch t {
	case BotToneProfessional, BotToneFriendly, BotToneHelpful, BotToneCasual, BotTonePlayful:
		return nil
	default:
		return fmt.Errorf("unknown bot tone: %s", t)
	}
}

// BotLanguage is the answer language variant. Only two variants are supported;
// the assistant declines anything else rather than silently substituting.
type BotLanguage string

const (
	BotLanguageBritish  BotLanguage = "British English"
	BotLanguageAmerican BotLanguage = "American English"
)

func (l BotLanguage) Validate() error {
	switch l {
	case BotLanguageBritish, BotLanguageAmerican:
		return nil
	default:
		return fmt.Errorf("unsupported language variant: %s (only British English and American English are available)", l)
	}
}

// Bot is the tenant-configurable chatbot persona that owns knowledge resources.
type Bot struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Tone            BotTone     `json:"tone"`
	Language        BotLanguage `json:"language"`
	Greeting        string      `json:"greeting"`
	Avatar          string      `json:"avatar"`
	BrandGuidelines string      `json:"brand_guidelines"`
	Instructions    string      `json:"instructions"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Resource is one ingested knowledge source. Resources are append-only:
// re-ingesting a source creates a new row, and deletion cascades to chunks.
type Resource struct {
	ID          string       `json:"id"`
	BotID       string       `json:"bot_id"`
	UserID      string       `json:"user_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Kind        ResourceKind `json:"kind"`
	FileSize    int64        `json:"file_size"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Chunk is one retrieval unit of text with its embedding vector.
type Chunk struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
}

// RetrievedChunk is a chunk returned by a similarity query, with its score.
type RetrievedChunk struct {
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// BotSummary is a bot with its resource count, for the dashboard listing.
type BotSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ResourceCount int    `json:"resource_count"`
}

// ResourceListItem is one row of the documents dashboard: a resource joined
// with the name of the bot that owns it.
type ResourceListItem struct {
	ID        string       `json:"id"`
	BotID     string       `json:"bot_id"`
	BotName   string       `json:"bot_name"`
	Name      string       `json:"name"`
	Kind      ResourceKind `json:"kind"`
	FileSize  int64        `json:"file_size"`
	CreatedAt time.Time    `json:"created_at"`
}
