package embedder

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
)

// Connector maps text to fixed-dimension embedding vectors via Gemini.
// Ingestion and query embeddings must come from the same model, or stored
// similarity scores are meaningless.
type Connector struct {
	config config.GeminiConfig
	client *genai.Client
	logger *zap.Logger
}

func NewConnector(
	cfg config.GeminiConfig,
	client *genai.Client,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		config: cfg,
		client: client,
		logger: logger,
	}
}

// Embed returns the embedding vector for one text.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	em := c.client.EmbeddingModel(c.config.EmbeddingModel)

	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		ctxzap.Error(ctx, "embedding request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", entity.ErrEmbeddingFailed, err)
	}

	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: provider returned no embedding data", entity.ErrEmbeddingFailed)
	}
	if len(res.Embedding.Values) != c.config.EmbeddingDimension {
		return nil, fmt.Errorf("%w: expected dimension %d, got %d",
			entity.ErrEmbeddingFailed, c.config.EmbeddingDimension, len(res.Embedding.Values))
	}

	return res.Embedding.Values, nil
}

// EmbedBatch embeds every chunk of one ingestion in a single provider call.
// Any failure fails the whole batch: no partial chunk set is ever persisted.
func (c *Connector) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: empty batch", entity.ErrEmbeddingFailed)
	}

	em := c.client.EmbeddingModel(c.config.EmbeddingModel)
	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		ctxzap.Error(ctx, "batch embedding request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", entity.ErrEmbeddingFailed, err)
	}

	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d",
			entity.ErrEmbeddingFailed, len(texts), len(res.Embeddings))
	}

	vectors := make([][]float32, 0, len(res.Embeddings))
	for i, embedding := range res.Embeddings {
		if embedding == nil || len(embedding.Values) != c.config.EmbeddingDimension {
			return nil, fmt.Errorf("%w: invalid embedding at index %d", entity.ErrEmbeddingFailed, i)
		}
		vectors = append(vectors, embedding.Values)
	}

	ctxzap.Debug(ctx, "batch embedded",
		zap.Int("chunk_count", len(vectors)),
		zap.Int("dimension", c.config.EmbeddingDimension),
	)

	return vectors, nil
}
