package retrieval

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/entity"
	"github.com/botbee/botbee-backend/internal/repository"
)

const (
	// similarityThreshold is strict: a chunk scoring exactly at the
	// threshold is not relevant enough to ground an answer.
	similarityThreshold = 0.7
	// resultLimit keeps the answer grounded on the single best match.
	resultLimit = 1
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RetrievalUsecase answers the assistant's knowledge lookups: embed the
// question, then search the bot's chunks by cosine similarity.
type RetrievalUsecase struct {
	chunkRepo repository.ChunkRepository
	embedder  Embedder
	logger    *zap.Logger
}

func NewUsecase(
	chunkRepo repository.ChunkRepository,
	embedder Embedder,
	logger *zap.Logger,
) *RetrievalUsecase {
	return &RetrievalUsecase{
		chunkRepo: chunkRepo,
		embedder:  embedder,
		logger:    logger,
	}
}

// Retrieve returns the most relevant chunk for a question, scoped to one bot.
// A nil result means nothing relevant was found, which is a valid outcome the
// assistant must handle, not an error.
func (uc *RetrievalUsecase) Retrieve(ctx context.Context, botID, question string) (*entity.RetrievedChunk, error) {
	vector, err := uc.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	chunks, err := uc.chunkRepo.SearchSimilar(ctx, botID, vector, similarityThreshold, resultLimit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	if len(chunks) == 0 {
		ctxzap.Debug(ctx, "no relevant knowledge found",
			zap.String("bot_id", botID),
		)
		return nil, nil
	}

	ctxzap.Debug(ctx, "knowledge retrieved",
		zap.String("bot_id", botID),
		zap.Float64("similarity", chunks[0].Similarity),
	)

	return chunks[0], nil
}
