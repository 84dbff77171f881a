package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/botbee/botbee-backend/internal/entity"
)

// ChunkRepository is the similarity-query side of the knowledge store.
type ChunkRepository interface {
	SearchSimilar(ctx context.Context, botID string, queryVector []float32, threshold float64, limit int) ([]*entity.RetrievedChunk, error)
}

var _ ChunkRepository = &ChunkPostgres{}

// ChunkPostgres implements ChunkRepository using PostgreSQL with pgvector
type ChunkPostgres struct {
	db *pgxpool.Pool
}

func NewChunkPostgres(db *pgxpool.Pool) *ChunkPostgres {
	return &ChunkPostgres{db: db}
}

// SearchSimilar returns chunks belonging to the bot whose cosine similarity
// to the query vector strictly exceeds the threshold, best first. The join to
// bot_resources is mandatory: chunks from other tenants are never eligible.
func (r *ChunkPostgres) SearchSimilar(ctx context.Context, botID string, queryVector []float32, threshold float64, limit int) ([]*entity.RetrievedChunk, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", entity.ErrInvalidParameter)
	}

	bid, err := toPgUUID(botID)
	if err != nil {
		return nil, fmt.Errorf("parse bot ID: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT c.content, 1 - (c.embedding <=> $1::vector) AS similarity
		FROM bot_resource_chunks c
		JOIN bot_resources r ON r.id = c.resource_id
		WHERE r.bot_id = $2 AND 1 - (c.embedding <=> $1::vector) > $3
		ORDER BY similarity DESC
		LIMIT $4`,
		encodeVector(queryVector), bid, threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity query: %s", entity.ErrStoreQuery, err)
	}
	defer rows.Close()

	var chunks []*entity.RetrievedChunk
	for rows.Next() {
		chunk := &entity.RetrievedChunk{}
		if err := rows.Scan(&chunk.Content, &chunk.Similarity); err != nil {
			return nil, fmt.Errorf("%w: scan chunk: %s", entity.ErrStoreQuery, err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: similarity query: %s", entity.ErrStoreQuery, err)
	}

	return chunks, nil
}
