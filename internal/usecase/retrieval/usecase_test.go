package retrieval

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/entity"
)

// memoryChunkStore is an in-memory stand-in for the pgvector query: it ranks
// stored vectors by cosine similarity with the same strict threshold.
type memoryChunkStore struct {
	chunks []storedChunk
}

type storedChunk struct {
	botID   string
	content string
	vector  []float32
}

func (s *memoryChunkStore) SearchSimilar(_ context.Context, botID string, query []float32, threshold float64, limit int) ([]*entity.RetrievedChunk, error) {
	var results []*entity.RetrievedChunk
	for _, c := range s.chunks {
		if c.botID != botID {
			continue
		}
		sim := cosine(query, c.vector)
		if sim > threshold {
			results = append(results, &entity.RetrievedChunk{Content: c.content, Similarity: sim})
		}
	}

	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			if results[j].Similarity > results[i].Similarity {
				results[i], results[j] = results[j], results[i]
			}
		}
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// lookupEmbedder returns a canned vector per text.
type lookupEmbedder struct {
	vectors map[string][]float32
}

func (l *lookupEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v, ok := l.vectors[text]
	if !ok {
		return nil, entity.ErrEmbeddingFailed
	}
	return v, nil
}

func TestRetrieve_ReturnsBestMatch(t *testing.T) {
	store := &memoryChunkStore{chunks: []storedChunk{
		{botID: "bot-1", content: "Refunds within 30 days.", vector: []float32{1, 0, 0}},
		{botID: "bot-1", content: "Shipping takes a week.", vector: []float32{0.7, 0.7, 0}},
	}}
	embedder := &lookupEmbedder{vectors: map[string][]float32{
		"what is the refund policy": {0.95, 0.05, 0},
	}}

	uc := NewUsecase(store, embedder, zap.NewNop())

	chunk, err := uc.Retrieve(context.Background(), "bot-1", "what is the refund policy")
	require.NoError(t, err)
	require.NotNil(t, chunk)
	assert.Equal(t, "Refunds within 30 days.", chunk.Content)
	assert.Greater(t, chunk.Similarity, 0.7)
}

func TestRetrieve_ScopedToBot(t *testing.T) {
	store := &memoryChunkStore{chunks: []storedChunk{
		{botID: "other-bot", content: "Secret tenant data.", vector: []float32{1, 0, 0}},
	}}
	embedder := &lookupEmbedder{vectors: map[string][]float32{
		"question": {1, 0, 0},
	}}

	uc := NewUsecase(store, embedder, zap.NewNop())

	chunk, err := uc.Retrieve(context.Background(), "bot-1", "question")
	require.NoError(t, err)
	assert.Nil(t, chunk)
}

func TestRetrieve_ThresholdIsStrict(t *testing.T) {
	// Vector at an angle whose cosine with the query is exactly 0.7.
	angle := math.Acos(0.7)
	store := &memoryChunkStore{chunks: []storedChunk{
		{botID: "bot-1", content: "Borderline chunk.", vector: []float32{float32(math.Cos(angle)), float32(math.Sin(angle)), 0}},
	}}
	embedder := &lookupEmbedder{vectors: map[string][]float32{
		"question": {1, 0, 0},
	}}

	uc := NewUsecase(store, embedder, zap.NewNop())

	chunk, err := uc.Retrieve(context.Background(), "bot-1", "question")
	require.NoError(t, err)
	assert.Nil(t, chunk, "similarity equal to the threshold must not match")
}

func TestRetrieve_SelfSimilarity(t *testing.T) {
	vector := []float32{0.3, 0.5, 0.8}
	store := &memoryChunkStore{chunks: []storedChunk{
		{botID: "bot-1", content: "The exact same text.", vector: vector},
	}}
	embedder := &lookupEmbedder{vectors: map[string][]float32{
		"The exact same text.": vector,
	}}

	uc := NewUsecase(store, embedder, zap.NewNop())

	chunk, err := uc.Retrieve(context.Background(), "bot-1", "The exact same text.")
	require.NoError(t, err)
	require.NotNil(t, chunk)
	assert.InDelta(t, 1.0, chunk.Similarity, 1e-6)
}

func TestRetrieve_EmbeddingFailure(t *testing.T) {
	uc := NewUsecase(&memoryChunkStore{}, &lookupEmbedder{}, zap.NewNop())

	_, err := uc.Retrieve(context.Background(), "bot-1", "unknown question")
	assert.ErrorIs(t, err, entity.ErrEmbeddingFailed)
}
