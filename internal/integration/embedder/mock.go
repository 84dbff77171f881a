package embedder

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockDimension = 768

// MockConnector produces deterministic pseudo-embeddings so the full
// ingestion and retrieval paths work without a provider key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] embedding text", zap.Int("length", len(text)))
	return mockVector(text), nil
}

func (m *MockConnector) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] embedding batch", zap.Int("chunk_count", len(texts)))

	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vectors = append(vectors, mockVector(text))
	}
	return vectors, nil
}

// mockVector derives an L2-normalized vector from a hash of the text, so
// identical texts always embed identically.
func mockVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float32, mockDimension)
	var norm float64
	for i := range vector {
		seed = seed*6364136223846793005 + 1442695040888963407
		v := float32(int64(seed>>32)) / math.MaxInt32
		vector[i] = v
		norm += float64(v) * float64(v)
	}

	norm = math.Sqrt(norm)
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
	return vector
}
