package transcriber

import (
	"context"
	"io"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector returns a canned transcript for local development.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Transcribe(ctx context.Context, audio io.Reader, mimeType string) (string, error) {
	n, _ := io.Copy(io.Discard, audio)
	ctxzap.Info(ctx, "[MOCK] transcribing audio",
		zap.String("mime_type", mimeType),
		zap.Int64("bytes", n),
	)

	return "This is a placeholder transcript produced while mocks are enabled.", nil
}
