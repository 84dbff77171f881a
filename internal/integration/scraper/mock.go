package scraper

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/entity"
)

// MockConnector is a stand-in scraper for local development.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Scrape(ctx context.Context, url string) (*entity.ScrapedPage, error) {
	ctxzap.Info(ctx, "[MOCK] scraping website", zap.String("url", url))

	return &entity.ScrapedPage{
		Markdown: "# Mock Page\n\nThis is placeholder page content used when mocks are enabled.",
		Metadata: map[string]any{
			"title":     "Mock Page",
			"sourceURL": url,
		},
	}, nil
}
