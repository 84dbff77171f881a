package ingestion

import (
	"context"
	"io"

	"github.com/botbee/botbee-backend/internal/entity"
)

type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Scraper interface {
	Scrape(ctx context.Context, url string) (*entity.ScrapedPage, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, mimeType string) (string, error)
}
