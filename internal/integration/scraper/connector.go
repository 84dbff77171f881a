package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
	"github.com/botbee/botbee-backend/internal/integration/common"
	pkghttp "github.com/botbee/botbee-backend/pkg/http"
)

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool               `json:"success"`
	Data    entity.ScrapedPage `json:"data"`
}

type Connector struct {
	config    config.ScraperConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ScraperConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Scrape fetches one page as markdown plus metadata. No retry: a failed
// scrape aborts the enclosing ingestion and is surfaced to the caller.
func (c *Connector) Scrape(ctx context.Context, url string) (*entity.ScrapedPage, error) {
	ctxzap.Info(ctx, "scraping website", zap.String("url", url))

	req := scrapeRequest{
		URL:     url,
		Formats: []string{"markdown"},
	}

	var resp scrapeResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ScrapeEndpoint, req, &resp)
	if err != nil {
		ctxzap.Error(ctx, "failed to scrape website", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", entity.ErrScrapeFailed, err)
	}

	if !resp.Success || resp.Data.Markdown == "" {
		return nil, fmt.Errorf("%w: scraping service returned no content", entity.ErrScrapeFailed)
	}

	ctxzap.Info(ctx, "website scraped successfully",
		zap.Int("markdown_length", len(resp.Data.Markdown)),
	)

	return &resp.Data, nil
}
