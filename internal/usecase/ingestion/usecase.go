package ingestion

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/entity"
	"github.com/botbee/botbee-backend/internal/pkg/chunker"
	"github.com/botbee/botbee-backend/internal/pkg/extractor"
	"github.com/botbee/botbee-backend/internal/pkg/validator"
	"github.com/botbee/botbee-backend/internal/repository"
)

// IngestionUsecase runs the knowledge pipeline: acquire text for a resource,
// normalize it, chunk it, embed every chunk, and persist resource plus chunks
// as one unit. Any stage failure aborts the whole operation; no partial
// resource is ever stored and nothing is retried.
type IngestionUsecase struct {
	botRepo      repository.BotRepository
	resourceRepo repository.ResourceRepository
	validator    *validator.Validator
	extractors   *extractor.Factory
	chunker      *chunker.Chunker
	embedder     Embedder
	scraper      Scraper
	transcriber  Transcriber
	logger       *zap.Logger
}

func NewUsecase(
	botRepo repository.BotRepository,
	resourceRepo repository.ResourceRepository,
	validator *validator.Validator,
	extractors *extractor.Factory,
	chunker *chunker.Chunker,
	embedder Embedder,
	scraper Scraper,
	transcriber Transcriber,
	logger *zap.Logger,
) *IngestionUsecase {
	return &IngestionUsecase{
		botRepo:      botRepo,
		resourceRepo: resourceRepo,
		validator:    validator,
		extractors:   extractors,
		chunker:      chunker,
		embedder:     embedder,
		scraper:      scraper,
		transcriber:  transcriber,
		logger:       logger,
	}
}

// IngestFile extracts text from an uploaded document and ingests it.
func (uc *IngestionUsecase) IngestFile(ctx context.Context, req *entity.IngestFileRequest) (*entity.Resource, error) {
	if err := uc.validator.ValidateDocumentUpload(req.File); err != nil {
		return nil, err
	}
	if err := uc.checkBotOwnership(ctx, req.BotID, req.UserID); err != nil {
		return nil, err
	}

	data, err := readUpload(req.File)
	if err != nil {
		return nil, err
	}

	ext, err := uc.extractors.Create(req.File.Filename)
	if err != nil {
		return nil, err
	}

	text, err := ext.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrExtractionFailed, err)
	}

	name := req.Name
	if name == "" {
		name = validator.SanitizeFilename(req.File.Filename)
	}

	return uc.ingestText(ctx, &entity.Resource{
		BotID:       req.BotID,
		UserID:      req.UserID,
		Name:        name,
		Description: req.Description,
		Kind:        entity.ResourceKindFile,
		FileSize:    req.File.Size,
	}, text)
}

// IngestURL scrapes a web page and ingests its content.
func (uc *IngestionUsecase) IngestURL(ctx context.Context, req *entity.IngestURLRequest) (*entity.Resource, error) {
	if err := uc.validator.ValidateURL(req.URL); err != nil {
		return nil, err
	}
	if err := uc.checkBotOwnership(ctx, req.BotID, req.UserID); err != nil {
		return nil, err
	}

	page, err := uc.scraper.Scrape(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	name := page.Title()
	if name == "" {
		name = req.URL
	}

	return uc.ingestText(ctx, &entity.Resource{
		BotID:  req.BotID,
		UserID: req.UserID,
		Name:   name,
		Kind:   entity.ResourceKindURL,
	}, normalizeWebPage(page))
}

// IngestAudio transcribes an uploaded audio file and ingests the transcript.
// Only the transcript text is kept; the audio itself is never stored.
func (uc *IngestionUsecase) IngestAudio(ctx context.Context, req *entity.IngestAudioRequest) (*entity.Resource, error) {
	mimeType, err := uc.validator.ValidateAudioUpload(req.File)
	if err != nil {
		return nil, err
	}
	if err := uc.checkBotOwnership(ctx, req.BotID, req.UserID); err != nil {
		return nil, err
	}

	file, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open upload: %s", entity.ErrInvalidFile, err)
	}
	defer file.Close()

	transcript, err := uc.transcriber.Transcribe(ctx, file, mimeType)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = validator.SanitizeFilename(req.File.Filename)
	}

	return uc.ingestText(ctx, &entity.Resource{
		BotID:       req.BotID,
		UserID:      req.UserID,
		Name:        name,
		Description: req.Description,
		Kind:        entity.ResourceKindAudio,
		FileSize:    req.File.Size,
	}, normalizeAudio(name, req.Description, transcript))
}

// ListResources returns one page of the caller's documents dashboard.
func (uc *IngestionUsecase) ListResources(ctx context.Context, req *entity.ListResourcesRequest) (*entity.ResourcePage, error) {
	req.Normalize()

	items, total, err := uc.resourceRepo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}

	return &entity.ResourcePage{
		Resources:  items,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// DeleteResource removes a resource and its chunks after an ownership check.
func (uc *IngestionUsecase) DeleteResource(ctx context.Context, resourceID, userID string) error {
	if _, err := uuid.Parse(resourceID); err != nil {
		return fmt.Errorf("%w: invalid resource ID format", entity.ErrInvalidParameter)
	}

	resource, err := uc.resourceRepo.Get(ctx, resourceID)
	if err != nil {
		return err
	}
	if resource.UserID != userID {
		return entity.ErrNotOwner
	}

	if err := uc.resourceRepo.Delete(ctx, resourceID); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	ctxzap.Info(ctx, "resource deleted",
		zap.String("resource_id", resourceID),
		zap.String("kind", string(resource.Kind)),
	)
	return nil
}

// ingestText is the shared tail of the pipeline: chunk, embed, persist.
func (uc *IngestionUsecase) ingestText(ctx context.Context, resource *entity.Resource, text string) (*entity.Resource, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: resource produced no text", entity.ErrEmptyContent)
	}

	parts := uc.chunker.Chunk(text)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: resource produced no chunks", entity.ErrEmptyContent)
	}

	vectors, err := uc.embedder.EmbedBatch(ctx, parts)
	if err != nil {
		return nil, err
	}

	resource.ID = uuid.New().String()
	chunks := make([]entity.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, entity.Chunk{
			ID:         uuid.New().String(),
			ResourceID: resource.ID,
			Content:    part,
			Embedding:  vectors[i],
		})
	}

	created, err := uc.resourceRepo.CreateWithChunks(ctx, *resource, chunks)
	if err != nil {
		return nil, fmt.Errorf("store resource: %w", err)
	}

	ctxzap.Info(ctx, "resource ingested",
		zap.String("resource_id", created.ID),
		zap.String("bot_id", created.BotID),
		zap.String("kind", string(created.Kind)),
		zap.Int("chunk_count", len(chunks)),
	)

	return created, nil
}

func (uc *IngestionUsecase) checkBotOwnership(ctx context.Context, botID, userID string) error {
	if _, err := uuid.Parse(botID); err != nil {
		return fmt.Errorf("%w: invalid bot ID format", entity.ErrInvalidParameter)
	}

	bot, err := uc.botRepo.Get(ctx, botID)
	if err != nil {
		return err
	}
	if bot.UserID != userID {
		return entity.ErrNotOwner
	}
	return nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open upload: %s", entity.ErrInvalidFile, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %s", entity.ErrInvalidFile, err)
	}
	return data, nil
}
