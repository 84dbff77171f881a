package resource

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/api/middleware"
	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
	"github.com/botbee/botbee-backend/internal/pkg/logger"
	"github.com/botbee/botbee-backend/internal/pkg/response"
)

type Handler struct {
	usecase IngestionUsecase
	cfg     config.FileUploadConfig
}

func NewHandler(usecase IngestionUsecase, cfg config.FileUploadConfig) *Handler {
	return &Handler{
		usecase: usecase,
		cfg:     cfg,
	}
}

// IngestFile handles POST /api/v1/bots/{bot_id}/resources/file
func (h *Handler) IngestFile(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithBot(r.Context(), chi.URLParam(r, "bot_id"))
	ctx = logger.WithAction(ctx, "IngestFile")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid form data or size too large")
		return
	}

	req := entity.IngestFileRequest{
		BotID:       chi.URLParam(r, "bot_id"),
		UserID:      middleware.UserID(ctx),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	if files := r.MultipartForm.File["file"]; len(files) > 0 {
		req.File = files[0]
	}

	resource, err := h.usecase.IngestFile(ctx, &req)
	if err != nil {
		handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "file ingested", zap.String("resource_id", resource.ID))
	response.Created(w, resource)
}

// IngestURL handles POST /api/v1/bots/{bot_id}/resources/url
func (h *Handler) IngestURL(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithBot(r.Context(), chi.URLParam(r, "bot_id"))
	ctx = logger.WithAction(ctx, "IngestURL")

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resource, err := h.usecase.IngestURL(ctx, &entity.IngestURLRequest{
		BotID:  chi.URLParam(r, "bot_id"),
		UserID: middleware.UserID(ctx),
		URL:    body.URL,
	})
	if err != nil {
		handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "url ingested", zap.String("resource_id", resource.ID))
	response.Created(w, resource)
}

// IngestAudio handles POST /api/v1/bots/{bot_id}/resources/audio
func (h *Handler) IngestAudio(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithBot(r.Context(), chi.URLParam(r, "bot_id"))
	ctx = logger.WithAction(ctx, "IngestAudio")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid form data or size too large")
		return
	}

	req := entity.IngestAudioRequest{
		BotID:       chi.URLParam(r, "bot_id"),
		UserID:      middleware.UserID(ctx),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	if files := r.MultipartForm.File["file"]; len(files) > 0 {
		req.File = files[0]
	}

	resource, err := h.usecase.IngestAudio(ctx, &req)
	if err != nil {
		handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "audio ingested", zap.String("resource_id", resource.ID))
	response.Created(w, resource)
}

// ListResources handles GET /api/v1/resources
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListResources")

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := h.usecase.ListResources(ctx, &entity.ListResourcesRequest{
		UserID: middleware.UserID(ctx),
		Query:  r.URL.Query().Get("query"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		handleUsecaseError(ctx, w, err)
		return
	}

	if page.Resources == nil {
		page.Resources = []*entity.ResourceListItem{}
	}

	ctxzap.Debug(ctx, "resources listed", zap.Int("count", len(page.Resources)))
	response.Success(w, page)
}

// DeleteResource handles DELETE /api/v1/resources/{resource_id}
func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "resource_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("resource_id", resourceID),
		zap.String("action", "DeleteResource"),
	)

	if err := h.usecase.DeleteResource(ctx, resourceID, middleware.UserID(ctx)); err != nil {
		handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "resource deleted")
	response.NoContent(w)
}

func handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrBotNotFound):
		response.Error(w, http.StatusNotFound, "bot not found")
	case errors.Is(err, entity.ErrResourceNotFound):
		response.Error(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, entity.ErrNotOwner):
		response.Error(w, http.StatusForbidden, "resource belongs to another user")
	case errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFile),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrEmptyContent):
		response.ErrorWithReason(w, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, entity.ErrScrapeFailed):
		response.ErrorWithReason(w, http.StatusBadGateway, "ingestion failed", "scrape")
	case errors.Is(err, entity.ErrTranscriptionFailed):
		response.ErrorWithReason(w, http.StatusBadGateway, "ingestion failed", "transcription")
	case errors.Is(err, entity.ErrEmbeddingFailed):
		response.ErrorWithReason(w, http.StatusBadGateway, "ingestion failed", "embedding")
	case errors.Is(err, entity.ErrExtractionFailed):
		response.ErrorWithReason(w, http.StatusBadRequest, "ingestion failed", "extraction")
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
