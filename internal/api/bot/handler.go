package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/api/middleware"
	"github.com/botbee/botbee-backend/internal/entity"
	"github.com/botbee/botbee-backend/internal/pkg/logger"
	"github.com/botbee/botbee-backend/internal/pkg/response"
)

type Handler struct {
	usecase BotUsecase
}

func NewHandler(usecase BotUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreateBot handles POST /api/v1/bots
func (h *Handler) CreateBot(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateBot")

	var req entity.CreateBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = middleware.UserID(ctx)

	bot, err := h.usecase.CreateBot(ctx, &req)
	if err != nil {
		handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "bot created", zap.String("bot_id", bot.ID))
	response.Created(w, toBotResponse(bot))
}

// ListBots handles GET /api/v1/bots
func (h *Handler) ListBots(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListBots")

	bots, err := h.usecase.ListBots(ctx, middleware.UserID(ctx))
	if err != nil {
		handleUsecaseError(ctx, w, err)
		return
	}

	if bots == nil {
		bots = []*entity.BotSummary{}
	}

	ctxzap.Debug(ctx, "bots listed", zap.Int("count", len(bots)))
	response.Success(w, &listBotsResponse{Bots: bots})
}

// GetBot handles GET /api/v1/bots/{bot_id}
func (h *Handler) GetBot(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithBot(r.Context(), chi.URLParam(r, "bot_id"))
	ctx = logger.WithAction(ctx, "GetBot")

	bot, err := h.usecase.GetBot(ctx, chi.URLParam(r, "bot_id"), middleware.UserID(ctx))
	if err != nil {
		handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toBotResponse(bot))
}

// DeleteBot handles DELETE /api/v1/bots/{bot_id}
func (h *Handler) DeleteBot(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithBot(r.Context(), chi.URLParam(r, "bot_id"))
	ctx = logger.WithAction(ctx, "DeleteBot")

	if err := h.usecase.DeleteBot(ctx, chi.URLParam(r, "bot_id"), middleware.UserID(ctx)); err != nil {
		handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "bot deleted")
	response.NoContent(w)
}

func handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrBotNotFound):
		response.Error(w, http.StatusNotFound, "bot not found")
	case errors.Is(err, entity.ErrNotOwner):
		response.Error(w, http.StatusForbidden, "bot belongs to another user")
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrMissingField):
		response.ErrorWithReason(w, http.StatusBadRequest, "invalid request", err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
