package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/entity"
	"github.com/botbee/botbee-backend/internal/pkg/logger"
	"github.com/botbee/botbee-backend/internal/pkg/response"
)

type Handler struct {
	usecase ChatUsecase
}

func NewHandler(usecase ChatUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Chat handles POST /api/v1/bots/{bot_id}/chat as a server-sent event stream.
// The route is public: it serves the embeddable widget on customer sites.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithBot(r.Context(), chi.URLParam(r, "bot_id"))
	ctx = logger.WithAction(ctx, "Chat")

	var body struct {
		Messages []entity.ChatMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Error(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	req := &entity.ChatRequest{
		BotID:    chi.URLParam(r, "bot_id"),
		Messages: body.Messages,
	}

	// SSE headers are written lazily: until the first event goes out, errors
	// can still be reported as a plain JSON status.
	started := false
	emit := func(event entity.StreamEvent) error {
		if !started {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		return writeEvent(w, flusher, event)
	}

	err := h.usecase.StreamAnswer(ctx, req, emit)
	if err == nil {
		return
	}

	ctxzap.Error(ctx, "chat stream failed", zap.Error(err))

	if !started {
		switch {
		case errors.Is(err, entity.ErrBotNotFound):
			response.Error(w, http.StatusNotFound, "bot not found")
		case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrMissingField):
			response.ErrorWithReason(w, http.StatusBadRequest, "invalid request", err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	// Mid-stream failure: the status line is gone, tell the client in-band
	// so the widget can offer a retry.
	writeEvent(w, flusher, entity.StreamEvent{
		Type: entity.StreamEventError,
		Text: "answer interrupted, please retry",
	})
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event entity.StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
