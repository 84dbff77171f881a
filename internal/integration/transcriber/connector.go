package transcriber

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
)

const transcriptionPrompt = "Transcribe this audio file completely and accurately. " +
	"Return only the transcript text, without commentary or timestamps."

// Connector turns uploaded audio into a plain-text transcript via Gemini.
type Connector struct {
	config config.GeminiConfig
	client *genai.Client
	logger *zap.Logger
}

func NewConnector(
	cfg config.GeminiConfig,
	client *genai.Client,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		config: cfg,
		client: client,
		logger: logger,
	}
}

// Transcribe uploads the audio to the provider's file storage and asks the
// transcription model for the full text. The upload is provider-side scratch
// space, nothing binary is ever written to our own store.
func (c *Connector) Transcribe(ctx context.Context, audio io.Reader, mimeType string) (string, error) {
	ctxzap.Info(ctx, "uploading audio for transcription", zap.String("mime_type", mimeType))

	file, err := c.client.UploadFile(ctx, "", audio, &genai.UploadFileOptions{
		MIMEType: mimeType,
	})
	if err != nil {
		ctxzap.Error(ctx, "audio upload failed", zap.Error(err))
		return "", fmt.Errorf("%w: upload: %s", entity.ErrTranscriptionFailed, err)
	}

	if file.URI == "" || file.MIMEType == "" {
		return "", fmt.Errorf("%w: provider returned incomplete file reference", entity.ErrTranscriptionFailed)
	}

	model := c.client.GenerativeModel(c.config.TranscriptionModel)
	res, err := model.GenerateContent(ctx,
		genai.FileData{URI: file.URI, MIMEType: file.MIMEType},
		genai.Text(transcriptionPrompt),
	)
	if err != nil {
		ctxzap.Error(ctx, "transcription request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %s", entity.ErrTranscriptionFailed, err)
	}

	transcript := collectText(res)
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("%w: model returned empty transcript", entity.ErrTranscriptionFailed)
	}

	ctxzap.Info(ctx, "audio transcribed", zap.Int("transcript_length", len(transcript)))

	return transcript, nil
}

func collectText(res *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range res.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
