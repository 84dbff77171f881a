package validator

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
)

// AllowedDocumentExtensions are the file kinds the ingestion pipeline can extract text from.
var AllowedDocumentExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".pdf":  true,
	".docx": true,
}

// AllowedAudioExtensions are the audio kinds the transcriber accepts.
var AllowedAudioExtensions = map[string]string{
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".m4a": "audio/mp4",
	".ogg": "audio/ogg",
}

// Validator validates ingestion and bot-creation requests.
type Validator struct {
	cfg config.FileUploadConfig
}

func NewValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

func (v *Validator) ValidateCreateBot(req *entity.CreateBotRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name", entity.ErrMissingField)
	}
	if err := req.Tone.Validate(); err != nil {
		return fmt.Errorf("%w: %s", entity.ErrInvalidParameter, err)
	}
	if err := req.Language.Validate(); err != nil {
		return fmt.Errorf("%w: %s", entity.ErrInvalidParameter, err)
	}
	return nil
}

func (v *Validator) ValidateDocumentUpload(fh *multipart.FileHeader) error {
	if fh == nil {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !AllowedDocumentExtensions[ext] {
		return fmt.Errorf("%w: %s (allowed: txt, md, pdf, docx)", entity.ErrInvalidExtension, ext)
	}

	if fh.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxFileSize)
	}

	return nil
}

// ValidateAudioUpload checks the upload and returns the mime type the
// transcriber should use for it.
func (v *Validator) ValidateAudioUpload(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mimeType, ok := AllowedAudioExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s (allowed: mp3, wav, m4a, ogg)", entity.ErrInvalidExtension, ext)
	}

	if fh.Size > v.cfg.MaxAudioFileSize {
		return "", fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxAudioFileSize)
	}

	return mimeType, nil
}

func (v *Validator) ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: url", entity.ErrMissingField)
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%w: url must be absolute", entity.ErrInvalidParameter)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: url scheme must be http or https", entity.ErrInvalidParameter)
	}

	return nil
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
