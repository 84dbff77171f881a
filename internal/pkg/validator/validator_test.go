package validator

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
)

func newTestValidator() *Validator {
	return NewValidator(config.FileUploadConfig{
		MaxFileSize:      5 << 20,
		MaxAudioFileSize: 25 << 20,
		MaxUploadSize:    32 << 20,
	})
}

func TestValidateCreateBot(t *testing.T) {
	v := newTestValidator()

	valid := entity.CreateBotRequest{
		Name:     "Support Bot",
		Tone:     entity.BotToneFriendly,
		Language: entity.BotLanguageAmerican,
	}
	assert.NoError(t, v.ValidateCreateBot(&valid))

	tests := []struct {
		name    string
		mutate  func(*entity.CreateBotRequest)
		wantErr error
	}{
		{"missing name", func(r *entity.CreateBotRequest) { r.Name = "" }, entity.ErrMissingField},
		{"unknown tone", func(r *entity.CreateBotRequest) { r.Tone = "Sarcastic" }, entity.ErrInvalidParameter},
		{"unsupported language", func(r *entity.CreateBotRequest) { r.Language = "French" }, entity.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.ErrorIs(t, v.ValidateCreateBot(&req), tt.wantErr)
		})
	}
}

func TestValidateDocumentUpload(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateDocumentUpload(&multipart.FileHeader{Filename: "faq.md", Size: 1024}))
	assert.ErrorIs(t, v.ValidateDocumentUpload(nil), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateDocumentUpload(&multipart.FileHeader{Filename: "x.exe", Size: 10}), entity.ErrInvalidExtension)
	assert.ErrorIs(t, v.ValidateDocumentUpload(&multipart.FileHeader{Filename: "big.pdf", Size: 6 << 20}), entity.ErrFileTooLarge)
}

func TestValidateAudioUpload(t *testing.T) {
	v := newTestValidator()

	mimeType, err := v.ValidateAudioUpload(&multipart.FileHeader{Filename: "call.mp3", Size: 1024})
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", mimeType)

	_, err = v.ValidateAudioUpload(&multipart.FileHeader{Filename: "call.flac", Size: 1024})
	assert.ErrorIs(t, err, entity.ErrInvalidExtension)
}

func TestValidateURL(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateURL("https://example.com/pricing"))
	assert.ErrorIs(t, v.ValidateURL(""), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateURL("not a url"), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateURL("ftp://example.com"), entity.ErrInvalidParameter)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_report_v2.pdf", SanitizeFilename("../my report (v2).pdf"))
}
