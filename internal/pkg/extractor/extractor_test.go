package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botbee/botbee-backend/internal/entity"
)

func TestFactory_Create(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		filename string
		want     any
	}{
		{"notes.txt", &PlainTextExtractor{}},
		{"README.md", &PlainTextExtractor{}},
		{"report.PDF", &PDFExtractor{}},
		{"contract.docx", &DOCXExtractor{}},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ext, err := factory.Create(tt.filename)
			require.NoError(t, err)
			assert.IsType(t, tt.want, ext)
		})
	}
}

func TestFactory_Create_UnsupportedExtension(t *testing.T) {
	factory := NewFactory()

	_, err := factory.Create("archive.zip")

	assert.ErrorIs(t, err, entity.ErrInvalidExtension)
}

func TestPlainTextExtractor(t *testing.T) {
	ext := NewPlainTextExtractor()

	text, err := ext.Extract([]byte("hello knowledge base"))

	require.NoError(t, err)
	assert.Equal(t, "hello knowledge base", text)
}

func TestPlainTextExtractor_RejectsBinary(t *testing.T) {
	ext := NewPlainTextExtractor()

	_, err := ext.Extract([]byte{0xff, 0xfe, 0x00, 0x80})

	assert.ErrorIs(t, err, entity.ErrInvalidFile)
}
