package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/botbee/botbee-backend/internal/entity"
)

// Extractor pulls plain text out of one uploaded document format.
type Extractor interface {
	Extract(data []byte) (string, error)
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the extractor for a filename, chosen by extension.
func (f *Factory) Create(filename string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return NewPlainTextExtractor(), nil
	case ".pdf":
		return NewPDFExtractor(), nil
	case ".docx":
		return NewDOCXExtractor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidExtension, filepath.Ext(filename))
	}
}
