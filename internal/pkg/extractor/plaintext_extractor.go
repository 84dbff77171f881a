package extractor

import (
	"fmt"
	"unicode/utf8"

	"github.com/botbee/botbee-backend/internal/entity"
)

type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extract(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", entity.ErrInvalidFile)
	}
	return string(data), nil
}
