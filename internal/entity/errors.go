package entity

import "errors"

// Domain errors
var (
	// Ingestion pipeline errors. Each stage gets its own sentinel so the API
	// can return a failure reason the dashboard can act on.
	ErrScrapeFailed        = errors.New("scrape failed")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrEmbeddingFailed     = errors.New("embedding failed")
	ErrExtractionFailed    = errors.New("text extraction failed")
	ErrStoreWrite          = errors.New("knowledge store write failed")
	ErrStoreQuery          = errors.New("knowledge store query failed")

	// Chat errors. Provider stream failures are retryable: the client may
	// resubmit the same turn without rebuilding history.
	ErrProviderStream = errors.New("model provider stream failed")

	// Not-found errors
	ErrBotNotFound      = errors.New("bot not found")
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrInvalidFile       = errors.New("invalid file")
	ErrFileTooLarge      = errors.New("file too large")
	ErrInvalidExtension  = errors.New("invalid file extension")
	ErrEmptyContent      = errors.New("no content to ingest")
	ErrNotOwner          = errors.New("caller does not own this entity")
)
