package ingestion

import (
	"encoding/json"
	"fmt"

	"github.com/botbee/botbee-backend/internal/entity"
)

// normalizeAudio wraps a transcript with its provenance header. The layout is
// part of the stored data contract: chunks embedded from it carry the file
// name and description as retrievable context.
func normalizeAudio(name, description, transcript string) string {
	return fmt.Sprintf(
		"AUDIO FILE NAME: %s\nDescription: %s\n\nOriginal Content:\n\n%s",
		name, description, transcript,
	)
}

// normalizeWebPage serializes a scraped page into one text blob: the markdown
// body followed by the scraper's metadata, so titles and descriptions are
// searchable alongside the page content.
func normalizeWebPage(page *entity.ScrapedPage) string {
	if len(page.Metadata) == 0 {
		return page.Markdown
	}

	meta, err := json.Marshal(page.Metadata)
	if err != nil {
		return page.Markdown
	}

	return page.Markdown + "\n\nPage Metadata:\n" + string(meta)
}
