package entity

// ScrapedPage is one fetched web page: its content rendered as markdown plus
// whatever metadata the scraping service could recover (title, description).
type ScrapedPage struct {
	Markdown string         `json:"markdown"`
	Metadata map[string]any `json:"metadata"`
}

// Title returns the page title from metadata, if the scraper found one.
func (p *ScrapedPage) Title() string {
	if p.Metadata == nil {
		return ""
	}
	if title, ok := p.Metadata["title"].(string); ok {
		return title
	}
	return ""
}
