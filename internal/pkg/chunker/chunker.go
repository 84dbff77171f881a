package chunker

import (
	"regexp"
	"strings"
)

const (
	defaultMaxChunkChars = 1000
)

var sentenceSplitter = regexp.MustCompile(`(?m)(?U)([^.!?\n]+[.!?\n])`)

// Chunker splits normalized text into retrieval-sized passages. Splitting is
// deterministic: the same input always yields the same chunk boundaries.
type Chunker struct {
	maxChunkChars int
}

func New(maxChunkChars int) *Chunker {
	if maxChunkChars <= 0 {
		maxChunkChars = defaultMaxChunkChars
	}
	return &Chunker{maxChunkChars: maxChunkChars}
}

// Chunk splits text on sentence boundaries and packs consecutive sentences
// into chunks of at most maxChunkChars. Sentences longer than the budget
// become chunks of their own. Empty segments are discarded. Text after the
// last terminator is kept as a final sentence so no content is lost.
func (c *Chunker) Chunk(text string) []string {
	matches := sentenceSplitter.FindAllStringIndex(text, -1)

	var sentences []string
	last := 0
	for _, m := range matches {
		sentences = append(sentences, text[m[0]:m[1]])
		last = m[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		sentences = append(sentences, tail)
	}
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+1+len(sentence) > c.maxChunkChars {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
