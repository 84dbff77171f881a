package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_Deterministic(t *testing.T) {
	c := New(120)
	text := "Our return policy allows 30-day refunds. Shipping is free above 50 euros. " +
		"Support is available on weekdays.\nOpening hours are 9 to 5."

	first := c.Chunk(text)
	second := c.Chunk(text)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestChunk_EmptyInput(t *testing.T) {
	c := New(0)

	assert.Nil(t, c.Chunk(""))
	assert.Nil(t, c.Chunk("   \n\t  "))
}

func TestChunk_RespectsMaxSize(t *testing.T) {
	c := New(60)
	text := "First sentence goes here. Second sentence goes here. Third sentence goes here. Fourth sentence goes here."

	chunks := c.Chunk(text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 60)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestChunk_SingleSentencePerChunkWhenOversized(t *testing.T) {
	c := New(10)
	text := "This sentence is much longer than the chunk budget allows."

	chunks := c.Chunk(text)

	// An oversized sentence is never split mid-sentence, it becomes its own chunk.
	require.Len(t, chunks, 1)
	assert.Equal(t, "This sentence is much longer than the chunk budget allows.", chunks[0])
}

func TestChunk_KeepsUnterminatedTail(t *testing.T) {
	c := New(120)

	chunks := c.Chunk("Refunds are available for 30 days. Opening hours are 9am to 5pm on weekdays")

	require.NotEmpty(t, chunks)
	joined := strings.Join(chunks, " ")
	assert.Contains(t, joined, "Refunds are available for 30 days.")
	assert.Contains(t, joined, "Opening hours are 9am to 5pm on weekdays")
}

func TestChunk_KeepsTrailingStructuredBlock(t *testing.T) {
	c := New(200)

	// Serialized metadata appended after prose ends without a terminator and
	// must survive chunking.
	chunks := c.Chunk("Plans start at 10 euros per month.\n\nPage Metadata:\n{\"title\":\"Pricing page\"}")

	joined := strings.Join(chunks, " ")
	assert.Contains(t, joined, `{"title":"Pricing page"}`)
}

func TestChunk_NoSentenceTerminators(t *testing.T) {
	c := New(100)

	chunks := c.Chunk("just a fragment without punctuation")

	require.Len(t, chunks, 1)
	assert.Equal(t, "just a fragment without punctuation", chunks[0])
}

func TestChunk_PreservesOrder(t *testing.T) {
	c := New(30)
	text := "Alpha first. Beta second. Gamma third."

	chunks := c.Chunk(text)

	joined := strings.Join(chunks, " ")
	assert.Less(t, strings.Index(joined, "Alpha"), strings.Index(joined, "Beta"))
	assert.Less(t, strings.Index(joined, "Beta"), strings.Index(joined, "Gamma"))
}
