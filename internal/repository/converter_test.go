package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeVector(t *testing.T) {
	assert.Equal(t, "[]", encodeVector(nil))
	assert.Equal(t, "[1,-0.5,0.25]", encodeVector([]float32{1, -0.5, 0.25}))
}

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New().String()

	pg, err := toPgUUID(id)
	require.NoError(t, err)
	assert.Equal(t, id, fromPgUUID(pg))

	_, err = toPgUUID("not-a-uuid")
	assert.Error(t, err)
}
