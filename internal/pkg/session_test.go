package pkg

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNewSessionID(t *testing.T) {
	// When: two session IDs are generated
	first, err := GenerateNewSessionID()
	require.NoError(t, err)

	second, err := GenerateNewSessionID()
	require.NoError(t, err)

	// Then: they are distinct URL-safe encodings of 32 bytes
	assert.NotEqual(t, first, second)

	raw, err := base64.RawURLEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, sessionIDBytes)
}
