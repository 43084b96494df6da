package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "activity-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt), "Created at should match after decode")
	assert.Equal(t, "activity-42", decodedID)

	// Non-UTC times are normalised but keep the same instant
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2026, 1, 1, 3, 0, 0, 0, loc)
	decodedAt, _, err = DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeToken(EncodeMultiFieldToken("2026-05-15T00:00:00Z"))
	assert.Error(t, err, "Should return an error when the id is missing")
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeToken(EncodeMultiFieldToken("notadate", "id"))
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestMultiFieldToken(t *testing.T) {
	fields := []string{"2026-05-15", "abc123", "xyz789"}
	token := EncodeMultiFieldToken(fields...)

	decoded, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, fields, decoded)

	_, err = DecodeMultiFieldToken("not-valid-base64!")
	assert.Error(t, err)
}
