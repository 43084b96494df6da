package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates a base64 cursor from a row's creation time and its ID.
// Feeds ordered newest first resume strictly after this position.
func EncodeToken(createdAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", createdAt.UTC().Format(timeFormat), id)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor created by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return createdAt, parts[1], nil
}

// EncodeMultiFieldToken creates a token with any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
