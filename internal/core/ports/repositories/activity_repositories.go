package repositories

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// ActivityRepository defines operations on the append-only activity log
type ActivityRepository interface {
	// SaveActivity appends an entry.
	SaveActivity(ctx context.Context, entry domain.ActivityLogEntry) error

	// ListActivity retrieves entries newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListActivity(ctx context.Context, filter domain.ActivityFilter, limit int, nextToken *string) ([]domain.ActivityLogEntry, *string, error)
}
