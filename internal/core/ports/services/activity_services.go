package services

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// ActivitySvc reads and appends the activity log
type ActivitySvc interface {
	// ListActivity returns a page of entries newest first and the token for the next page.
	ListActivity(ctx context.Context, filter domain.ActivityFilter, limit int, nextToken *string) ([]domain.ActivityLogEntry, *string, error)

	// Record appends an entry. Failures are logged and never returned: the log is for display only.
	Record(ctx context.Context, action string, expertID, clientID *string, details string)
}
