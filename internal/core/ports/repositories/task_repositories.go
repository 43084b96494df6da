package repositories

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// TaskReader defines read operations for task data. Progress is always
// derived from these rows and never stored.
type TaskReader interface {
	ListTasksByExpert(ctx context.Context, expertID string) ([]domain.Task, error)
	ListTasksByClientIDs(ctx context.Context, clientIDs []string) ([]domain.Task, error)
	ListAllTasks(ctx context.Context) ([]domain.Task, error)
}
