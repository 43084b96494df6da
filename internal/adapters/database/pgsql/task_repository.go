package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `task_id, client_id, expert_id, title, status, due_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxTaskRepository struct {
	BaseRepository
}

func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskReader {
	return &PgxTaskRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaskReader = (*PgxTaskRepository)(nil)

func (r *PgxTaskRepository) list(ctx context.Context, where string, args ...any) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY client_id, created_at, task_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		err := rows.Scan(
			&t.TaskID,
			&t.ClientID,
			&t.ExpertID,
			&t.Title,
			&t.Status,
			&t.DueDate,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

func (r *PgxTaskRepository) ListTasksByExpert(ctx context.Context, expertID string) ([]domain.Task, error) {
	return r.list(ctx, `expert_id = $1`, expertID)
}

func (r *PgxTaskRepository) ListTasksByClientIDs(ctx context.Context, clientIDs []string) ([]domain.Task, error) {
	if len(clientIDs) == 0 {
		return []domain.Task{}, nil
	}
	return r.list(ctx, `client_id = ANY($1)`, clientIDs)
}

func (r *PgxTaskRepository) ListAllTasks(ctx context.Context) ([]domain.Task, error) {
	return r.list(ctx, "")
}
