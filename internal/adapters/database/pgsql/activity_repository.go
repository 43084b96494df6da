package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	"github.com/SscSPs/tax_engagement_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultActivityLimit = 20

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepository {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityRepository = (*PgxActivityRepository)(nil)

// SaveActivity appends an entry to the log.
func (r *PgxActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_log (activity_id, expert_id, client_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, entry.ActivityID, entry.ExpertID, entry.ClientID, entry.Action, entry.Details, entry.CreatedAt)
	if err != nil {
		return wrapWriteError(err, "activity "+entry.ActivityID)
	}
	return nil
}

// ListActivity retrieves entries newest first. The token points at the last
// entry of the previous page; the next page starts strictly after it.
func (r *PgxActivityRepository) ListActivity(ctx context.Context, filter domain.ActivityFilter, limit int, nextToken *string) ([]domain.ActivityLogEntry, *string, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	var conditions []string
	var args []any
	if filter.ExpertID != "" {
		args = append(args, filter.ExpertID)
		conditions = append(conditions, "expert_id = $"+strconv.Itoa(len(args)))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conditions = append(conditions, "client_id = $"+strconv.Itoa(len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastCreatedAt, lastID)
		conditions = append(conditions, fmt.Sprintf("(created_at, activity_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT activity_id, expert_id, client_id, action, details, created_at FROM activity_log`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY created_at DESC, activity_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query activity log", err)
	}
	defer rows.Close()

	entries := make([]domain.ActivityLogEntry, 0, fetchLimit)
	for rows.Next() {
		var e domain.ActivityLogEntry
		if err := rows.Scan(&e.ActivityID, &e.ExpertID, &e.ClientID, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan activity row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating activity rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ActivityID)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}
