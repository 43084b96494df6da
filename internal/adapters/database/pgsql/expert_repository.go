package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expertColumns = `expert_id, name, email, jurisdictions, specializations, rating, status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExpertRepository struct {
	BaseRepository
}

func newPgxExpertRepository(pool *pgxpool.Pool) portsrepo.ExpertRepositoryFacade {
	return &PgxExpertRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpertRepositoryFacade = (*PgxExpertRepository)(nil)

func scanExpert(row pgx.Row) (domain.Expert, error) {
	var e domain.Expert
	var name, email *string
	err := row.Scan(
		&e.ExpertID,
		&name,
		&email,
		&e.Jurisdictions,
		&e.Specializations,
		&e.Rating,
		&e.Status,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return domain.Expert{}, err
	}
	if name != nil {
		e.Name = *name
	}
	if email != nil {
		e.Email = *email
	}
	e.Jurisdictions = nonNil(e.Jurisdictions)
	e.Specializations = nonNil(e.Specializations)
	return e, nil
}

// FindExpertByID retrieves an expert by ID.
func (r *PgxExpertRepository) FindExpertByID(ctx context.Context, expertID string) (*domain.Expert, error) {
	query := `SELECT ` + expertColumns + ` FROM experts WHERE expert_id = $1;`
	e, err := scanExpert(r.Pool.QueryRow(ctx, query, expertID))
	if err != nil {
		return nil, wrapReadError(err, "expert "+expertID)
	}
	return &e, nil
}

// ListExperts retrieves every expert ordered by name.
func (r *PgxExpertRepository) ListExperts(ctx context.Context) ([]domain.Expert, error) {
	query := `SELECT ` + expertColumns + ` FROM experts ORDER BY name NULLS LAST, expert_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query experts: %w", err)
	}
	defer rows.Close()

	experts := make([]domain.Expert, 0)
	for rows.Next() {
		e, err := scanExpert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expert row: %w", err)
		}
		experts = append(experts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expert rows: %w", err)
	}
	return experts, nil
}

// UpdateExpertStatus sets the expert's platform status.
func (r *PgxExpertRepository) UpdateExpertStatus(ctx context.Context, expertID string, status domain.ExpertStatus, userID string, now time.Time) error {
	query := `
		UPDATE experts
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE expert_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), now, userID, expertID)
	if err != nil {
		return fmt.Errorf("failed to update status for expert %s: %w", expertID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expert %s", apperrors.ErrNotFound, expertID)
	}
	return nil
}
