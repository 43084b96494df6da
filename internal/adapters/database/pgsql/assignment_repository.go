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
	"github.com/shopspring/decimal"
)

const assignmentColumns = `a.assignment_id, a.client_id, a.expert_id, a.jurisdiction, a.status, a.earnings,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by`

// Expert and client rows are left-joined: a missing expert profile must not hide the assignment.
const assignmentDetailQuery = `
	SELECT ` + assignmentColumns + `, e.name, c.name
	FROM assignments a
	LEFT JOIN experts e ON e.expert_id = a.expert_id
	LEFT JOIN clients c ON c.client_id = a.client_id
`

type PgxAssignmentRepository struct {
	BaseRepository
}

func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

func assignmentDest(a *domain.Assignment) []any {
	return []any{
		&a.AssignmentID,
		&a.ClientID,
		&a.ExpertID,
		&a.Jurisdiction,
		&a.Status,
		&a.Earnings,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	}
}

func (r *PgxAssignmentRepository) findOne(ctx context.Context, where string, what string, args ...any) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments a WHERE ` + where + `;`
	var a domain.Assignment
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(assignmentDest(&a)...); err != nil {
		return nil, wrapReadError(err, what)
	}
	return &a, nil
}

// FindAssignmentByID retrieves an assignment by ID.
func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	return r.findOne(ctx, `a.assignment_id = $1`, "assignment "+assignmentID, assignmentID)
}

// FindAssignment retrieves the assignment for a triple, whatever its status.
func (r *PgxAssignmentRepository) FindAssignment(ctx context.Context, clientID, expertID, jurisdiction string) (*domain.Assignment, error) {
	return r.findOne(ctx, `a.client_id = $1 AND a.expert_id = $2 AND a.jurisdiction = $3`,
		fmt.Sprintf("assignment %s/%s/%s", clientID, expertID, jurisdiction), clientID, expertID, jurisdiction)
}

// ListAssignmentsByExpert retrieves the expert's assignments. The expert_id
// predicate is always applied so a viewer can never see other experts' rows.
func (r *PgxAssignmentRepository) ListAssignmentsByExpert(ctx context.Context, expertID string, includeInactive bool) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments a WHERE a.expert_id = $1`
	if !includeInactive {
		query += ` AND a.status = 'active'`
	}
	query += ` ORDER BY a.client_id, a.jurisdiction;`

	rows, err := r.Pool.Query(ctx, query, expertID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments for expert %s: %w", expertID, err)
	}
	defer rows.Close()

	assignments := make([]domain.Assignment, 0)
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(assignmentDest(&a)...); err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return assignments, nil
}

func collectAssignmentDetails(rows pgx.Rows) ([]domain.AssignmentDetail, error) {
	defer rows.Close()
	details := make([]domain.AssignmentDetail, 0)
	for rows.Next() {
		var d domain.AssignmentDetail
		dest := append(assignmentDest(&d.Assignment), &d.ExpertName, &d.ClientName)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan assignment detail row: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment detail rows: %w", err)
	}
	return details, nil
}

// ListAssignmentDetailsByClientIDs retrieves every assignment of the given clients with names.
func (r *PgxAssignmentRepository) ListAssignmentDetailsByClientIDs(ctx context.Context, clientIDs []string) ([]domain.AssignmentDetail, error) {
	if len(clientIDs) == 0 {
		return []domain.AssignmentDetail{}, nil
	}
	rows, err := r.Pool.Query(ctx, assignmentDetailQuery+` WHERE a.client_id = ANY($1) ORDER BY a.client_id, a.jurisdiction;`, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment details by client IDs: %w", err)
	}
	return collectAssignmentDetails(rows)
}

// ListAllAssignmentDetails retrieves every assignment with names.
func (r *PgxAssignmentRepository) ListAllAssignmentDetails(ctx context.Context) ([]domain.AssignmentDetail, error) {
	rows, err := r.Pool.Query(ctx, assignmentDetailQuery+` ORDER BY a.client_id, a.jurisdiction;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment details: %w", err)
	}
	return collectAssignmentDetails(rows)
}

// SaveAssignment inserts a new assignment.
func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, a domain.Assignment) error {
	query := `
		INSERT INTO assignments (assignment_id, client_id, expert_id, jurisdiction, status, earnings, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		a.AssignmentID,
		a.ClientID,
		a.ExpertID,
		a.Jurisdiction,
		string(a.Status),
		a.Earnings,
		a.CreatedAt,
		a.CreatedBy,
		a.LastUpdatedAt,
		a.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("assignment %s/%s/%s", a.ClientID, a.ExpertID, a.Jurisdiction))
	}
	return nil
}

// UpdateAssignmentStatus changes the status of an assignment. Earnings are never reset.
func (r *PgxAssignmentRepository) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status domain.AssignmentStatus, userID string, now time.Time) error {
	query := `
		UPDATE assignments
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE assignment_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), now, userID, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to update status for assignment %s: %w", assignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: assignment %s", apperrors.ErrNotFound, assignmentID)
	}
	return nil
}

// IncrementAssignmentEarningsInTx credits amount to the pair's oldest active
// assignment within tx, so a pair working several jurisdictions is credited once.
func (r *PgxAssignmentRepository) IncrementAssignmentEarningsInTx(ctx context.Context, tx pgx.Tx, clientID, expertID string, amount decimal.Decimal, userID string, now time.Time) (int64, error) {
	query := `
		UPDATE assignments
		SET earnings = earnings + $1, last_updated_at = $2, last_updated_by = $3
		WHERE assignment_id = (
			SELECT assignment_id FROM assignments
			WHERE client_id = $4 AND expert_id = $5 AND status = 'active'
			ORDER BY created_at, assignment_id
			LIMIT 1
			FOR UPDATE
		);
	`
	cmdTag, err := tx.Exec(ctx, query, amount, now, userID, clientID, expertID)
	if err != nil {
		return 0, fmt.Errorf("failed to increment earnings for %s/%s: %w", clientID, expertID, err)
	}
	return cmdTag.RowsAffected(), nil
}
