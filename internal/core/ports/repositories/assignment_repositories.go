package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AssignmentReader defines read operations for assignment data
type AssignmentReader interface {
	// FindAssignmentByID retrieves an assignment by ID.
	FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error)

	// FindAssignment retrieves the assignment for a (client, expert, jurisdiction) triple, whatever its status.
	FindAssignment(ctx context.Context, clientID, expertID, jurisdiction string) (*domain.Assignment, error)

	// ListAssignmentsByExpert retrieves the expert's assignments. Inactive ones only when includeInactive is set.
	ListAssignmentsByExpert(ctx context.Context, expertID string, includeInactive bool) ([]domain.Assignment, error)

	// ListAssignmentDetailsByClientIDs retrieves every assignment of the given clients joined with expert and client names.
	ListAssignmentDetailsByClientIDs(ctx context.Context, clientIDs []string) ([]domain.AssignmentDetail, error)

	// ListAllAssignmentDetails retrieves every assignment joined with names.
	ListAllAssignmentDetails(ctx context.Context) ([]domain.AssignmentDetail, error)
}

// AssignmentWriter defines write operations for assignment data
type AssignmentWriter interface {
	// SaveAssignment persists a new assignment. A duplicate triple returns apperrors.ErrDuplicate.
	SaveAssignment(ctx context.Context, assignment domain.Assignment) error

	// UpdateAssignmentStatus changes the status of an assignment. Earnings are left untouched.
	UpdateAssignmentStatus(ctx context.Context, assignmentID string, status domain.AssignmentStatus, userID string, now time.Time) error
}

// AssignmentTransactionSupport defines operations that run inside a caller's transaction
type AssignmentTransactionSupport interface {
	// IncrementAssignmentEarningsInTx credits amount to the oldest active assignment of the pair.
	// It returns the number of assignments updated, 0 or 1.
	IncrementAssignmentEarningsInTx(ctx context.Context, tx pgx.Tx, clientID, expertID string, amount decimal.Decimal, userID string, now time.Time) (int64, error)
}

// AssignmentRepositoryFacade combines all assignment-related repository interfaces
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
	AssignmentTransactionSupport
}
