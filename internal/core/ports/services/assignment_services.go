package services

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
)

// AssignmentResolverSvc answers who works which client
type AssignmentResolverSvc interface {
	// ResolveAssignmentsForExpert returns only the viewer's own assignments.
	// Inactive assignments are included only when includeInactive is set.
	ResolveAssignmentsForExpert(ctx context.Context, expertID string, includeInactive bool) ([]domain.Assignment, error)

	// ResolveExpertsForClient lists every expert actively assigned to the client,
	// tagging the viewer's own rows with IsSelf.
	ResolveExpertsForClient(ctx context.Context, viewerExpertID, clientID string) ([]domain.ClientExpert, error)
}

// AssignmentWriterSvc defines the assignment lifecycle
type AssignmentWriterSvc interface {
	// CreateAssignment creates an active assignment, or re-activates an inactive one for the same triple.
	CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, userID string) (*domain.Assignment, error)

	// DeactivateAssignment moves an active assignment to inactive.
	DeactivateAssignment(ctx context.Context, assignmentID string, userID string) (*domain.Assignment, error)

	// ReactivateAssignment moves an inactive assignment back to active.
	ReactivateAssignment(ctx context.Context, assignmentID string, userID string) (*domain.Assignment, error)
}

// EngagementAuthorizerSvc checks that an expert works a client
type EngagementAuthorizerSvc interface {
	// AuthorizeClientAccess returns apperrors.ErrForbidden unless expertID has an active assignment on clientID.
	AuthorizeClientAccess(ctx context.Context, expertID, clientID string) error
}

// AssignmentSvcFacade combines all assignment-related service interfaces
type AssignmentSvcFacade interface {
	AssignmentResolverSvc
	AssignmentWriterSvc
	EngagementAuthorizerSvc
}
