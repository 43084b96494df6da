package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/SscSPs/tax_engagement_app/internal/platform/validation"
	"github.com/SscSPs/tax_engagement_app/internal/utils/reconciliation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type assignmentService struct {
	BaseService
	assignmentRepo portsrepo.AssignmentRepositoryFacade
}

// NewAssignmentService creates the assignment resolver, writer and authorizer.
func NewAssignmentService(assignmentRepo portsrepo.AssignmentRepositoryFacade, options ...ServiceOption) portssvc.AssignmentSvcFacade {
	svc := &assignmentService{assignmentRepo: assignmentRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func (s *assignmentService) ResolveAssignmentsForExpert(ctx context.Context, expertID string, includeInactive bool) ([]domain.Assignment, error) {
	assignments, err := s.assignmentRepo.ListAssignmentsByExpert(ctx, expertID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve assignments", slog.String("expert_id", expertID))
		return nil, err
	}
	return reconciliation.ScopeToExpert(assignments, expertID, includeInactive), nil
}

func (s *assignmentService) ResolveExpertsForClient(ctx context.Context, viewerExpertID, clientID string) ([]domain.ClientExpert, error) {
	details, err := s.assignmentRepo.ListAssignmentDetailsByClientIDs(ctx, []string{clientID})
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve experts for client", slog.String("client_id", clientID))
		return nil, err
	}
	return reconciliation.ExpertsForClient(details, clientID, viewerExpertID, false), nil
}

func (s *assignmentService) AuthorizeClientAccess(ctx context.Context, expertID, clientID string) error {
	assignments, err := s.assignmentRepo.ListAssignmentsByExpert(ctx, expertID, false)
	if err != nil {
		return err
	}
	for _, a := range reconciliation.ScopeToExpert(assignments, expertID, false) {
		if a.ClientID == clientID {
			return nil
		}
	}
	s.LogWarn(ctx, "Expert has no active assignment on client",
		slog.String("expert_id", expertID),
		slog.String("client_id", clientID))
	return fmt.Errorf("%w: expert %s does not work client %s", apperrors.ErrForbidden, expertID, clientID)
}

func (s *assignmentService) CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, userID string) (*domain.Assignment, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	jurisdiction := strings.ToUpper(strings.TrimSpace(req.Jurisdiction))

	existing, err := s.assignmentRepo.FindAssignment(ctx, req.ClientID, req.ExpertID, jurisdiction)
	switch {
	case err == nil:
		if existing.IsActive() {
			return nil, fmt.Errorf("%w: expert %s already works client %s in %s",
				apperrors.ErrDuplicate, req.ExpertID, req.ClientID, jurisdiction)
		}
		return s.transition(ctx, existing, domain.AssignmentActive, userID)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up assignment",
			slog.String("client_id", req.ClientID),
			slog.String("expert_id", req.ExpertID))
		return nil, err
	}

	now := s.Now()
	assignment := domain.Assignment{
		AssignmentID: uuid.NewString(),
		ClientID:     req.ClientID,
		ExpertID:     req.ExpertID,
		Jurisdiction: jurisdiction,
		Status:       domain.AssignmentActive,
		Earnings:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.assignmentRepo.SaveAssignment(ctx, assignment); err != nil {
		s.LogError(ctx, err, "Failed to save assignment",
			slog.String("client_id", req.ClientID),
			slog.String("expert_id", req.ExpertID))
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	s.RecordActivity(ctx, domain.ActionAssignmentCreated, &assignment.ExpertID, &assignment.ClientID, jurisdiction)
	return &assignment, nil
}

func (s *assignmentService) DeactivateAssignment(ctx context.Context, assignmentID string, userID string) (*domain.Assignment, error) {
	return s.transitionByID(ctx, assignmentID, domain.AssignmentInactive, userID)
}

func (s *assignmentService) ReactivateAssignment(ctx context.Context, assignmentID string, userID string) (*domain.Assignment, error) {
	return s.transitionByID(ctx, assignmentID, domain.AssignmentActive, userID)
}

func (s *assignmentService) transitionByID(ctx context.Context, assignmentID string, next domain.AssignmentStatus, userID string) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, assignment, next, userID)
}

// transition moves an assignment along the state machine. Earnings carry over.
func (s *assignmentService) transition(ctx context.Context, assignment *domain.Assignment, next domain.AssignmentStatus, userID string) (*domain.Assignment, error) {
	if !assignment.Status.CanTransitionTo(next) {
		return nil, apperrors.NewValidationError("status",
			fmt.Sprintf("cannot move assignment from %s to %s", assignment.Status, next))
	}

	now := s.Now()
	if err := s.assignmentRepo.UpdateAssignmentStatus(ctx, assignment.AssignmentID, next, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update assignment status",
			slog.String("assignment_id", assignment.AssignmentID),
			slog.String("status", string(next)))
		return nil, fmt.Errorf("failed to update assignment status: %w", err)
	}
	assignment.Status = next
	assignment.LastUpdatedAt = now
	assignment.LastUpdatedBy = userID

	action := domain.ActionAssignmentReactivated
	if next == domain.AssignmentInactive {
		action = domain.ActionAssignmentDeactivated
	}
	s.RecordActivity(ctx, action, &assignment.ExpertID, &assignment.ClientID, assignment.Jurisdiction)
	return assignment, nil
}
