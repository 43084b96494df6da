package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/SscSPs/tax_engagement_app/internal/platform/validation"
)

type expertService struct {
	BaseService
	expertRepo portsrepo.ExpertRepositoryFacade
}

// NewExpertService creates a new ExpertService.
func NewExpertService(expertRepo portsrepo.ExpertRepositoryFacade, options ...ServiceOption) portssvc.ExpertSvcFacade {
	svc := &expertService{expertRepo: expertRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.ExpertSvcFacade = (*expertService)(nil)

func (s *expertService) GetExpert(ctx context.Context, expertID string) (*domain.Expert, error) {
	expert, err := s.expertRepo.FindExpertByID(ctx, expertID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get expert", slog.String("expert_id", expertID))
		return nil, err
	}
	return expert, nil
}

func (s *expertService) UpdateExpertStatus(ctx context.Context, expertID string, req dto.UpdateExpertStatusRequest, userID string) (*domain.Expert, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	status, err := domain.ParseExpertStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("update expert status: %w", err)
	}

	expert, err := s.expertRepo.FindExpertByID(ctx, expertID)
	if err != nil {
		return nil, err
	}
	if expert.Status == status {
		return expert, nil
	}

	now := s.Now()
	if err := s.expertRepo.UpdateExpertStatus(ctx, expertID, status, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update expert status",
			slog.String("expert_id", expertID),
			slog.String("status", string(status)))
		return nil, fmt.Errorf("failed to update expert status: %w", err)
	}

	previous := expert.Status
	expert.Status = status
	expert.LastUpdatedAt = now
	expert.LastUpdatedBy = userID
	s.RecordActivity(ctx, domain.ActionExpertStatusChanged, &expert.ExpertID, nil,
		fmt.Sprintf("%s -> %s", previous, status))
	return expert, nil
}
