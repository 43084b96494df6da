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
	"github.com/SscSPs/tax_engagement_app/internal/utils/reconciliation"
)

type pipelineService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewPipelineService creates the funnel reporter.
func NewPipelineService(clientRepo portsrepo.ClientRepositoryFacade, options ...ServiceOption) portssvc.PipelineSvcFacade {
	svc := &pipelineService{clientRepo: clientRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.PipelineSvcFacade = (*pipelineService)(nil)

func (s *pipelineService) Funnel(ctx context.Context) (*domain.FunnelReport, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients for funnel")
		return nil, err
	}
	report := reconciliation.BucketByStage(clients)
	if report.Unstaged > 0 {
		s.LogDebug(ctx, "Clients outside the funnel", slog.Int("unstaged", report.Unstaged))
	}
	return &report, nil
}

func (s *pipelineService) UpdatePipelineStage(ctx context.Context, clientID string, req dto.UpdatePipelineStageRequest, userID string) (*domain.Client, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	stage, err := domain.ParsePipelineStage(req.Stage)
	if err != nil {
		return nil, fmt.Errorf("update pipeline stage: %w", err)
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.clientRepo.UpdatePipelineStage(ctx, clientID, stage, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update pipeline stage",
			slog.String("client_id", clientID),
			slog.String("stage", string(stage)))
		return nil, fmt.Errorf("failed to update pipeline stage: %w", err)
	}

	previous := "none"
	if client.PipelineStage != nil {
		previous = string(*client.PipelineStage)
	}
	client.PipelineStage = &stage
	client.LastUpdatedAt = now
	client.LastUpdatedBy = userID
	s.RecordActivity(ctx, domain.ActionPipelineStageChanged, nil, &client.ClientID,
		fmt.Sprintf("%s -> %s", previous, stage))
	return client, nil
}
