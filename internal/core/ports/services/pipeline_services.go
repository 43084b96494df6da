package services

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
)

// PipelineSvcFacade reports on and moves clients through the funnel
type PipelineSvcFacade interface {
	// Funnel buckets every client by pipeline stage.
	Funnel(ctx context.Context) (*domain.FunnelReport, error)

	// UpdatePipelineStage moves a client to a new stage.
	UpdatePipelineStage(ctx context.Context, clientID string, req dto.UpdatePipelineStageRequest, userID string) (*domain.Client, error)
}
