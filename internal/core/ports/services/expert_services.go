package services

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
)

// ExpertSvcFacade defines operations on expert profiles
type ExpertSvcFacade interface {
	// GetExpert retrieves an expert by ID. Returns apperrors.ErrNotFound when missing.
	GetExpert(ctx context.Context, expertID string) (*domain.Expert, error)

	// UpdateExpertStatus changes the platform status of an expert.
	UpdateExpertStatus(ctx context.Context, expertID string, req dto.UpdateExpertStatusRequest, userID string) (*domain.Expert, error)
}
