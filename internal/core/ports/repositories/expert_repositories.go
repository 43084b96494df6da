package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// ExpertReader defines read operations for expert data
type ExpertReader interface {
	// FindExpertByID retrieves an expert by ID. Returns apperrors.ErrNotFound when missing.
	FindExpertByID(ctx context.Context, expertID string) (*domain.Expert, error)

	// ListExperts retrieves every expert ordered by name.
	ListExperts(ctx context.Context) ([]domain.Expert, error)
}

// ExpertWriter defines write operations for expert data
type ExpertWriter interface {
	// UpdateExpertStatus sets the platform status of an expert.
	UpdateExpertStatus(ctx context.Context, expertID string, status domain.ExpertStatus, userID string, now time.Time) error
}

// ExpertRepositoryFacade combines all expert-related repository interfaces
type ExpertRepositoryFacade interface {
	ExpertReader
	ExpertWriter
}
