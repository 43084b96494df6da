package services

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// ViewSvc assembles the list and detail views of the expert portal and admin console.
// Every view is recomputed on load.
type ViewSvc interface {
	ExpertClientList(ctx context.Context, expertID string, query domain.ClientListQuery) (*domain.ExpertClientListView, error)
	ExpertDashboard(ctx context.Context, expertID string) (*domain.ExpertDashboardView, error)
	AdminClientList(ctx context.Context, query domain.ClientListQuery) (*domain.AdminClientListView, error)
	AdminExpertList(ctx context.Context, query domain.ExpertListQuery) (*domain.AdminExpertListView, error)
	AdminExpertDetail(ctx context.Context, expertID string) (*domain.ExpertDetailView, error)
}
