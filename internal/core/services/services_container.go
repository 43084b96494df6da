package services

import (
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/platform/config"
	"github.com/SscSPs/tax_engagement_app/internal/utils/reconciliation"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, linker portssvc.DocumentLinker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Activity and assignments first since every other service records to or authorizes through them
	container.Activity = NewActivityService(repos.ActivityRepo)
	recorder := WithActivityRecorder(container.Activity)
	container.Assignment = NewAssignmentService(repos.AssignmentRepo, recorder)
	authorizer := WithAuthorizer(container.Assignment)

	aggregator := reconciliation.NewAggregator(cfg.ReportingLocation, cfg.DefaultCurrency)

	container.Client = NewClientService(repos.ClientRepo, recorder)
	container.Expert = NewExpertService(repos.ExpertRepo, recorder)
	container.Earnings = NewEarningsService(repos.ClientRepo, repos.AssignmentRepo, repos.InvoiceRepo, repos.PaymentRepo, aggregator, recorder)
	container.Pipeline = NewPipelineService(repos.ClientRepo, recorder)
	container.Views = NewViewService(repos, aggregator, cfg.AdminPageSize, recorder)
	container.Documents = NewDocumentService(linker, cfg.SignedURLExpiry, recorder, authorizer)

	return container
}
