package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/SscSPs/tax_engagement_app/internal/platform/validation"
	"github.com/google/uuid"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, options ...ServiceOption) portssvc.ClientSvcFacade {
	svc := &clientService{clientRepo: clientRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	complexity, err := domain.ParseComplexity(req.Complexity)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	now := s.Now()
	client := domain.Client{
		ClientID:      uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		Countries:     make([]string, 0, len(req.Countries)),
		AssetTypes:    nonNilStrings(req.AssetTypes),
		Complexity:    complexity,
		TaxYears:      nonNilStrings(req.TaxYears),
		OverallStatus: "active",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for _, country := range req.Countries {
		client.Countries = append(client.Countries, strings.ToUpper(strings.TrimSpace(country)))
	}
	if req.PipelineStage != nil {
		stage, err := domain.ParsePipelineStage(*req.PipelineStage)
		if err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
		client.PipelineStage = &stage
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("name", client.Name))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	s.RecordActivity(ctx, domain.ActionClientCreated, nil, &client.ClientID, client.Name)
	return &client, nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
