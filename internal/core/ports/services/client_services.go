package services

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClient retrieves a client by ID. Returns apperrors.ErrNotFound when missing.
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient validates and persists a new client.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error)
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
