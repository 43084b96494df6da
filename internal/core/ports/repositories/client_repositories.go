package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a client by its ID. Returns apperrors.ErrNotFound when missing.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClientsByIDs retrieves the clients with the given IDs. Unknown IDs are skipped.
	FindClientsByIDs(ctx context.Context, clientIDs []string) ([]domain.Client, error)

	// ListClients retrieves every client ordered by name.
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdatePipelineStage moves a client to stage. The last write wins.
	UpdatePipelineStage(ctx context.Context, clientID string, stage domain.PipelineStage, userID string, now time.Time) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
