package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `client_id, name, email, phone, countries, asset_types, complexity, tax_years,
	overall_status, pipeline_stage, created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row pgx.Row) (domain.Client, error) {
	var c domain.Client
	var email, phone, overallStatus, stage *string
	err := row.Scan(
		&c.ClientID,
		&c.Name,
		&email,
		&phone,
		&c.Countries,
		&c.AssetTypes,
		&c.Complexity,
		&c.TaxYears,
		&overallStatus,
		&stage,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return domain.Client{}, err
	}
	if email != nil {
		c.Email = *email
	}
	if phone != nil {
		c.Phone = *phone
	}
	if overallStatus != nil {
		c.OverallStatus = *overallStatus
	}
	// Stages outside the fixed funnel are kept as-is; the analyzer counts them as unstaged.
	if stage != nil {
		s := domain.PipelineStage(*stage)
		c.PipelineStage = &s
	}
	c.Countries = nonNil(c.Countries)
	c.AssetTypes = nonNil(c.AssetTypes)
	c.TaxYears = nonNil(c.TaxYears)
	return c, nil
}

func collectClients(rows pgx.Rows) ([]domain.Client, error) {
	defer rows.Close()
	clients := make([]domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	var stage *string
	if client.PipelineStage != nil {
		s := string(*client.PipelineStage)
		stage = &s
	}
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Email,
		client.Phone,
		nonNil(client.Countries),
		nonNil(client.AssetTypes),
		string(client.Complexity),
		nonNil(client.TaxYears),
		client.OverallStatus,
		stage,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "client "+client.ClientID)
	}
	return nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	c, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		return nil, wrapReadError(err, "client "+clientID)
	}
	return &c, nil
}

// FindClientsByIDs retrieves the clients with the given IDs ordered by name.
func (r *PgxClientRepository) FindClientsByIDs(ctx context.Context, clientIDs []string) ([]domain.Client, error) {
	if len(clientIDs) == 0 {
		return []domain.Client{}, nil
	}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = ANY($1) ORDER BY name, client_id;`
	rows, err := r.Pool.Query(ctx, query, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients by IDs: %w", err)
	}
	return collectClients(rows)
}

// ListClients retrieves every client ordered by name.
func (r *PgxClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name, client_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	return collectClients(rows)
}

// UpdatePipelineStage sets the client's stage. Concurrent writers race and the last one wins.
func (r *PgxClientRepository) UpdatePipelineStage(ctx context.Context, clientID string, stage domain.PipelineStage, userID string, now time.Time) error {
	query := `
		UPDATE clients
		SET pipeline_stage = $1, last_updated_at = $2, last_updated_by = $3
		WHERE client_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(stage), now, userID, clientID)
	if err != nil {
		return fmt.Errorf("failed to update pipeline stage for client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
	}
	return nil
}
