package pgsql

import (
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:     newPgxClientRepository(dbPool),
		ExpertRepo:     newPgxExpertRepository(dbPool),
		AssignmentRepo: newPgxAssignmentRepository(dbPool),
		TaskRepo:       newPgxTaskRepository(dbPool),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		PaymentRepo:    newPgxPaymentRepository(dbPool),
		ActivityRepo:   newPgxActivityRepository(dbPool),
	}
}
