package repositories

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// ListInvoicesByExpert retrieves every invoice issued by the expert.
	ListInvoicesByExpert(ctx context.Context, expertID string) ([]domain.Invoice, error)

	// ListInvoicesByClientIDs retrieves every invoice issued to the given clients.
	ListInvoicesByClientIDs(ctx context.Context, clientIDs []string) ([]domain.Invoice, error)

	// ListPendingInvoices retrieves every sent or overdue invoice.
	ListPendingInvoices(ctx context.Context) ([]domain.Invoice, error)
}
