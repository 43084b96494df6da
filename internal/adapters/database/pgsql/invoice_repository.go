package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `invoice_id, client_id, expert_id, amount, currency, status, due_date, paid_amount, paid_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceReader {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceReader = (*PgxInvoiceRepository)(nil)

func (r *PgxInvoiceRepository) list(ctx context.Context, where string, args ...any) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + where + ` ORDER BY created_at DESC, invoice_id;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		var inv domain.Invoice
		var paidAmount decimal.NullDecimal
		err := rows.Scan(
			&inv.InvoiceID,
			&inv.ClientID,
			&inv.ExpertID,
			&inv.Amount,
			&inv.Currency,
			&inv.Status,
			&inv.DueDate,
			&paidAmount,
			&inv.PaidAt,
			&inv.CreatedAt,
			&inv.CreatedBy,
			&inv.LastUpdatedAt,
			&inv.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		if paidAmount.Valid {
			inv.PaidAmount = &paidAmount.Decimal
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) ListInvoicesByExpert(ctx context.Context, expertID string) ([]domain.Invoice, error) {
	return r.list(ctx, `expert_id = $1`, expertID)
}

func (r *PgxInvoiceRepository) ListInvoicesByClientIDs(ctx context.Context, clientIDs []string) ([]domain.Invoice, error) {
	if len(clientIDs) == 0 {
		return []domain.Invoice{}, nil
	}
	return r.list(ctx, `client_id = ANY($1)`, clientIDs)
}

func (r *PgxInvoiceRepository) ListPendingInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return r.list(ctx, `status IN ('sent', 'overdue')`)
}
