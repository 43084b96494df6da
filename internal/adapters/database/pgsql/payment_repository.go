package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `payment_id, expert_id, client_id, invoice_id, amount, currency, payment_date, created_at, created_by`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

func (r *PgxPaymentRepository) list(ctx context.Context, where string, args ...any) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY payment_date DESC, created_at DESC, payment_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(
			&p.PaymentID,
			&p.ExpertID,
			&p.ClientID,
			&p.InvoiceID,
			&p.Amount,
			&p.Currency,
			&p.PaymentDate,
			&p.CreatedAt,
			&p.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

func (r *PgxPaymentRepository) ListPaymentsByExpert(ctx context.Context, expertID string) ([]domain.Payment, error) {
	return r.list(ctx, `expert_id = $1`, expertID)
}

func (r *PgxPaymentRepository) ListPaymentsByClientIDs(ctx context.Context, clientIDs []string) ([]domain.Payment, error) {
	if len(clientIDs) == 0 {
		return []domain.Payment{}, nil
	}
	return r.list(ctx, `client_id = ANY($1)`, clientIDs)
}

func (r *PgxPaymentRepository) ListAllPayments(ctx context.Context) ([]domain.Payment, error) {
	return r.list(ctx, "")
}

// SavePaymentInTx inserts a payment within tx.
func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, p domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		p.PaymentID,
		p.ExpertID,
		p.ClientID,
		p.InvoiceID,
		p.Amount,
		p.Currency,
		p.PaymentDate,
		p.CreatedAt,
		p.CreatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "payment "+p.PaymentID)
	}
	return nil
}
