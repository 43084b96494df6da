package repositories

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// ListPaymentsByExpert retrieves every payment received by the expert, newest first.
	ListPaymentsByExpert(ctx context.Context, expertID string) ([]domain.Payment, error)

	// ListPaymentsByClientIDs retrieves every payment linked to the given clients.
	ListPaymentsByClientIDs(ctx context.Context, clientIDs []string) ([]domain.Payment, error)

	// ListAllPayments retrieves every payment.
	ListAllPayments(ctx context.Context) ([]domain.Payment, error)
}

// PaymentTransactionSupport defines operations that run inside a caller's transaction
type PaymentTransactionSupport interface {
	// SavePaymentInTx inserts a payment. Payments are immutable once saved.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentTransactionSupport
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
