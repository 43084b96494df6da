package services

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
)

// EarningsReaderSvc reconciles payments and invoices into summaries
type EarningsReaderSvc interface {
	// ExpertEarnings summarises everything the expert has been paid and is owed.
	ExpertEarnings(ctx context.Context, expertID string) (*domain.EarningsSummary, error)

	// ClientEarnings summarises everything paid by and owed by the client.
	ClientEarnings(ctx context.Context, clientID string) (*domain.EarningsSummary, error)
}

// EarningsWriterSvc records billing events
type EarningsWriterSvc interface {
	// RecordPayment saves a payment and credits the matching active assignment in one transaction.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)
}

// EarningsSvcFacade combines all earnings-related service interfaces
type EarningsSvcFacade interface {
	EarningsReaderSvc
	EarningsWriterSvc
}
