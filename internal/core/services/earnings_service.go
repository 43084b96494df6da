package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/SscSPs/tax_engagement_app/internal/platform/validation"
	"github.com/SscSPs/tax_engagement_app/internal/utils/reconciliation"
	"github.com/google/uuid"
)

const paymentDateLayout = "2006-01-02"

type earningsService struct {
	BaseService
	clientRepo     portsrepo.ClientReader
	assignmentRepo portsrepo.AssignmentTransactionSupport
	invoiceRepo    portsrepo.InvoiceReader
	paymentRepo    portsrepo.PaymentRepositoryWithTx
	aggregator     *reconciliation.Aggregator
}

// NewEarningsService creates the earnings reader and payment recorder.
func NewEarningsService(
	clientRepo portsrepo.ClientReader,
	assignmentRepo portsrepo.AssignmentTransactionSupport,
	invoiceRepo portsrepo.InvoiceReader,
	paymentRepo portsrepo.PaymentRepositoryWithTx,
	aggregator *reconciliation.Aggregator,
	options ...ServiceOption,
) portssvc.EarningsSvcFacade {
	svc := &earningsService{
		clientRepo:     clientRepo,
		assignmentRepo: assignmentRepo,
		invoiceRepo:    invoiceRepo,
		paymentRepo:    paymentRepo,
		aggregator:     aggregator,
	}
	svc.apply(options)
	return svc
}

var _ portssvc.EarningsSvcFacade = (*earningsService)(nil)

func (s *earningsService) ExpertEarnings(ctx context.Context, expertID string) (*domain.EarningsSummary, error) {
	payments, err := s.paymentRepo.ListPaymentsByExpert(ctx, expertID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("expert_id", expertID))
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListInvoicesByExpert(ctx, expertID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("expert_id", expertID))
		return nil, err
	}
	agg := forViewer(ctx, s.aggregator)
	summary := agg.Summarize(payments, invoices, s.Now())
	s.LogDebug(ctx, "Expert earnings summarised", slog.String("expert_id", expertID), slog.String("location", agg.Location().String()))
	return &summary, nil
}

func (s *earningsService) ClientEarnings(ctx context.Context, clientID string) (*domain.EarningsSummary, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return nil, err
	}
	ids := []string{clientID}
	payments, err := s.paymentRepo.ListPaymentsByClientIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("client_id", clientID))
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListInvoicesByClientIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("client_id", clientID))
		return nil, err
	}
	agg := forViewer(ctx, s.aggregator)
	summary := agg.Summarize(payments, invoices, s.Now())
	s.LogDebug(ctx, "Client earnings summarised", slog.String("client_id", clientID), slog.String("location", agg.Location().String()))
	return &summary, nil
}

// RecordPayment inserts the payment and credits the pair's assignment in a
// single transaction. A payment with no matching active assignment is still
// recorded; only the assignment credit is skipped.
func (s *earningsService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	paymentDate, err := time.Parse(paymentDateLayout, req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("record payment: parse payment date: %w", err)
	}

	now := s.Now()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		ExpertID:    req.ExpertID,
		ClientID:    req.ClientID,
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		PaymentDate: paymentDate,
		CreatedAt:   now,
		CreatedBy:   userID,
	}

	tx, err := s.paymentRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := s.paymentRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back payment transaction")
		}
	}()

	if err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("expert_id", payment.ExpertID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	if payment.ClientID != nil {
		credited, err := s.assignmentRepo.IncrementAssignmentEarningsInTx(ctx, tx, *payment.ClientID, payment.ExpertID, payment.Amount, userID, now)
		if err != nil {
			s.LogError(ctx, err, "Failed to credit assignment earnings",
				slog.String("client_id", *payment.ClientID),
				slog.String("expert_id", payment.ExpertID))
			return nil, fmt.Errorf("failed to credit assignment earnings: %w", err)
		}
		if credited == 0 {
			s.LogWarn(ctx, "Payment recorded without an active assignment to credit",
				slog.String("payment_id", payment.PaymentID),
				slog.String("client_id", *payment.ClientID),
				slog.String("expert_id", payment.ExpertID))
		}
	}

	if err := s.paymentRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit payment transaction")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("currency", payment.Currency))
	s.RecordActivity(ctx, domain.ActionPaymentRecorded, &payment.ExpertID, payment.ClientID,
		fmt.Sprintf("%s %s", payment.Amount.StringFixed(2), payment.Currency))
	return &payment, nil
}
