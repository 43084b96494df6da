package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/core/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/SscSPs/tax_engagement_app/internal/middleware"
	"github.com/SscSPs/tax_engagement_app/internal/utils/reconciliation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EarningsServiceTestSuite struct {
	suite.Suite
	clientRepo     *MockClientRepository
	assignmentRepo *MockAssignmentRepository
	invoiceRepo    *MockInvoiceRepository
	paymentRepo    *MockPaymentRepository
	activityRepo   *MockActivityRepository
	service        portssvc.EarningsSvcFacade
	now            time.Time
}

func (suite *EarningsServiceTestSuite) SetupTest() {
	suite.clientRepo = new(MockClientRepository)
	suite.assignmentRepo = new(MockAssignmentRepository)
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.paymentRepo = new(MockPaymentRepository)
	suite.activityRepo = new(MockActivityRepository)
	suite.activityRepo.On("SaveActivity", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.now = time.Date(2026, time.March, 20, 15, 0, 0, 0, time.UTC)

	clock := services.WithClock(fixedClock(suite.now))
	suite.service = services.NewEarningsService(
		suite.clientRepo,
		suite.assignmentRepo,
		suite.invoiceRepo,
		suite.paymentRepo,
		reconciliation.NewAggregator(time.UTC, "USD"),
		clock,
		services.WithActivityRecorder(services.NewActivityService(suite.activityRepo, clock)),
	)
}

func amountIs(want string) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString(want))
	})
}

func (suite *EarningsServiceTestSuite) validRequest() dto.RecordPaymentRequest {
	return dto.RecordPaymentRequest{
		ExpertID:    uuid.NewString(),
		ClientID:    ptr(uuid.NewString()),
		Amount:      decimal.RequireFromString("250.50"),
		Currency:    "usd",
		PaymentDate: "2026-03-18",
	}
}

func (suite *EarningsServiceTestSuite) TestRecordPayment_CreditsAssignmentInOneTransaction() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.paymentRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.paymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Currency == "USD" && p.ExpertID == req.ExpertID && p.PaymentDate.Equal(time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()
	suite.assignmentRepo.On("IncrementAssignmentEarningsInTx", ctx, mock.Anything, *req.ClientID, req.ExpertID, amountIs("250.50"), "admin", suite.now).
		Return(int64(1), nil).Once()
	suite.paymentRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.paymentRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.Equal("USD", payment.Currency)
	suite.paymentRepo.AssertExpectations(suite.T())
	suite.assignmentRepo.AssertExpectations(suite.T())
	suite.activityRepo.AssertCalled(suite.T(), "SaveActivity", mock.Anything, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionPaymentRecorded && e.Details == "250.50 USD"
	}))
}

func (suite *EarningsServiceTestSuite) TestRecordPayment_NoActiveAssignmentStillRecords() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.paymentRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.paymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.assignmentRepo.On("IncrementAssignmentEarningsInTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), nil).Once()
	suite.paymentRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.paymentRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.RecordPayment(ctx, req, "admin")

	suite.NoError(err)
	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *EarningsServiceTestSuite) TestRecordPayment_WithoutClientSkipsCredit() {
	ctx := context.Background()
	req := suite.validRequest()
	req.ClientID = nil

	suite.paymentRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.paymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.paymentRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.paymentRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.RecordPayment(ctx, req, "admin")

	suite.NoError(err)
	suite.assignmentRepo.AssertNotCalled(suite.T(), "IncrementAssignmentEarningsInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EarningsServiceTestSuite) TestRecordPayment_CreditFailureRollsBack() {
	ctx := context.Background()
	req := suite.validRequest()
	dbErr := errors.New("connection reset")

	suite.paymentRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.paymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.assignmentRepo.On("IncrementAssignmentEarningsInTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), dbErr).Once()
	suite.paymentRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.RecordPayment(ctx, req, "admin")

	suite.ErrorIs(err, dbErr)
	suite.paymentRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.activityRepo.AssertNotCalled(suite.T(), "SaveActivity", mock.Anything, mock.Anything)
}

func (suite *EarningsServiceTestSuite) TestRecordPayment_Validation() {
	testCases := []struct {
		name   string
		mutate func(*dto.RecordPaymentRequest)
		field  string
	}{
		{"zero amount", func(r *dto.RecordPaymentRequest) { r.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(r *dto.RecordPaymentRequest) { r.Amount = decimal.NewFromInt(-5) }, "amount"},
		{"bad currency", func(r *dto.RecordPaymentRequest) { r.Currency = "dollars" }, "currency"},
		{"bad date", func(r *dto.RecordPaymentRequest) { r.PaymentDate = "18/03/2026" }, "paymentDate"},
		{"missing expert", func(r *dto.RecordPaymentRequest) { r.ExpertID = "" }, "expertID"},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := suite.validRequest()
			tc.mutate(&req)

			_, err := suite.service.RecordPayment(context.Background(), req, "admin")

			var ve *apperrors.ValidationError
			suite.Require().ErrorAs(err, &ve)
			suite.Contains(ve.Fields, tc.field)
		})
	}
	suite.paymentRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *EarningsServiceTestSuite) TestExpertEarnings_PaymentsOnlyAndPendingSeparate() {
	ctx := context.Background()
	payments := []domain.Payment{
		{ExpertID: "e1", Amount: decimal.NewFromInt(1000), Currency: "USD", PaymentDate: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)},
		{ExpertID: "e1", Amount: decimal.NewFromInt(500), Currency: "USD", PaymentDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{ExpertID: "e1", Amount: decimal.NewFromInt(300), Currency: "USD", PaymentDate: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC)},
	}
	invoices := []domain.Invoice{
		{ExpertID: "e1", Amount: decimal.NewFromInt(700), Currency: "USD", Status: domain.InvoiceSent},
		{ExpertID: "e1", Amount: decimal.NewFromInt(900), Currency: "USD", Status: domain.InvoiceDraft},
	}
	suite.paymentRepo.On("ListPaymentsByExpert", ctx, "e1").Return(payments, nil).Once()
	suite.invoiceRepo.On("ListInvoicesByExpert", ctx, "e1").Return(invoices, nil).Once()

	summary, err := suite.service.ExpertEarnings(ctx, "e1")

	suite.Require().NoError(err)
	suite.Equal("1800", summary.AllTime.String())
	suite.Equal("1500", summary.QuarterToDate.String())
	suite.Equal("500", summary.MonthToDate.String())
	suite.Equal("700", summary.Pending.String())
	suite.Len(summary.Monthly, 6)
}

func (suite *EarningsServiceTestSuite) TestExpertEarnings_ViewerZoneSetsMonthBoundary() {
	now := time.Date(2026, time.October, 31, 20, 0, 0, 0, time.UTC)
	service := services.NewEarningsService(suite.clientRepo, suite.assignmentRepo, suite.invoiceRepo, suite.paymentRepo,
		reconciliation.NewAggregator(time.UTC, "USD"), services.WithClock(fixedClock(now)))
	payments := []domain.Payment{
		{ExpertID: "e1", Amount: decimal.NewFromInt(400), Currency: "USD", PaymentDate: time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)},
	}
	suite.paymentRepo.On("ListPaymentsByExpert", mock.Anything, "e1").Return(payments, nil)
	suite.invoiceRepo.On("ListInvoicesByExpert", mock.Anything, "e1").Return(nil, nil)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	suite.Require().NoError(err)

	server, err := service.ExpertEarnings(context.Background(), "e1")
	suite.Require().NoError(err)
	viewer, err := service.ExpertEarnings(middleware.WithViewerLocation(context.Background(), tokyo), "e1")
	suite.Require().NoError(err)

	suite.Equal("400", server.MonthToDate.String())
	suite.True(viewer.MonthToDate.IsZero())
	suite.Equal("400", viewer.AllTime.String())
}

func (suite *EarningsServiceTestSuite) TestClientEarnings_UnknownClient() {
	ctx := context.Background()
	suite.clientRepo.On("FindClientByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ClientEarnings(ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestEarningsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EarningsServiceTestSuite))
}
