package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Client repository ---

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientsByIDs(ctx context.Context, clientIDs []string) ([]domain.Client, error) {
	args := m.Called(ctx, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdatePipelineStage(ctx context.Context, clientID string, stage domain.PipelineStage, userID string, now time.Time) error {
	args := m.Called(ctx, clientID, stage, userID, now)
	return args.Error(0)
}

// --- Expert repository ---

type MockExpertRepository struct {
	mock.Mock
}

func (m *MockExpertRepository) FindExpertByID(ctx context.Context, expertID string) (*domain.Expert, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expert), args.Error(1)
}

func (m *MockExpertRepository) ListExperts(ctx context.Context) ([]domain.Expert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expert), args.Error(1)
}

func (m *MockExpertRepository) UpdateExpertStatus(ctx context.Context, expertID string, status domain.ExpertStatus, userID string, now time.Time) error {
	args := m.Called(ctx, expertID, status, userID, now)
	return args.Error(0)
}

// --- Assignment repository ---

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAssignment(ctx context.Context, clientID, expertID, jurisdiction string) (*domain.Assignment, error) {
	args := m.Called(ctx, clientID, expertID, jurisdiction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignmentsByExpert(ctx context.Context, expertID string, includeInactive bool) ([]domain.Assignment, error) {
	args := m.Called(ctx, expertID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignmentDetailsByClientIDs(ctx context.Context, clientIDs []string) ([]domain.AssignmentDetail, error) {
	args := m.Called(ctx, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssignmentDetail), args.Error(1)
}

func (m *MockAssignmentRepository) ListAllAssignmentDetails(ctx context.Context) ([]domain.AssignmentDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssignmentDetail), args.Error(1)
}

func (m *MockAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status domain.AssignmentStatus, userID string, now time.Time) error {
	args := m.Called(ctx, assignmentID, status, userID, now)
	return args.Error(0)
}

func (m *MockAssignmentRepository) IncrementAssignmentEarningsInTx(ctx context.Context, tx pgx.Tx, clientID, expertID string, amount decimal.Decimal, userID string, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, clientID, expertID, amount, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Task and invoice readers ---

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) ListTasksByExpert(ctx context.Context, expertID string) ([]domain.Task, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListTasksByClientIDs(ctx context.Context, clientIDs []string) ([]domain.Task, error) {
	args := m.Called(ctx, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListAllTasks(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) ListInvoicesByExpert(ctx context.Context, expertID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByClientIDs(ctx context.Context, clientIDs []string) ([]domain.Invoice, error) {
	args := m.Called(ctx, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListPendingInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// --- Payment repository ---

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) ListPaymentsByExpert(ctx context.Context, expertID string) ([]domain.Payment, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByClientIDs(ctx context.Context, clientIDs []string) ([]domain.Payment, error) {
	args := m.Called(ctx, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListAllPayments(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockPaymentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Activity repository ---

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) ListActivity(ctx context.Context, filter domain.ActivityFilter, limit int, nextToken *string) ([]domain.ActivityLogEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var token *string
	if t, ok := args.Get(1).(*string); ok {
		token = t
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.ActivityLogEntry), token, args.Error(2)
}

// --- Document linker ---

type MockDocumentLinker struct {
	mock.Mock
}

func (m *MockDocumentLinker) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

var (
	_ portsrepo.ClientRepositoryFacade     = (*MockClientRepository)(nil)
	_ portsrepo.ExpertRepositoryFacade     = (*MockExpertRepository)(nil)
	_ portsrepo.AssignmentRepositoryFacade = (*MockAssignmentRepository)(nil)
	_ portsrepo.TaskReader                 = (*MockTaskRepository)(nil)
	_ portsrepo.InvoiceReader              = (*MockInvoiceRepository)(nil)
	_ portsrepo.PaymentRepositoryWithTx    = (*MockPaymentRepository)(nil)
	_ portsrepo.ActivityRepository         = (*MockActivityRepository)(nil)
)

// fixedClock pins the service clock used by window and audit computations.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T { return &v }
