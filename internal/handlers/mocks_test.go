package handlers_test

import (
	"context"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ViewService ---
type MockViewService struct {
	mock.Mock
}

func (m *MockViewService) ExpertClientList(ctx context.Context, expertID string, query domain.ClientListQuery) (*domain.ExpertClientListView, error) {
	args := m.Called(ctx, expertID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpertClientListView), args.Error(1)
}

func (m *MockViewService) ExpertDashboard(ctx context.Context, expertID string) (*domain.ExpertDashboardView, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpertDashboardView), args.Error(1)
}

func (m *MockViewService) AdminClientList(ctx context.Context, query domain.ClientListQuery) (*domain.AdminClientListView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminClientListView), args.Error(1)
}

func (m *MockViewService) AdminExpertList(ctx context.Context, query domain.ExpertListQuery) (*domain.AdminExpertListView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminExpertListView), args.Error(1)
}

func (m *MockViewService) AdminExpertDetail(ctx context.Context, expertID string) (*domain.ExpertDetailView, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpertDetailView), args.Error(1)
}

// --- Mock AssignmentService ---
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) ResolveAssignmentsForExpert(ctx context.Context, expertID string, includeInactive bool) ([]domain.Assignment, error) {
	args := m.Called(ctx, expertID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assignment), args.Error(1)
}

func (m *MockAssignmentService) ResolveExpertsForClient(ctx context.Context, viewerExpertID, clientID string) ([]domain.ClientExpert, error) {
	args := m.Called(ctx, viewerExpertID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientExpert), args.Error(1)
}

func (m *MockAssignmentService) CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, userID string) (*domain.Assignment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentService) DeactivateAssignment(ctx context.Context, assignmentID string, userID string) (*domain.Assignment, error) {
	args := m.Called(ctx, assignmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentService) ReactivateAssignment(ctx context.Context, assignmentID string, userID string) (*domain.Assignment, error) {
	args := m.Called(ctx, assignmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentService) AuthorizeClientAccess(ctx context.Context, expertID, clientID string) error {
	args := m.Called(ctx, expertID, clientID)
	return args.Error(0)
}

// --- Mock EarningsService ---
type MockEarningsService struct {
	mock.Mock
}

func (m *MockEarningsService) ExpertEarnings(ctx context.Context, expertID string) (*domain.EarningsSummary, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EarningsSummary), args.Error(1)
}

func (m *MockEarningsService) ClientEarnings(ctx context.Context, clientID string) (*domain.EarningsSummary, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EarningsSummary), args.Error(1)
}

func (m *MockEarningsService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

// --- Mock ExpertService ---
type MockExpertService struct {
	mock.Mock
}

func (m *MockExpertService) GetExpert(ctx context.Context, expertID string) (*domain.Expert, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expert), args.Error(1)
}

func (m *MockExpertService) UpdateExpertStatus(ctx context.Context, expertID string, req dto.UpdateExpertStatusRequest, userID string) (*domain.Expert, error) {
	args := m.Called(ctx, expertID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expert), args.Error(1)
}

// --- Mock PipelineService ---
type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) Funnel(ctx context.Context) (*domain.FunnelReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FunnelReport), args.Error(1)
}

func (m *MockPipelineService) UpdatePipelineStage(ctx context.Context, clientID string, req dto.UpdatePipelineStageRequest, userID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) IssueDocumentLink(ctx context.Context, expertID string, req dto.IssueDocumentLinkRequest) (*portssvc.DocumentLink, error) {
	args := m.Called(ctx, expertID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.DocumentLink), args.Error(1)
}

// --- Mock ActivityService ---
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) ListActivity(ctx context.Context, filter domain.ActivityFilter, limit int, nextToken *string) ([]domain.ActivityLogEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	token, _ := args.Get(1).(*string)
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.ActivityLogEntry), token, args.Error(2)
}

func (m *MockActivityService) Record(ctx context.Context, action string, expertID, clientID *string, details string) {
	m.Called(ctx, action, expertID, clientID, details)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.ViewSvc             = (*MockViewService)(nil)
	_ portssvc.AssignmentSvcFacade = (*MockAssignmentService)(nil)
	_ portssvc.EarningsSvcFacade   = (*MockEarningsService)(nil)
	_ portssvc.ClientSvcFacade     = (*MockClientService)(nil)
	_ portssvc.ExpertSvcFacade     = (*MockExpertService)(nil)
	_ portssvc.PipelineSvcFacade   = (*MockPipelineService)(nil)
	_ portssvc.DocumentSvc         = (*MockDocumentService)(nil)
	_ portssvc.ActivitySvc         = (*MockActivityService)(nil)
)
