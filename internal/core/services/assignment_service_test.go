package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/core/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AssignmentServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockAssignmentRepository
	mockActivity *MockActivityRepository
	service      portssvc.AssignmentSvcFacade
	now          time.Time
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAssignmentRepository)
	suite.mockActivity = new(MockActivityRepository)
	suite.mockActivity.On("SaveActivity", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.now = time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	clock := services.WithClock(fixedClock(suite.now))
	suite.service = services.NewAssignmentService(suite.mockRepo,
		clock,
		services.WithActivityRecorder(services.NewActivityService(suite.mockActivity, clock)),
	)
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_New() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{ClientID: uuid.NewString(), ExpertID: uuid.NewString(), Jurisdiction: "gb"}

	suite.mockRepo.On("FindAssignment", ctx, req.ClientID, req.ExpertID, "GB").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAssignment", ctx, mock.MatchedBy(func(a domain.Assignment) bool {
		return a.Jurisdiction == "GB" && a.Status == domain.AssignmentActive && a.Earnings.IsZero() && a.CreatedBy == "admin"
	})).Return(nil).Once()

	assignment, err := suite.service.CreateAssignment(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.Equal("GB", assignment.Jurisdiction)
	suite.Equal(suite.now, assignment.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockActivity.AssertCalled(suite.T(), "SaveActivity", mock.Anything, mock.MatchedBy(func(e domain.ActivityLogEntry) bool {
		return e.Action == domain.ActionAssignmentCreated
	}))
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_DuplicateActive() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{ClientID: uuid.NewString(), ExpertID: uuid.NewString(), Jurisdiction: "US"}
	existing := &domain.Assignment{AssignmentID: "a1", ClientID: req.ClientID, ExpertID: req.ExpertID, Jurisdiction: "US", Status: domain.AssignmentActive}

	suite.mockRepo.On("FindAssignment", ctx, req.ClientID, req.ExpertID, "US").Return(existing, nil).Once()

	_, err := suite.service.CreateAssignment(ctx, req, "admin")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAssignment", mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_ReactivatesInactiveKeepingEarnings() {
	ctx := context.Background()
	req := dto.CreateAssignmentRequest{ClientID: uuid.NewString(), ExpertID: uuid.NewString(), Jurisdiction: "DE"}
	existing := &domain.Assignment{
		AssignmentID: "a1", ClientID: req.ClientID, ExpertID: req.ExpertID, Jurisdiction: "DE",
		Status: domain.AssignmentInactive, Earnings: decimal.NewFromInt(1200),
	}

	suite.mockRepo.On("FindAssignment", ctx, req.ClientID, req.ExpertID, "DE").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAssignmentStatus", ctx, "a1", domain.AssignmentActive, "admin", suite.now).Return(nil).Once()

	assignment, err := suite.service.CreateAssignment(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentActive, assignment.Status)
	suite.True(decimal.NewFromInt(1200).Equal(assignment.Earnings))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_ValidationError() {
	_, err := suite.service.CreateAssignment(context.Background(), dto.CreateAssignmentRequest{ClientID: "nope", Jurisdiction: "Britain"}, "admin")

	var ve *apperrors.ValidationError
	suite.Require().ErrorAs(err, &ve)
	suite.Contains(ve.Fields, "clientID")
	suite.Contains(ve.Fields, "expertID")
	suite.Contains(ve.Fields, "jurisdiction")
}

func (suite *AssignmentServiceTestSuite) TestTransitions() {
	testCases := []struct {
		name    string
		current domain.AssignmentStatus
		run     func(ctx context.Context, id string) (*domain.Assignment, error)
		next    domain.AssignmentStatus
		wantErr bool
	}{
		{"deactivate active", domain.AssignmentActive, func(ctx context.Context, id string) (*domain.Assignment, error) {
			return suite.service.DeactivateAssignment(ctx, id, "admin")
		}, domain.AssignmentInactive, false},
		{"deactivate inactive", domain.AssignmentInactive, func(ctx context.Context, id string) (*domain.Assignment, error) {
			return suite.service.DeactivateAssignment(ctx, id, "admin")
		}, domain.AssignmentInactive, true},
		{"reactivate inactive", domain.AssignmentInactive, func(ctx context.Context, id string) (*domain.Assignment, error) {
			return suite.service.ReactivateAssignment(ctx, id, "admin")
		}, domain.AssignmentActive, false},
		{"reactivate active", domain.AssignmentActive, func(ctx context.Context, id string) (*domain.Assignment, error) {
			return suite.service.ReactivateAssignment(ctx, id, "admin")
		}, domain.AssignmentActive, true},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			ctx := context.Background()
			id := uuid.NewString()
			suite.mockRepo.On("FindAssignmentByID", ctx, id).
				Return(&domain.Assignment{AssignmentID: id, Status: tc.current}, nil).Once()
			if !tc.wantErr {
				suite.mockRepo.On("UpdateAssignmentStatus", ctx, id, tc.next, "admin", suite.now).Return(nil).Once()
			}

			assignment, err := tc.run(ctx, id)

			if tc.wantErr {
				suite.ErrorIs(err, apperrors.ErrValidation)
				suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAssignmentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			suite.Require().NoError(err)
			suite.Equal(tc.next, assignment.Status)
			suite.mockRepo.AssertExpectations(suite.T())
		})
	}
}

func (suite *AssignmentServiceTestSuite) TestResolveAssignmentsForExpert_OnlyViewerRows() {
	ctx := context.Background()
	rows := []domain.Assignment{
		{AssignmentID: "1", ClientID: "c1", ExpertID: "e1", Status: domain.AssignmentActive},
		{AssignmentID: "2", ClientID: "c2", ExpertID: "e2", Status: domain.AssignmentActive},
		{AssignmentID: "3", ClientID: "c3", ExpertID: "e1", Status: domain.AssignmentInactive},
	}
	suite.mockRepo.On("ListAssignmentsByExpert", ctx, "e1", false).Return(rows, nil).Once()

	got, err := suite.service.ResolveAssignmentsForExpert(ctx, "e1", false)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal("1", got[0].AssignmentID)
}

func (suite *AssignmentServiceTestSuite) TestResolveExpertsForClient() {
	ctx := context.Background()
	details := []domain.AssignmentDetail{
		{Assignment: domain.Assignment{ClientID: "c1", ExpertID: "e1", Jurisdiction: "GB", Status: domain.AssignmentActive}},
		{Assignment: domain.Assignment{ClientID: "c1", ExpertID: "e2", Jurisdiction: "US", Status: domain.AssignmentActive}, ExpertName: ptr("Bob")},
	}
	suite.mockRepo.On("ListAssignmentDetailsByClientIDs", ctx, []string{"c1"}).Return(details, nil).Once()

	got, err := suite.service.ResolveExpertsForClient(ctx, "e1", "c1")

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("Unknown", got[0].Name)
	suite.True(got[0].IsSelf)
	suite.Equal("Bob", got[1].Name)
	suite.False(got[1].IsSelf)
}

func (suite *AssignmentServiceTestSuite) TestAuthorizeClientAccess() {
	ctx := context.Background()
	suite.mockRepo.On("ListAssignmentsByExpert", ctx, "e1", false).Return([]domain.Assignment{
		{ClientID: "c1", ExpertID: "e1", Status: domain.AssignmentActive},
	}, nil)

	suite.NoError(suite.service.AuthorizeClientAccess(ctx, "e1", "c1"))
	suite.ErrorIs(suite.service.AuthorizeClientAccess(ctx, "e1", "c2"), apperrors.ErrForbidden)
}

func TestAssignmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}

func TestActivityService_RecordIsBestEffort(t *testing.T) {
	repo := new(MockActivityRepository)
	repo.On("SaveActivity", mock.Anything, mock.Anything).Return(assert.AnError).Once()
	svc := services.NewActivityService(repo)

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), domain.ActionPaymentRecorded, ptr("e1"), nil, "100.00 USD")
	})
	repo.AssertExpectations(t)
}

func TestActivityService_ListClampsLimit(t *testing.T) {
	repo := new(MockActivityRepository)
	filter := domain.ActivityFilter{ExpertID: "e1"}
	repo.On("ListActivity", mock.Anything, filter, 100, (*string)(nil)).Return([]domain.ActivityLogEntry{}, nil, nil).Once()
	svc := services.NewActivityService(repo)

	entries, next, err := svc.ListActivity(context.Background(), filter, 5000, nil)

	assert.NoError(t, err)
	assert.Empty(t, entries)
	assert.Nil(t, next)
	repo.AssertExpectations(t)
}
