package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/google/uuid"
)

const maxActivityPageSize = 100

type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityRepository
}

// NewActivityService creates the activity log service.
func NewActivityService(repo portsrepo.ActivityRepository, options ...ServiceOption) portssvc.ActivitySvc {
	svc := &activityService{activityRepo: repo}
	svc.apply(options)
	return svc
}

var _ portssvc.ActivitySvc = (*activityService)(nil)

func (s *activityService) ListActivity(ctx context.Context, filter domain.ActivityFilter, limit int, nextToken *string) ([]domain.ActivityLogEntry, *string, error) {
	if limit > maxActivityPageSize {
		limit = maxActivityPageSize
	}
	entries, token, err := s.activityRepo.ListActivity(ctx, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activity",
			slog.String("expert_id", filter.ExpertID),
			slog.String("client_id", filter.ClientID))
		return nil, nil, err
	}
	return entries, token, nil
}

// Record appends an entry. The log is display-only, so a failed write is
// logged and never fails the caller's operation.
func (s *activityService) Record(ctx context.Context, action string, expertID, clientID *string, details string) {
	entry := domain.ActivityLogEntry{
		ActivityID: uuid.NewString(),
		ExpertID:   expertID,
		ClientID:   clientID,
		Action:     action,
		Details:    details,
		CreatedAt:  s.Now(),
	}
	if err := s.activityRepo.SaveActivity(ctx, entry); err != nil {
		s.LogWarn(ctx, "Failed to record activity",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
