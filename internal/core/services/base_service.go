package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/middleware"
	"github.com/SscSPs/tax_engagement_app/internal/utils/reconciliation"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.EngagementAuthorizerSvc
	Activity   portssvc.ActivitySvc
	Clock      func() time.Time
}

// ServiceOption configures the BaseService embedded in every service.
type ServiceOption func(*BaseService)

// WithAuthorizer sets the engagement authorizer.
func WithAuthorizer(authorizer portssvc.EngagementAuthorizerSvc) ServiceOption {
	return func(s *BaseService) {
		s.Authorizer = authorizer
	}
}

// WithActivityRecorder sets where activity entries are appended.
func WithActivityRecorder(activity portssvc.ActivitySvc) ServiceOption {
	return func(s *BaseService) {
		s.Activity = activity
	}
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func (s *BaseService) apply(options []ServiceOption) {
	for _, option := range options {
		option(s)
	}
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// forViewer anchors agg to the viewer's time zone when the request carries one,
// so month- and quarter-to-date follow the viewer's calendar.
func forViewer(ctx context.Context, agg *reconciliation.Aggregator) *reconciliation.Aggregator {
	return agg.WithLocation(middleware.ViewerLocationFromCtx(ctx))
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeClientAccess checks that the expert actively works the client.
func (s *BaseService) AuthorizeClientAccess(ctx context.Context, expertID, clientID string) error {
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeClientAccess(ctx, expertID, clientID)
	}
	s.LogDebug(ctx, "No engagement authorizer provided, access granted by default",
		slog.String("expert_id", expertID),
		slog.String("client_id", clientID))
	return nil
}

// RecordActivity appends an activity entry when a recorder is configured.
func (s *BaseService) RecordActivity(ctx context.Context, action string, expertID, clientID *string, details string) {
	if s.Activity == nil {
		return
	}
	s.Activity.Record(ctx, action, expertID, clientID, details)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
