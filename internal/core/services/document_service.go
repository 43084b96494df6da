package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/SscSPs/tax_engagement_app/internal/platform/validation"
)

// DefaultDocumentLinkExpiry applies when neither the request nor the config set one.
const DefaultDocumentLinkExpiry = 300 * time.Second

type documentService struct {
	BaseService
	linker        portssvc.DocumentLinker
	defaultExpiry time.Duration
}

// NewDocumentService creates the document link issuer. Access is checked
// through the authorizer option, so it must be supplied in production wiring.
func NewDocumentService(linker portssvc.DocumentLinker, defaultExpiry time.Duration, options ...ServiceOption) portssvc.DocumentSvc {
	if defaultExpiry <= 0 {
		defaultExpiry = DefaultDocumentLinkExpiry
	}
	svc := &documentService{linker: linker, defaultExpiry: defaultExpiry}
	svc.apply(options)
	return svc
}

var _ portssvc.DocumentSvc = (*documentService)(nil)

func (s *documentService) IssueDocumentLink(ctx context.Context, expertID string, req dto.IssueDocumentLinkRequest) (*portssvc.DocumentLink, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	if err := s.AuthorizeClientAccess(ctx, expertID, req.ClientID); err != nil {
		return nil, err
	}

	key := strings.TrimPrefix(req.Key, "/")
	prefix := "client/" + req.ClientID + "/"
	if !strings.HasPrefix(key, prefix) || path.Clean(key) != key {
		s.LogWarn(ctx, "Document key outside client folder",
			slog.String("client_id", req.ClientID),
			slog.String("key", req.Key))
		return nil, fmt.Errorf("%w: document %q does not belong to client %s", apperrors.ErrForbidden, req.Key, req.ClientID)
	}

	expiry := s.defaultExpiry
	if req.ExpiresInSeconds > 0 {
		expiry = time.Duration(req.ExpiresInSeconds) * time.Second
	}
	now := s.Now()
	url, err := s.linker.SignedURL(ctx, key, expiry)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign document URL", slog.String("key", key))
		return nil, fmt.Errorf("failed to sign document url: %w", err)
	}

	s.RecordActivity(ctx, domain.ActionDocumentAccessed, strPtr(expertID), &req.ClientID, path.Base(key))
	return &portssvc.DocumentLink{URL: url, ExpiresAt: now.Add(expiry)}, nil
}
