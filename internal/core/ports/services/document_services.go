package services

import (
	"context"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/dto"
)

// DocumentLink is a short-lived URL to a stored client document.
type DocumentLink struct {
	URL       string
	ExpiresAt time.Time
}

// DocumentLinker issues signed URLs for stored objects. It is implemented by the storage adapter.
type DocumentLinker interface {
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// DocumentSvc hands out document links to experts working the client
type DocumentSvc interface {
	IssueDocumentLink(ctx context.Context, expertID string, req dto.IssueDocumentLinkRequest) (*DocumentLink, error)
}
