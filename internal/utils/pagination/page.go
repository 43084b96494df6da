package pagination

import (
	"net/url"
	"strings"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// DefaultPageSize is the row count of admin tables.
const DefaultPageSize = 25

// Fingerprint returns a stable token for a normalised filter. Field values are
// trimmed, lower-cased and escaped so that equivalent filters share a token.
func Fingerprint(fields ...string) string {
	normalised := make([]string, len(fields))
	for i, f := range fields {
		normalised[i] = url.QueryEscape(strings.ToLower(strings.TrimSpace(f)))
	}
	return EncodeMultiFieldToken(normalised...)
}

// ClientFilterFingerprint fingerprints a client list filter.
func ClientFilterFingerprint(f domain.ClientFilter) string {
	return Fingerprint("client", f.Search, f.Status, f.Country, string(f.Complexity), f.ExpertID)
}

// ExpertFilterFingerprint fingerprints an expert list filter.
func ExpertFilterFingerprint(f domain.ExpertFilter) string {
	return Fingerprint("expert", f.Search, string(f.Status), f.Jurisdiction)
}

// ResolvePage returns the page to serve. A request whose token was issued for
// a different filter, or that asks for a page below 1, is served page 1.
// An empty token is accepted as-is so that first loads and deep links work.
func ResolvePage(requested int, requestToken, currentToken string) int {
	if requested < 1 {
		return 1
	}
	if requestToken != "" && requestToken != currentToken {
		return 1
	}
	return requested
}

// Paginate slices items into a page of pageSize. Pages past the end are
// clamped to the last page; an empty list has one empty page.
func Paginate[T any](items []T, page, pageSize int, filterToken string) domain.Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	pageItems := make([]T, 0, end-start)
	pageItems = append(pageItems, items[start:end]...)

	return domain.Page[T]{
		Items:       pageItems,
		Page:        page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		FilterToken: filterToken,
	}
}
