// Package listing filters and orders the rows of list views in memory.
package listing

import (
	"strings"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// ClientRow is a list row built around a client.
type ClientRow interface {
	ListedClient() domain.Client
	ListedExpertIDs() []string
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// MatchClient reports whether row satisfies every non-empty field of f.
func MatchClient(row ClientRow, f domain.ClientFilter) bool {
	c := row.ListedClient()
	if q := strings.TrimSpace(f.Search); q != "" {
		if !containsFold(c.Name, q) && !containsFold(c.Email, q) && !containsFold(c.Phone, q) {
			return false
		}
	}
	if s := strings.TrimSpace(f.Status); s != "" && !strings.EqualFold(c.OverallStatus, s) {
		return false
	}
	if country := strings.TrimSpace(f.Country); country != "" && !c.HasCountry(country) {
		return false
	}
	if f.Complexity != "" && !strings.EqualFold(string(c.Complexity), string(f.Complexity)) {
		return false
	}
	if f.ExpertID != "" {
		found := false
		for _, id := range row.ListedExpertIDs() {
			if id == f.ExpertID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterClients keeps the rows matching f, preserving order.
func FilterClients[R ClientRow](rows []R, f domain.ClientFilter) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if MatchClient(r, f) {
			out = append(out, r)
		}
	}
	return out
}

// MatchExpert reports whether e satisfies every non-empty field of f.
func MatchExpert(e domain.Expert, f domain.ExpertFilter) bool {
	if q := strings.TrimSpace(f.Search); q != "" && !containsFold(e.Name, q) && !containsFold(e.Email, q) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(string(e.Status), string(f.Status)) {
		return false
	}
	if j := strings.TrimSpace(f.Jurisdiction); j != "" && !e.CoversJurisdiction(j) {
		return false
	}
	return true
}

// FilterExperts keeps the expert rows matching f, preserving order.
func FilterExperts(rows []domain.AdminExpertRow, f domain.ExpertFilter) []domain.AdminExpertRow {
	out := make([]domain.AdminExpertRow, 0, len(rows))
	for _, r := range rows {
		if MatchExpert(r.Expert, f) {
			out = append(out, r)
		}
	}
	return out
}
