package listing

import (
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Sortable exposes the keys list views can be ordered by. Revenue must be
// precomputed on the row so sorting never triggers a fetch.
type Sortable interface {
	SortName() string
	SortCreatedAt() time.Time
	SortRevenue() decimal.Decimal
}

// Sort orders rows in place by spec. The sort is stable: rows with equal keys
// keep their input order in both directions.
func Sort[R Sortable](rows []R, spec domain.SortSpec) {
	var cmp func(a, b R) int
	switch spec.Field {
	case domain.SortByCreatedAt:
		cmp = func(a, b R) int { return a.SortCreatedAt().Compare(b.SortCreatedAt()) }
	case domain.SortByRevenue:
		cmp = func(a, b R) int { return a.SortRevenue().Cmp(b.SortRevenue()) }
	default:
		cmp = func(a, b R) int { return strings.Compare(strings.ToLower(a.SortName()), strings.ToLower(b.SortName())) }
	}
	if spec.Direction == domain.SortDesc {
		asc := cmp
		cmp = func(a, b R) int { return asc(b, a) }
	}
	slices.SortStableFunc(rows, cmp)
}
