package reconciliation

import (
	"sort"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// UnknownExpertName is shown for an assignment whose expert row could not be joined.
const UnknownExpertName = "Unknown"

// ScopeToExpert keeps only the assignments owned by expertID. Inactive
// assignments are dropped unless includeInactive is set.
func ScopeToExpert(assignments []domain.Assignment, expertID string, includeInactive bool) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.ExpertID != expertID {
			continue
		}
		if !includeInactive && !a.IsActive() {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ExpertsForClient lists the experts working clientID as seen by viewerExpertID.
// The viewer's own rows are flagged IsSelf whatever their name; a missing joined
// name becomes "Unknown" instead of failing the whole list.
func ExpertsForClient(details []domain.AssignmentDetail, clientID, viewerExpertID string, includeInactive bool) []domain.ClientExpert {
	out := make([]domain.ClientExpert, 0)
	for _, d := range details {
		if d.ClientID != clientID {
			continue
		}
		if !includeInactive && !d.IsActive() {
			continue
		}
		out = append(out, toClientExpert(d, viewerExpertID))
	}
	sortClientExperts(out)
	return out
}

// GroupExpertsByClient is ExpertsForClient for every client present in details.
func GroupExpertsByClient(details []domain.AssignmentDetail, viewerExpertID string, includeInactive bool) map[string][]domain.ClientExpert {
	out := make(map[string][]domain.ClientExpert)
	for _, d := range details {
		if !includeInactive && !d.IsActive() {
			continue
		}
		out[d.ClientID] = append(out[d.ClientID], toClientExpert(d, viewerExpertID))
	}
	for clientID := range out {
		sortClientExperts(out[clientID])
	}
	return out
}

func toClientExpert(d domain.AssignmentDetail, viewerExpertID string) domain.ClientExpert {
	name := UnknownExpertName
	if d.ExpertName != nil && *d.ExpertName != "" {
		name = *d.ExpertName
	}
	return domain.ClientExpert{
		ExpertID:     d.ExpertID,
		Name:         name,
		Jurisdiction: d.Jurisdiction,
		Status:       d.Status,
		IsSelf:       viewerExpertID != "" && d.ExpertID == viewerExpertID,
	}
}

func sortClientExperts(experts []domain.ClientExpert) {
	sort.SliceStable(experts, func(i, j int) bool {
		if experts[i].Jurisdiction != experts[j].Jurisdiction {
			return experts[i].Jurisdiction < experts[j].Jurisdiction
		}
		return experts[i].Name < experts[j].Name
	})
}

// ClientIDs returns the distinct client IDs of assignments, in first-seen order.
func ClientIDs(assignments []domain.Assignment) []string {
	seen := make(map[string]bool, len(assignments))
	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if seen[a.ClientID] {
			continue
		}
		seen[a.ClientID] = true
		ids = append(ids, a.ClientID)
	}
	return ids
}

// JurisdictionsByClient groups assignment jurisdictions by client.
func JurisdictionsByClient(assignments []domain.Assignment) map[string][]string {
	out := make(map[string][]string)
	for _, a := range assignments {
		out[a.ClientID] = append(out[a.ClientID], a.Jurisdiction)
	}
	for clientID := range out {
		sort.Strings(out[clientID])
	}
	return out
}
