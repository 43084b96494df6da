package reconciliation

import (
	"fmt"
	"sort"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
)

// InvariantTaskWithoutAssignment is the kind reported for tasks whose
// client/expert pair has no assignment in any status.
const InvariantTaskWithoutAssignment = "task_without_assignment"

// FindOrphanTasks reports each client/expert pair that has tasks but no
// assignment. Inactive assignments still count: historical work is legitimate.
// One violation is reported per pair, ordered by client then expert.
func FindOrphanTasks(tasks []domain.Task, assignments []domain.Assignment) []*apperrors.InvariantViolation {
	known := make(map[domain.PairKey]bool, len(assignments))
	for _, a := range assignments {
		known[a.Pair()] = true
	}

	orphans := make(map[domain.PairKey]int)
	for _, t := range tasks {
		if !known[t.Pair()] {
			orphans[t.Pair()]++
		}
	}

	pairs := make([]domain.PairKey, 0, len(orphans))
	for p := range orphans {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].ClientID != pairs[j].ClientID {
			return pairs[i].ClientID < pairs[j].ClientID
		}
		return pairs[i].ExpertID < pairs[j].ExpertID
	})

	violations := make([]*apperrors.InvariantViolation, 0, len(pairs))
	for _, p := range pairs {
		violations = append(violations, &apperrors.InvariantViolation{
			Kind:     InvariantTaskWithoutAssignment,
			ClientID: p.ClientID,
			ExpertID: p.ExpertID,
			Detail:   pluralTasks(orphans[p]) + " reference a pair with no assignment",
		})
	}
	return violations
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
