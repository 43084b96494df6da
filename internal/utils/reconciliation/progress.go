package reconciliation

import "github.com/SscSPs/tax_engagement_app/internal/core/domain"

// roundPercent returns round(100*part/whole) using integer half-up rounding.
// A zero or negative whole yields 0.
func roundPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

// ComputeProgress derives the completion percentage of one engagement from its tasks.
// Only completed tasks count; in_progress earns no partial credit. An engagement
// with no tasks yet is 0% complete. The result is 100 only when every task is
// completed, so 199 of 200 reports 99 rather than rounding up.
func ComputeProgress(tasks []domain.Task) int {
	total := len(tasks)
	if total == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskCompleted:
			completed++
		case domain.TaskPending, domain.TaskInProgress:
		}
	}
	pct := roundPercent(completed, total)
	if pct == 100 && completed < total {
		return 99
	}
	return pct
}

// ProgressByPair computes progress for every client+expert pair present in tasks.
func ProgressByPair(tasks []domain.Task) map[domain.PairKey]int {
	grouped := make(map[domain.PairKey][]domain.Task)
	for _, t := range tasks {
		grouped[t.Pair()] = append(grouped[t.Pair()], t)
	}
	out := make(map[domain.PairKey]int, len(grouped))
	for pair, pairTasks := range grouped {
		out[pair] = ComputeProgress(pairTasks)
	}
	return out
}

// ProgressByClient computes progress per client across all of its experts' tasks.
func ProgressByClient(tasks []domain.Task) map[string]int {
	grouped := make(map[string][]domain.Task)
	for _, t := range tasks {
		grouped[t.ClientID] = append(grouped[t.ClientID], t)
	}
	out := make(map[string]int, len(grouped))
	for clientID, clientTasks := range grouped {
		out[clientID] = ComputeProgress(clientTasks)
	}
	return out
}

// CountOpenTasks counts tasks that are not yet completed.
func CountOpenTasks(tasks []domain.Task) int {
	open := 0
	for _, t := range tasks {
		if t.Status != domain.TaskCompleted {
			open++
		}
	}
	return open
}
