package reconciliation

import "github.com/SscSPs/tax_engagement_app/internal/core/domain"

// BucketByStage counts clients per funnel stage in the fixed stage order.
// Clients without a stage, or with one outside the fixed set, are reported as
// unstaged and do not count towards any percentage.
func BucketByStage(clients []domain.Client) domain.FunnelReport {
	counts := make([]int, len(domain.PipelineStages))
	report := domain.FunnelReport{}
	for _, c := range clients {
		if c.PipelineStage == nil {
			report.Unstaged++
			continue
		}
		idx := c.PipelineStage.Index()
		if idx < 0 {
			report.Unstaged++
			continue
		}
		counts[idx]++
		report.TotalBucketed++
	}

	report.Buckets = make([]domain.StageBucket, len(domain.PipelineStages))
	for i, stage := range domain.PipelineStages {
		report.Buckets[i] = domain.StageBucket{
			Stage:      stage,
			Count:      counts[i],
			Percentage: roundPercent(counts[i], report.TotalBucketed),
		}
	}
	return report
}
