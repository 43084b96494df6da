package domain

// StageBucket is one row of the funnel report.
type StageBucket struct {
	Stage      PipelineStage `json:"stage"`
	Count      int           `json:"count"`
	Percentage int           `json:"percentage"`
}

// FunnelReport buckets clients over the fixed stage order. Clients with no
// stage, or an unknown one, are counted in Unstaged and excluded from the
// percentage denominator.
type FunnelReport struct {
	Buckets       []StageBucket `json:"buckets"`
	TotalBucketed int           `json:"totalBucketed"`
	Unstaged      int           `json:"unstaged"`
}
