package domain

import "time"

// Activity actions written by the core.
const (
	ActionAssignmentCreated     = "assignment_created"
	ActionAssignmentDeactivated = "assignment_deactivated"
	ActionAssignmentReactivated = "assignment_reactivated"
	ActionPaymentRecorded       = "payment_recorded"
	ActionPipelineStageChanged  = "pipeline_stage_changed"
	ActionDocumentAccessed      = "document_accessed"
	ActionClientCreated         = "client_created"
	ActionExpertStatusChanged   = "expert_status_changed"
)

// ActivityLogEntry is an append-only audit line used for display only.
type ActivityLogEntry struct {
	ActivityID string    `json:"activityID"`
	ExpertID   *string   `json:"expertID"`
	ClientID   *string   `json:"clientID"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ActivityFilter narrows an activity feed. Empty fields are ignored.
type ActivityFilter struct {
	ExpertID string
	ClientID string
}
