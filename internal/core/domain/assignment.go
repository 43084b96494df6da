package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AssignmentStatus indicates whether an assignment is currently worked.
type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "active"
	AssignmentInactive AssignmentStatus = "inactive"
)

// Valid reports whether s is a known assignment status.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentActive, AssignmentInactive:
		return true
	}
	return false
}

// ParseAssignmentStatus parses a case-insensitive assignment status.
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	status := AssignmentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: assignment status %q", ErrUnknownEnumValue, s)
	}
	return status, nil
}

// CanTransitionTo reports whether an assignment in status s may move to next.
// Assignments go active -> inactive on termination or handoff and back to active on re-engagement.
func (s AssignmentStatus) CanTransitionTo(next AssignmentStatus) bool {
	switch s {
	case AssignmentActive:
		return next == AssignmentInactive
	case AssignmentInactive:
		return next == AssignmentActive
	}
	return false
}

// Assignment links one client, one expert and one jurisdiction.
// (ClientID, ExpertID, Jurisdiction) is unique.
type Assignment struct {
	AssignmentID string           `json:"assignmentID"`
	ClientID     string           `json:"clientID"`
	ExpertID     string           `json:"expertID"`
	Jurisdiction string           `json:"jurisdiction"`
	Status       AssignmentStatus `json:"status"`
	Earnings     decimal.Decimal  `json:"earnings"` // only moved by recorded payments
	AuditFields
}

// IsActive reports whether the assignment is currently worked.
func (a Assignment) IsActive() bool {
	return a.Status == AssignmentActive
}

// PairKey identifies the client+expert pair an assignment, task, invoice or payment belongs to.
type PairKey struct {
	ClientID string
	ExpertID string
}

// Pair returns the client+expert pair of the assignment.
func (a Assignment) Pair() PairKey {
	return PairKey{ClientID: a.ClientID, ExpertID: a.ExpertID}
}

// AssignmentDetail is an assignment joined with the display names of both sides.
// Names are nil when the joined row is missing.
type AssignmentDetail struct {
	Assignment
	ExpertName *string `json:"expertName"`
	ClientName *string `json:"clientName"`
}

// ClientExpert is one expert working a client, as seen by a viewing expert.
type ClientExpert struct {
	ExpertID     string           `json:"expertID"`
	Name         string           `json:"name"`
	Jurisdiction string           `json:"jurisdiction"`
	Status       AssignmentStatus `json:"status"`
	IsSelf       bool             `json:"isSelf"`
}
