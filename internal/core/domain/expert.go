package domain

import (
	"fmt"
	"strings"
)

// ExpertStatus is the platform-admin controlled lifecycle of an expert.
type ExpertStatus string

const (
	ExpertActive    ExpertStatus = "active"
	ExpertPending   ExpertStatus = "pending"
	ExpertSuspended ExpertStatus = "suspended"
)

// Valid reports whether s is a known expert status.
func (s ExpertStatus) Valid() bool {
	switch s {
	case ExpertActive, ExpertPending, ExpertSuspended:
		return true
	}
	return false
}

// ParseExpertStatus parses a case-insensitive expert status.
func ParseExpertStatus(s string) (ExpertStatus, error) {
	status := ExpertStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: expert status %q", ErrUnknownEnumValue, s)
	}
	return status, nil
}

// Expert is a tax professional working one or more jurisdictions.
type Expert struct {
	ExpertID        string       `json:"expertID"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Jurisdictions   []string     `json:"jurisdictions"`
	Specializations []string     `json:"specializations"`
	Rating          *float64     `json:"rating"` // 0.0-5.0, nil until rated
	Status          ExpertStatus `json:"status"`
	AuditFields
}

// CoversJurisdiction reports whether the expert works the given jurisdiction (case-insensitive).
func (e Expert) CoversJurisdiction(code string) bool {
	for _, j := range e.Jurisdictions {
		if strings.EqualFold(j, code) {
			return true
		}
	}
	return false
}
