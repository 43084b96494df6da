package domain

import (
	"fmt"
	"strings"
)

// Complexity classifies how involved a client's tax situation is.
type Complexity string

const (
	ComplexitySimple                   Complexity = "Simple"
	ComplexityModerate                 Complexity = "Moderate"
	ComplexityComplex                  Complexity = "Complex"
	ComplexityMultiJurisdictionComplex Complexity = "Multi-Jurisdiction Complex"
)

// Valid reports whether c is one of the known complexity levels.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexitySimple, ComplexityModerate, ComplexityComplex, ComplexityMultiJurisdictionComplex:
		return true
	}
	return false
}

// ParseComplexity matches s case-insensitively against the known levels.
func ParseComplexity(s string) (Complexity, error) {
	for _, c := range []Complexity{ComplexitySimple, ComplexityModerate, ComplexityComplex, ComplexityMultiJurisdictionComplex} {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: complexity %q", ErrUnknownEnumValue, s)
}

// PipelineStage is a client's position in the intake-to-completion funnel.
type PipelineStage string

const (
	StageQuoteRequest   PipelineStage = "Quote Request"
	StageDataCollection PipelineStage = "Data Collection"
	StageAssessment     PipelineStage = "Assessment"
	StageProcessing     PipelineStage = "Processing"
	StageDelivery       PipelineStage = "Delivery"
	StageComplete       PipelineStage = "Complete"
)

// PipelineStages is the fixed funnel order. Reporting always emits stages in this order.
var PipelineStages = []PipelineStage{
	StageQuoteRequest,
	StageDataCollection,
	StageAssessment,
	StageProcessing,
	StageDelivery,
	StageComplete,
}

// Valid reports whether s is one of the fixed funnel stages.
func (s PipelineStage) Valid() bool {
	return s.Index() >= 0
}

// Index returns the position of s in PipelineStages, or -1 when unknown.
func (s PipelineStage) Index() int {
	for i, stage := range PipelineStages {
		if s == stage {
			return i
		}
	}
	return -1
}

// ParsePipelineStage matches s case-insensitively against the funnel stages.
func ParsePipelineStage(s string) (PipelineStage, error) {
	for _, stage := range PipelineStages {
		if strings.EqualFold(strings.TrimSpace(s), string(stage)) {
			return stage, nil
		}
	}
	return "", fmt.Errorf("%w: pipeline stage %q", ErrUnknownEnumValue, s)
}

// Client is a taxpayer served by one or more experts.
type Client struct {
	ClientID      string         `json:"clientID"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Countries     []string       `json:"countries"` // ordered jurisdiction codes
	AssetTypes    []string       `json:"assetTypes"`
	Complexity    Complexity     `json:"complexity"`
	TaxYears      []string       `json:"taxYears"`
	OverallStatus string         `json:"overallStatus"`
	PipelineStage *PipelineStage `json:"pipelineStage"` // nil when the client has not entered the funnel
	AuditFields
}

// HasCountry reports whether the client files in the given jurisdiction (case-insensitive).
func (c Client) HasCountry(code string) bool {
	for _, country := range c.Countries {
		if strings.EqualFold(country, code) {
			return true
		}
	}
	return false
}
