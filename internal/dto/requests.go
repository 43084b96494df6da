package dto

import (
	"github.com/shopspring/decimal"
)

// CreateClientRequest defines the data needed to onboard a client.
type CreateClientRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Phone         string   `json:"phone" validate:"omitempty,max=40"`
	Countries     []string `json:"countries" validate:"required,min=1,dive,jurisdiction"`
	AssetTypes    []string `json:"assetTypes" validate:"omitempty,dive,max=60"`
	Complexity    string   `json:"complexity" validate:"required,complexity"`
	TaxYears      []string `json:"taxYears" validate:"omitempty,dive,len=4,numeric"`
	PipelineStage *string  `json:"pipelineStage" validate:"omitempty,pipelinestage"`
}

// CreateAssignmentRequest links an expert to a client for one jurisdiction.
type CreateAssignmentRequest struct {
	ClientID     string `json:"clientID" validate:"required,uuid"`
	ExpertID     string `json:"expertID" validate:"required,uuid"`
	Jurisdiction string `json:"jurisdiction" validate:"required,jurisdiction"`
}

// RecordPaymentRequest records money received by an expert.
// PaymentDate is a calendar date (YYYY-MM-DD).
type RecordPaymentRequest struct {
	ExpertID    string          `json:"expertID" validate:"required,uuid"`
	ClientID    *string         `json:"clientID" validate:"omitempty,uuid"`
	InvoiceID   *string         `json:"invoiceID" validate:"omitempty,uuid"`
	Amount      decimal.Decimal `json:"amount" validate:"positive"`
	Currency    string          `json:"currency" validate:"required,currency"`
	PaymentDate string          `json:"paymentDate" validate:"required,datetime=2006-01-02"`
}

// UpdatePipelineStageRequest moves a client through the funnel.
type UpdatePipelineStageRequest struct {
	Stage string `json:"stage" validate:"required,pipelinestage"`
}

// UpdateExpertStatusRequest changes an expert's platform status.
type UpdateExpertStatusRequest struct {
	Status string `json:"status" validate:"required,expertstatus"`
}

// IssueDocumentLinkRequest asks for a short-lived link to a client document.
// ExpiresInSeconds defaults to 300 when omitted.
type IssueDocumentLinkRequest struct {
	ClientID         string `json:"clientID" validate:"required,uuid"`
	Key              string `json:"key" validate:"required,max=512"`
	ExpiresInSeconds int    `json:"expiresInSeconds" validate:"omitempty,min=1,max=86400"`
}
