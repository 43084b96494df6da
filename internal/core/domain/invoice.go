package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoicePaid    InvoiceStatus = "paid"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoiceOverdue, InvoicePaid:
		return true
	}
	return false
}

// ParseInvoiceStatus parses a case-insensitive invoice status.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status := InvoiceStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: invoice status %q", ErrUnknownEnumValue, s)
	}
	return status, nil
}

// Invoice is a bill issued by an expert to a client. PaidAmount is a cached
// convenience; payments are the source of truth for revenue.
type Invoice struct {
	InvoiceID  string           `json:"invoiceID"`
	ClientID   string           `json:"clientID"`
	ExpertID   string           `json:"expertID"`
	Amount     decimal.Decimal  `json:"amount"`
	Currency   string           `json:"currency"`
	Status     InvoiceStatus    `json:"status"`
	DueDate    *time.Time       `json:"dueDate"`
	PaidAmount *decimal.Decimal `json:"paidAmount"`
	PaidAt     *time.Time       `json:"paidAt"`
	AuditFields
}

// EffectiveStatus applies the time-based sent -> overdue transition as of now.
func (i Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if i.Status == InvoiceSent && i.DueDate != nil && i.DueDate.Before(now) && i.PaidAt == nil {
		return InvoiceOverdue
	}
	return i.Status
}

// IsPending reports whether the invoice is awaiting payment (sent or overdue).
func (i Invoice) IsPending() bool {
	switch i.Status {
	case InvoiceSent, InvoiceOverdue:
		return true
	case InvoiceDraft, InvoicePaid:
		return false
	}
	return false
}

// OutstandingAmount is the part of the invoice still owed. Partially paid
// invoices contribute only their remaining balance, never less than zero.
func (i Invoice) OutstandingAmount() decimal.Decimal {
	if i.PaidAmount == nil {
		return i.Amount
	}
	remaining := i.Amount.Sub(*i.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
