package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an immutable record of money received by an expert.
// Payments are the only input to earned-revenue figures.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	ExpertID    string          `json:"expertID"`
	ClientID    *string         `json:"clientID"`
	InvoiceID   *string         `json:"invoiceID"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PaymentDate time.Time       `json:"paymentDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}
