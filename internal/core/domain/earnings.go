package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EarningsWindow selects the payment dates an aggregate covers.
type EarningsWindow string

const (
	WindowAllTime       EarningsWindow = "all_time"
	WindowQuarterToDate EarningsWindow = "quarter_to_date"
	WindowMonthToDate   EarningsWindow = "month_to_date"
)

// MonthKey identifies a calendar month. Buckets are keyed by year and month so
// that the same month name in different years never collides.
type MonthKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthKeyOf returns the calendar month containing t, in t's location.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// AddMonths returns the key n months after k (n may be negative).
func (k MonthKey) AddMonths(n int) MonthKey {
	t := time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// MonthlyEarnings is one bucket of a monthly series.
type MonthlyEarnings struct {
	Key    MonthKey        `json:"key"`
	Amount decimal.Decimal `json:"amount"`
}

// CurrencyEarnings holds the windowed totals for a single currency.
type CurrencyEarnings struct {
	Currency      string          `json:"currency"`
	AllTime       decimal.Decimal `json:"allTime"`
	QuarterToDate decimal.Decimal `json:"quarterToDate"`
	MonthToDate   decimal.Decimal `json:"monthToDate"`
	Pending       decimal.Decimal `json:"pending"`
}

// EarningsSummary is the reconciled financial picture for an expert or a client.
// Headline figures are in Currency; other currencies appear only in ByCurrency
// and raise a warning, they are never added together.
type EarningsSummary struct {
	Currency      string             `json:"currency"`
	AllTime       decimal.Decimal    `json:"allTime"`
	QuarterToDate decimal.Decimal    `json:"quarterToDate"`
	MonthToDate   decimal.Decimal    `json:"monthToDate"`
	Pending       decimal.Decimal    `json:"pending"` // sent/overdue invoices, never part of earned figures
	Monthly       []MonthlyEarnings  `json:"monthly"`
	ByCurrency    []CurrencyEarnings `json:"byCurrency"`
	PaymentCount  int                `json:"paymentCount"`
	Warnings      []string           `json:"warnings,omitempty"`
}

// MixedCurrency reports whether the summary spans more than one currency.
func (s EarningsSummary) MixedCurrency() bool {
	return len(s.ByCurrency) > 1
}
