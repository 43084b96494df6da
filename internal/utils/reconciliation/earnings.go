package reconciliation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlySeriesLength is the number of buckets in an earnings series.
const MonthlySeriesLength = 6

// Aggregator reconciles payments and invoices into earnings figures.
// Window boundaries are computed in the viewer's location.
type Aggregator struct {
	loc             *time.Location
	defaultCurrency string
}

// NewAggregator creates an aggregator. A nil loc means UTC. Payments or
// invoices with no currency are treated as defaultCurrency.
func NewAggregator(loc *time.Location, defaultCurrency string) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{loc: loc, defaultCurrency: normalizeCurrency(defaultCurrency, "")}
}

// Location returns the location month and quarter boundaries are computed in.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// WithLocation returns a copy of the aggregator computing boundaries in loc.
func (a *Aggregator) WithLocation(loc *time.Location) *Aggregator {
	if loc == nil {
		return a
	}
	return &Aggregator{loc: loc, defaultCurrency: a.defaultCurrency}
}

func normalizeCurrency(code, fallback string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fallback
	}
	return code
}

func (a *Aggregator) currencyOf(code string) string {
	return normalizeCurrency(code, a.defaultCurrency)
}

// day returns the calendar date of t as midnight in the aggregator's location.
// Payment dates are calendar dates, so the stored day is kept rather than
// shifted through a timezone conversion.
func (a *Aggregator) day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, a.loc)
}

// windowBounds returns [start, end) for a window as of now. ok is false for
// the unconstrained all-time window.
func (a *Aggregator) windowBounds(window domain.EarningsWindow, now time.Time) (start, end time.Time, ok bool) {
	local := now.In(a.loc)
	end = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc).AddDate(0, 0, 1)
	switch window {
	case domain.WindowMonthToDate:
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, a.loc), end, true
	case domain.WindowQuarterToDate:
		quarterStart := time.Month((int(local.Month())-1)/3*3 + 1)
		return time.Date(local.Year(), quarterStart, 1, 0, 0, 0, 0, a.loc), end, true
	case domain.WindowAllTime:
		return time.Time{}, time.Time{}, false
	}
	return time.Time{}, time.Time{}, false
}

// InWindow reports whether a payment dated date falls in window as of now.
// Month- and quarter-to-date run from the first day of the period through the
// end of today; future-dated payments are not yet earned.
func (a *Aggregator) InWindow(date time.Time, window domain.EarningsWindow, now time.Time) bool {
	start, end, ok := a.windowBounds(window, now)
	if !ok {
		return true
	}
	d := a.day(date)
	return !d.Before(start) && d.Before(end)
}

// Sum totals the payments that fall in window. Payments in different
// currencies are never added together: a MixedCurrencyError is returned instead.
// An empty input sums to zero.
func (a *Aggregator) Sum(payments []domain.Payment, window domain.EarningsWindow, now time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	currencies := make(map[string]bool)
	for _, p := range payments {
		if !a.InWindow(p.PaymentDate, window, now) {
			continue
		}
		currencies[a.currencyOf(p.Currency)] = true
		total = total.Add(p.Amount)
	}
	if len(currencies) > 1 {
		return decimal.Zero, &apperrors.MixedCurrencyError{Currencies: sortedKeys(currencies)}
	}
	return total, nil
}

// MonthlySeries returns exactly MonthlySeriesLength buckets, oldest first,
// ending with the month containing now. Every bucket starts at zero and only
// payments in currency are counted. Buckets are keyed by year and month.
func (a *Aggregator) MonthlySeries(payments []domain.Payment, currency string, now time.Time) []domain.MonthlyEarnings {
	current := domain.MonthKeyOf(now.In(a.loc))
	first := current.AddMonths(-(MonthlySeriesLength - 1))

	series := make([]domain.MonthlyEarnings, MonthlySeriesLength)
	index := make(map[domain.MonthKey]int, MonthlySeriesLength)
	for i := range series {
		key := first.AddMonths(i)
		series[i] = domain.MonthlyEarnings{Key: key, Amount: decimal.Zero}
		index[key] = i
	}

	currency = a.currencyOf(currency)
	_, end, _ := a.windowBounds(domain.WindowMonthToDate, now)
	for _, p := range payments {
		if a.currencyOf(p.Currency) != currency {
			continue
		}
		d := a.day(p.PaymentDate)
		if !d.Before(end) {
			continue
		}
		if i, ok := index[domain.MonthKeyOf(d)]; ok {
			series[i].Amount = series[i].Amount.Add(p.Amount)
		}
	}
	return series
}

// PendingByCurrency totals the outstanding balance of sent and overdue
// invoices. These amounts are awaiting payment and are never earned figures.
func (a *Aggregator) PendingByCurrency(invoices []domain.Invoice, now time.Time) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		switch inv.EffectiveStatus(now) {
		case domain.InvoiceSent, domain.InvoiceOverdue:
			cur := a.currencyOf(inv.Currency)
			out[cur] = out[cur].Add(inv.OutstandingAmount())
		case domain.InvoiceDraft, domain.InvoicePaid:
		}
	}
	return out
}

// Pending totals outstanding invoices in currency only.
func (a *Aggregator) Pending(invoices []domain.Invoice, currency string, now time.Time) decimal.Decimal {
	return a.PendingByCurrency(invoices, now)[a.currencyOf(currency)]
}

// HeadlineCurrency picks the currency headline figures are reported in: the
// only currency present, else the default currency when present, else the
// alphabetically first one.
func (a *Aggregator) HeadlineCurrency(payments []domain.Payment, invoices []domain.Invoice) string {
	seen := make(map[string]bool)
	for _, p := range payments {
		seen[a.currencyOf(p.Currency)] = true
	}
	for _, inv := range invoices {
		if inv.IsPending() {
			seen[a.currencyOf(inv.Currency)] = true
		}
	}
	if len(seen) == 0 || seen[a.defaultCurrency] {
		return a.defaultCurrency
	}
	return sortedKeys(seen)[0]
}

// TotalsByClient sums all-time payments per client in currency. It is meant
// to be computed once per view and reused, e.g. as a revenue sort key.
func (a *Aggregator) TotalsByClient(payments []domain.Payment, currency string) map[string]decimal.Decimal {
	currency = a.currencyOf(currency)
	out := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if p.ClientID == nil || a.currencyOf(p.Currency) != currency {
			continue
		}
		out[*p.ClientID] = out[*p.ClientID].Add(p.Amount)
	}
	return out
}

// PendingByClient sums outstanding invoices per client in currency.
func (a *Aggregator) PendingByClient(invoices []domain.Invoice, currency string, now time.Time) map[string]decimal.Decimal {
	currency = a.currencyOf(currency)
	out := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		if !inv.IsPending() || a.currencyOf(inv.Currency) != currency {
			continue
		}
		out[inv.ClientID] = out[inv.ClientID].Add(inv.OutstandingAmount())
	}
	return out
}

// Summarize builds the full earnings picture for a set of payments and
// invoices belonging to one expert or one client.
func (a *Aggregator) Summarize(payments []domain.Payment, invoices []domain.Invoice, now time.Time) domain.EarningsSummary {
	byCurrency := make(map[string]*domain.CurrencyEarnings)
	entry := func(cur string) *domain.CurrencyEarnings {
		e, ok := byCurrency[cur]
		if !ok {
			e = &domain.CurrencyEarnings{Currency: cur, AllTime: decimal.Zero, QuarterToDate: decimal.Zero, MonthToDate: decimal.Zero, Pending: decimal.Zero}
			byCurrency[cur] = e
		}
		return e
	}

	for _, p := range payments {
		e := entry(a.currencyOf(p.Currency))
		e.AllTime = e.AllTime.Add(p.Amount)
		if a.InWindow(p.PaymentDate, domain.WindowQuarterToDate, now) {
			e.QuarterToDate = e.QuarterToDate.Add(p.Amount)
		}
		if a.InWindow(p.PaymentDate, domain.WindowMonthToDate, now) {
			e.MonthToDate = e.MonthToDate.Add(p.Amount)
		}
	}
	for cur, amount := range a.PendingByCurrency(invoices, now) {
		e := entry(cur)
		e.Pending = e.Pending.Add(amount)
	}

	headline := a.HeadlineCurrency(payments, invoices)
	summary := domain.EarningsSummary{
		Currency:      headline,
		AllTime:       decimal.Zero,
		QuarterToDate: decimal.Zero,
		MonthToDate:   decimal.Zero,
		Pending:       decimal.Zero,
		Monthly:       a.MonthlySeries(payments, headline, now),
		ByCurrency:    make([]domain.CurrencyEarnings, 0, len(byCurrency)),
		PaymentCount:  len(payments),
	}
	if e, ok := byCurrency[headline]; ok {
		summary.AllTime = e.AllTime
		summary.QuarterToDate = e.QuarterToDate
		summary.MonthToDate = e.MonthToDate
		summary.Pending = e.Pending
	}

	currencies := make([]string, 0, len(byCurrency))
	for cur := range byCurrency {
		currencies = append(currencies, cur)
	}
	sort.Strings(currencies)
	for _, cur := range currencies {
		summary.ByCurrency = append(summary.ByCurrency, *byCurrency[cur])
	}
	if len(currencies) > 1 {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf(
			"amounts span currencies %s; headline figures are %s only and are not converted",
			strings.Join(currencies, ", "), headline))
	}
	return summary
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
