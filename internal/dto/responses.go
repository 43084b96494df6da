package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyEarningsResponse is one bucket of a monthly series with its display label.
type MonthlyEarningsResponse struct {
	Label  string          `json:"label"` // e.g. "Jan 2026"
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// EarningsSummaryResponse is the presentation form of domain.EarningsSummary.
type EarningsSummaryResponse struct {
	Currency      string                    `json:"currency"`
	AllTime       decimal.Decimal           `json:"allTime"`
	QuarterToDate decimal.Decimal           `json:"quarterToDate"`
	MonthToDate   decimal.Decimal           `json:"monthToDate"`
	Pending       decimal.Decimal           `json:"pending"`
	Monthly       []MonthlyEarningsResponse `json:"monthly"`
	ByCurrency    []domain.CurrencyEarnings `json:"byCurrency"`
	PaymentCount  int                       `json:"paymentCount"`
	Warnings      []string                  `json:"warnings,omitempty"`
}

// MonthLabel renders a month key as "Jan 2026". The year is always shown so
// that the same month of two years is never ambiguous.
func MonthLabel(k domain.MonthKey) string {
	return fmt.Sprintf("%s %d", k.Month.String()[:3], k.Year)
}

// ToEarningsSummaryResponse converts a domain.EarningsSummary to its DTO.
func ToEarningsSummaryResponse(s domain.EarningsSummary) EarningsSummaryResponse {
	monthly := make([]MonthlyEarningsResponse, len(s.Monthly))
	for i, m := range s.Monthly {
		monthly[i] = MonthlyEarningsResponse{
			Label:  MonthLabel(m.Key),
			Year:   m.Key.Year,
			Month:  int(m.Key.Month),
			Amount: m.Amount,
		}
	}
	byCurrency := s.ByCurrency
	if byCurrency == nil {
		byCurrency = []domain.CurrencyEarnings{}
	}
	return EarningsSummaryResponse{
		Currency:      s.Currency,
		AllTime:       s.AllTime,
		QuarterToDate: s.QuarterToDate,
		MonthToDate:   s.MonthToDate,
		Pending:       s.Pending,
		Monthly:       monthly,
		ByCurrency:    byCurrency,
		PaymentCount:  s.PaymentCount,
		Warnings:      s.Warnings,
	}
}

// ExpertDashboardResponse is the expert portal landing payload.
type ExpertDashboardResponse struct {
	ExpertID      string                  `json:"expertID"`
	ActiveClients int                     `json:"activeClients"`
	OpenTasks     int                     `json:"openTasks"`
	Earnings      EarningsSummaryResponse `json:"earnings"`
	Warnings      []string                `json:"warnings,omitempty"`
	Degraded      []string                `json:"degraded,omitempty"`
}

// ToExpertDashboardResponse converts the dashboard view to its DTO.
func ToExpertDashboardResponse(v *domain.ExpertDashboardView) ExpertDashboardResponse {
	return ExpertDashboardResponse{
		ExpertID:      v.ExpertID,
		ActiveClients: v.ActiveClients,
		OpenTasks:     v.OpenTasks,
		Earnings:      ToEarningsSummaryResponse(v.Earnings),
		Warnings:      v.Warnings,
		Degraded:      v.Degraded,
	}
}

// ExpertDetailResponse is the admin drill-down payload.
type ExpertDetailResponse struct {
	Expert         domain.Expert             `json:"expert"`
	Clients        []domain.ExpertClientRow  `json:"clients"`
	Earnings       EarningsSummaryResponse   `json:"earnings"`
	RecentPayments []domain.Payment          `json:"recentPayments"`
	RecentActivity []domain.ActivityLogEntry `json:"recentActivity"`
	Warnings       []string                  `json:"warnings,omitempty"`
	Degraded       []string                  `json:"degraded,omitempty"`
}

// ToExpertDetailResponse converts the drill-down view to its DTO.
func ToExpertDetailResponse(v *domain.ExpertDetailView) ExpertDetailResponse {
	return ExpertDetailResponse{
		Expert:         v.Expert,
		Clients:        v.Clients,
		Earnings:       ToEarningsSummaryResponse(v.Earnings),
		RecentPayments: v.RecentPayments,
		RecentActivity: v.RecentActivity,
		Warnings:       v.Warnings,
		Degraded:       v.Degraded,
	}
}

// DocumentLinkResponse carries a signed document URL.
type DocumentLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ListActivityResponse is one page of the activity feed.
type ListActivityResponse struct {
	Entries   []domain.ActivityLogEntry `json:"entries"`
	NextToken *string                   `json:"nextToken,omitempty"`
}
