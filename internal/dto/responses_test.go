package dto

import (
	"testing"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEarningsSummaryResponse_LabelsIncludeYear(t *testing.T) {
	summary := domain.EarningsSummary{
		Currency: "USD",
		Monthly: []domain.MonthlyEarnings{
			{Key: domain.MonthKey{Year: 2025, Month: time.December}, Amount: decimal.NewFromInt(10)},
			{Key: domain.MonthKey{Year: 2026, Month: time.January}, Amount: decimal.NewFromInt(20)},
		},
	}

	resp := ToEarningsSummaryResponse(summary)

	require.Len(t, resp.Monthly, 2)
	assert.Equal(t, "Dec 2025", resp.Monthly[0].Label)
	assert.Equal(t, "Jan 2026", resp.Monthly[1].Label)
	assert.Equal(t, 1, resp.Monthly[1].Month)
	assert.NotNil(t, resp.ByCurrency)
}
