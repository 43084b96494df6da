package validation

import (
	"testing"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CreateClientRequest(t *testing.T) {
	stage := "Nowhere"
	req := dto.CreateClientRequest{
		Countries:     []string{"GB", "usa"},
		Complexity:    "Trivial",
		PipelineStage: &stage,
	}

	err := Validate(req)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"This field is required"}, ve.Fields["name"])
	assert.Contains(t, ve.Fields["countries[1]"][0], "jurisdiction")
	assert.Equal(t, []string{"Unknown complexity level"}, ve.Fields["complexity"])
	assert.Equal(t, []string{"Unknown pipeline stage"}, ve.Fields["pipelineStage"])
	_, ok := ve.Fields["countries[0]"]
	assert.False(t, ok)
}

func TestValidate_ValidRequests(t *testing.T) {
	assert.NoError(t, Validate(dto.CreateClientRequest{
		Name:       "Acme",
		Countries:  []string{"gb"},
		Complexity: "multi-jurisdiction complex",
		TaxYears:   []string{"2025"},
	}))
	assert.NoError(t, Validate(dto.RecordPaymentRequest{
		ExpertID:    "6f1c8c4e-1c4b-4e5a-9c55-6b9f0d2a7a11",
		Amount:      decimal.RequireFromString("12.50"),
		Currency:    "usd",
		PaymentDate: "2026-05-03",
	}))
}

func TestValidate_RecordPaymentRequest(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.RecordPaymentRequest
		field string
	}{
		{
			name:  "zero amount",
			req:   dto.RecordPaymentRequest{ExpertID: "6f1c8c4e-1c4b-4e5a-9c55-6b9f0d2a7a11", Amount: decimal.Zero, Currency: "USD", PaymentDate: "2026-05-03"},
			field: "amount",
		},
		{
			name:  "negative amount",
			req:   dto.RecordPaymentRequest{ExpertID: "6f1c8c4e-1c4b-4e5a-9c55-6b9f0d2a7a11", Amount: decimal.NewFromInt(-5), Currency: "USD", PaymentDate: "2026-05-03"},
			field: "amount",
		},
		{
			name:  "bad currency",
			req:   dto.RecordPaymentRequest{ExpertID: "6f1c8c4e-1c4b-4e5a-9c55-6b9f0d2a7a11", Amount: decimal.NewFromInt(5), Currency: "US", PaymentDate: "2026-05-03"},
			field: "currency",
		},
		{
			name:  "bad date",
			req:   dto.RecordPaymentRequest{ExpertID: "6f1c8c4e-1c4b-4e5a-9c55-6b9f0d2a7a11", Amount: decimal.NewFromInt(5), Currency: "USD", PaymentDate: "03/05/2026"},
			field: "paymentDate",
		},
		{
			name:  "expert id not a uuid",
			req:   dto.RecordPaymentRequest{ExpertID: "expert-1", Amount: decimal.NewFromInt(5), Currency: "USD", PaymentDate: "2026-05-03"},
			field: "expertID",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := Fields(tt.req)
			require.NoError(t, err)
			assert.Contains(t, fields, tt.field)
			assert.Len(t, fields, 1)
		})
	}
}
