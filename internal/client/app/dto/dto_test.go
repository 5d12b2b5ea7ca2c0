package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlyraves/internal/client/app/dto"
	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/domain/services"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestRaveResponsePriceLabel(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		want  string
	}{
		{name: "no price means free", price: nil, want: "free"},
		{name: "zero price is not free", price: floatPtr(0), want: "0.00"},
		{name: "plain price", price: floatPtr(25.5), want: "25.50"},
		{name: "price rounds to two digits", price: floatPtr(19.999), want: "20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rave := &entities.Rave{
				ID:          "rave-1",
				Name:        "Bunker Night",
				Date:        time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC),
				TicketPrice: tt.price,
			}

			resp := dto.NewRaveResponse(rave)

			assert.Equal(t, tt.want, resp.PriceLabel)
		})
	}
}

func TestNewCartResponseRoundsMoney(t *testing.T) {
	totals := services.CartTotals{
		Subtotal: 33.333,
		Fee:      3.3333,
		Total:    36.6663,
	}

	resp := dto.NewCartResponse(nil, totals)

	assert.InDelta(t, 33.33, resp.Subtotal, 1e-9)
	assert.InDelta(t, 3.33, resp.Fee, 1e-9)
	assert.InDelta(t, 36.67, resp.Total, 1e-9)
	require.NotNil(t, resp.Items, "items serialize as an empty array, not null")
	assert.Empty(t, resp.Items)
}

func TestNewCheckoutResponse(t *testing.T) {
	resp := dto.NewCheckoutResponse("accepted", services.CartTotals{Total: 39.049})

	assert.Equal(t, "accepted", resp.Status)
	assert.InDelta(t, 39.05, resp.Total, 1e-9)
}

func TestNewRaveResponsesKeepsOrder(t *testing.T) {
	raves := []entities.Rave{
		{ID: "rave-2", Name: "Open Air", Date: time.Now()},
		{ID: "rave-1", Name: "Bunker Night", Date: time.Now()},
	}

	responses := dto.NewRaveResponses(raves)

	require.Len(t, responses, 2)
	assert.Equal(t, "rave-2", responses[0].ID)
	assert.Equal(t, "rave-1", responses[1].ID)
}
