package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		cost      string
		qty       int
		entryCost string
		want      string
	}{
		{"sin estoque previo", 0, "0", 10, "12.50", "12.5"},
		{"promedio simple", 10, "10", 10, "20", "15"},
		{"redondeo a centavos", 3, "10", 1, "11", "10.25"},
		{"promedio periódico", 2, "10", 1, "10.01", "10"},
		{"estoque negativo se trata como cero", -4, "99", 2, "7", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverageCost(tt.stock, decimal.RequireFromString(tt.cost), tt.qty, decimal.RequireFromString(tt.entryCost))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
