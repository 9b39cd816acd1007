package kernel_test

import (
	"testing"

	"bookrider/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact two decimals unchanged", "12.00", "12"},
		{"sub-cent fraction rounds up", "20.401", "20.41"},
		{"tiny fraction rounds up", "10.0001", "10.01"},
		{"integer unchanged", "15", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernel.RoundMoney(decimal.RequireFromString(tt.input))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestZeroMoney(t *testing.T) {
	assert.True(t, kernel.ZeroMoney().IsZero())
}
