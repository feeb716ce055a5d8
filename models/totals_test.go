package models

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name    string
		lines   []*LineItem
		custom  []*LineItem
		wantSub float64
	}{
		{
			name:    "empty document",
			wantSub: 0,
		},
		{
			name: "single line",
			lines: []*LineItem{
				{Description: "Gravel", Quantity: 10, UnitPrice: 100},
			},
			wantSub: 1000,
		},
		{
			name: "multiple lines accumulate",
			lines: []*LineItem{
				{Description: "Gravel", Quantity: 10, UnitPrice: 100},
				{Description: "Sand", Quantity: 5, UnitPrice: 200},
			},
			wantSub: 2000,
		},
		{
			name: "custom lines count the same as catalog lines",
			lines: []*LineItem{
				{Description: "Cement", Quantity: 2, UnitPrice: 750},
			},
			custom: []*LineItem{
				{Description: "Crane hire", Quantity: 1, UnitPrice: 500, Custom: true},
			},
			wantSub: 2000,
		},
		{
			name: "zero quantity contributes nothing",
			lines: []*LineItem{
				{Description: "Ballast", Quantity: 0, UnitPrice: 999},
			},
			wantSub: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.lines, tt.custom)
			if !almostEqual(got.SubTotal, tt.wantSub) {
				t.Errorf("SubTotal = %v, want %v", got.SubTotal, tt.wantSub)
			}
			if !almostEqual(got.VAT, tt.wantSub*VATRate) {
				t.Errorf("VAT = %v, want %v", got.VAT, tt.wantSub*VATRate)
			}
			if !almostEqual(got.TotalAmount, got.SubTotal+got.VAT) {
				t.Errorf("TotalAmount = %v, want SubTotal+VAT = %v", got.TotalAmount, got.SubTotal+got.VAT)
			}
		})
	}
}

func TestCalculateTotalsRestoresLineAmounts(t *testing.T) {
	line := &LineItem{Description: "Gravel", Quantity: 10, UnitPrice: 100, Amount: 123.45}
	CalculateTotals([]*LineItem{line})
	if !almostEqual(line.Amount, 1000) {
		t.Errorf("line amount = %v, want 1000 after recalculation", line.Amount)
	}
}
