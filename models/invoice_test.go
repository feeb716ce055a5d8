package models

import (
	"errors"
	"testing"
	"time"
)

var (
	statusNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	futureDue = statusNow.AddDate(0, 0, 14)
	pastDue   = statusNow.AddDate(0, 0, -1)
)

func TestRecomputeStatus(t *testing.T) {
	tests := []struct {
		name        string
		total       float64
		paid        float64
		dueDate     time.Time
		wantStatus  InvoiceStatus
		wantBalance float64
	}{
		{
			name:        "nothing paid",
			total:       1160,
			paid:        0,
			dueDate:     futureDue,
			wantStatus:  InvoiceUnpaid,
			wantBalance: 1160,
		},
		{
			name:        "partially paid",
			total:       1160,
			paid:        400,
			dueDate:     futureDue,
			wantStatus:  InvoicePartiallyPaid,
			wantBalance: 760,
		},
		{
			name:        "fully paid",
			total:       1160,
			paid:        1160,
			dueDate:     futureDue,
			wantStatus:  InvoicePaid,
			wantBalance: 0,
		},
		{
			name:        "unpaid past due reads overdue",
			total:       1160,
			paid:        0,
			dueDate:     pastDue,
			wantStatus:  InvoiceOverdue,
			wantBalance: 1160,
		},
		{
			name:        "partially paid past due reads overdue",
			total:       1160,
			paid:        400,
			dueDate:     pastDue,
			wantStatus:  InvoiceOverdue,
			wantBalance: 760,
		},
		{
			name:        "fully paid past due stays paid",
			total:       1160,
			paid:        1160,
			dueDate:     pastDue,
			wantStatus:  InvoicePaid,
			wantBalance: 0,
		},
		{
			name:        "zero-value invoice with nothing paid is unpaid",
			total:       0,
			paid:        0,
			dueDate:     futureDue,
			wantStatus:  InvoiceUnpaid,
			wantBalance: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invoice{TotalAmount: tt.total, AmountPaid: tt.paid, DueDate: tt.dueDate}
			inv.RecomputeStatus(statusNow)
			if inv.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", inv.Status, tt.wantStatus)
			}
			if !almostEqual(inv.Balance, tt.wantBalance) {
				t.Errorf("Balance = %v, want %v", inv.Balance, tt.wantBalance)
			}
		})
	}
}

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		wantErr    error
		wantPaid   float64
		wantStatus InvoiceStatus
	}{
		{
			name:       "partial payment",
			amount:     400,
			wantPaid:   400,
			wantStatus: InvoicePartiallyPaid,
		},
		{
			name:       "exact balance settles the invoice",
			amount:     1160,
			wantPaid:   1160,
			wantStatus: InvoicePaid,
		},
		{
			name:    "zero amount rejected",
			amount:  0,
			wantErr: ErrPaymentNotPositive,
		},
		{
			name:    "negative amount rejected",
			amount:  -50,
			wantErr: ErrPaymentNotPositive,
		},
		{
			name:    "overpayment rejected, not clamped",
			amount:  1160.01,
			wantErr: ErrPaymentExceedsBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invoice{TotalAmount: 1160, DueDate: futureDue}
			inv.RecomputeStatus(statusNow)

			err := inv.ApplyPayment(tt.amount, statusNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ApplyPayment() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if inv.AmountPaid != 0 || inv.Status != InvoiceUnpaid {
					t.Errorf("rejected payment mutated invoice: paid=%v status=%s", inv.AmountPaid, inv.Status)
				}
				return
			}
			if !almostEqual(inv.AmountPaid, tt.wantPaid) {
				t.Errorf("AmountPaid = %v, want %v", inv.AmountPaid, tt.wantPaid)
			}
			if inv.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", inv.Status, tt.wantStatus)
			}
		})
	}
}

func TestApplyThenReversePaymentRoundTrip(t *testing.T) {
	inv := Invoice{TotalAmount: 1160, DueDate: futureDue}
	inv.RecomputeStatus(statusNow)

	if err := inv.ApplyPayment(400, statusNow); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	inv.ReversePayment(400, statusNow)

	if !almostEqual(inv.AmountPaid, 0) {
		t.Errorf("AmountPaid = %v, want 0 after reversal", inv.AmountPaid)
	}
	if !almostEqual(inv.Balance, 1160) {
		t.Errorf("Balance = %v, want 1160 after reversal", inv.Balance)
	}
	if inv.Status != InvoiceUnpaid {
		t.Errorf("Status = %s, want %s after reversal", inv.Status, InvoiceUnpaid)
	}
}

func TestAdjustPayment(t *testing.T) {
	tests := []struct {
		name     string
		diff     float64
		wantErr  error
		wantPaid float64
	}{
		{
			name:     "increase within balance",
			diff:     200,
			wantPaid: 600,
		},
		{
			name:     "decrease always allowed",
			diff:     -400,
			wantPaid: 0,
		},
		{
			name:    "increase beyond balance rejected",
			diff:    760.01,
			wantErr: ErrPaymentExceedsBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invoice{TotalAmount: 1160, AmountPaid: 400, DueDate: futureDue}
			inv.RecomputeStatus(statusNow)

			err := inv.AdjustPayment(tt.diff, statusNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AdjustPayment() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !almostEqual(inv.AmountPaid, tt.wantPaid) {
				t.Errorf("AmountPaid = %v, want %v", inv.AmountPaid, tt.wantPaid)
			}
		})
	}
}
