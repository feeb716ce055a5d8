package models

import (
	"errors"
	"testing"
	"time"
)

func TestQuotationApprove(t *testing.T) {
	tests := []struct {
		name    string
		status  QuotationStatus
		wantErr error
	}{
		{name: "pending approves", status: QuotationPending},
		{name: "approved does not re-approve", status: QuotationApproved, wantErr: ErrQuotationNotPending},
		{name: "rejected does not approve", status: QuotationRejected, wantErr: ErrQuotationNotPending},
		{name: "converted does not approve", status: QuotationConverted, wantErr: ErrQuotationNotPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quotation{Status: tt.status}
			err := q.Approve()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Approve() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && q.Status != QuotationApproved {
				t.Errorf("Status = %s, want %s", q.Status, QuotationApproved)
			}
		})
	}
}

func TestQuotationReject(t *testing.T) {
	tests := []struct {
		name    string
		status  QuotationStatus
		reason  string
		wantErr error
	}{
		{name: "pending rejects with reason", status: QuotationPending, reason: "price too high"},
		{name: "reason is required", status: QuotationPending, reason: "", wantErr: ErrRejectReasonRequired},
		{name: "approved does not reject", status: QuotationApproved, reason: "x", wantErr: ErrQuotationNotPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quotation{Status: tt.status}
			err := q.Reject(tt.reason)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Reject() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if q.Status != QuotationRejected {
				t.Errorf("Status = %s, want %s", q.Status, QuotationRejected)
			}
			if q.Notes != tt.reason {
				t.Errorf("Notes = %q, want %q", q.Notes, tt.reason)
			}
		})
	}
}

func TestQuotationMarkConverted(t *testing.T) {
	tests := []struct {
		name    string
		status  QuotationStatus
		wantErr error
	}{
		{name: "pending converts", status: QuotationPending},
		{name: "approved converts", status: QuotationApproved},
		{name: "rejected does not convert", status: QuotationRejected, wantErr: ErrQuotationNotConvertible},
		{name: "converted does not re-convert", status: QuotationConverted, wantErr: ErrQuotationNotConvertible},
		{name: "expired does not convert", status: QuotationExpired, wantErr: ErrQuotationNotConvertible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quotation{Status: tt.status}
			err := q.MarkConverted()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("MarkConverted() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && q.Status != QuotationConverted {
				t.Errorf("Status = %s, want %s", q.Status, QuotationConverted)
			}
		})
	}
}

func TestQuotationEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 30)

	tests := []struct {
		name       string
		status     QuotationStatus
		validUntil time.Time
		want       QuotationStatus
	}{
		{name: "pending within window stays pending", status: QuotationPending, validUntil: future, want: QuotationPending},
		{name: "pending past window reads expired", status: QuotationPending, validUntil: past, want: QuotationExpired},
		{name: "approved never reads expired", status: QuotationApproved, validUntil: past, want: QuotationApproved},
		{name: "converted never reads expired", status: QuotationConverted, validUntil: past, want: QuotationConverted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quotation{Status: tt.status, ValidUntil: tt.validUntil}
			if got := q.EffectiveStatus(now); got != tt.want {
				t.Errorf("EffectiveStatus() = %s, want %s", got, tt.want)
			}
			// Reads never mutate the stored status.
			if q.Status != tt.status {
				t.Errorf("stored status changed to %s", q.Status)
			}
		})
	}
}
