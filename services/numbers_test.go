package services

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFormatDocumentNumber(t *testing.T) {
	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	november := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		prefix string
		at     time.Time
		seq    int
		want   string
	}{
		{name: "quotation", prefix: PrefixQuotation, at: march, seq: 7, want: "Q2603007"},
		{name: "delivery", prefix: PrefixDelivery, at: march, seq: 42, want: "DN2603042"},
		{name: "invoice", prefix: PrefixInvoice, at: november, seq: 999, want: "INV2511999"},
		{name: "receipt zero-pads", prefix: PrefixReceipt, at: november, seq: 0, want: "RCT2511000"},
		{name: "client", prefix: PrefixClient, at: march, seq: 123, want: "C2603123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDocumentNumber(tt.prefix, tt.at, tt.seq); got != tt.want {
				t.Errorf("FormatDocumentNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAllocateNumber(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("first free candidate wins", func(t *testing.T) {
		got, err := allocateNumber(PrefixInvoice, now, func(string) (bool, error) {
			return false, nil
		})
		if err != nil {
			t.Fatalf("allocateNumber: %v", err)
		}
		if !strings.HasPrefix(got, "INV2603") || len(got) != len("INV2603000") {
			t.Errorf("candidate = %q, want INV2603NNN", got)
		}
	})

	t.Run("exhaustion surfaces as a retryable conflict", func(t *testing.T) {
		calls := 0
		_, err := allocateNumber(PrefixReceipt, now, func(string) (bool, error) {
			calls++
			return true, nil
		})
		if KindOf(err) != KindConflict {
			t.Errorf("kind = %v, want KindConflict (err %v)", KindOf(err), err)
		}
		if calls != maxNumberAttempts {
			t.Errorf("attempts = %d, want %d", calls, maxNumberAttempts)
		}
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		boom := errors.New("connection reset")
		_, err := allocateNumber(PrefixQuotation, now, func(string) (bool, error) {
			return false, boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want %v", err, boom)
		}
	})
}
