package middlewares

import (
	"testing"

	"buildflow-backend/models"
)

func TestIdempotencyOutcome(t *testing.T) {
	hash := requestHash("POST", "/api/invoice/inv-1/payments", []byte(`{"amount":400}`))

	tests := []struct {
		name string
		rec  models.IdempotencyKey
		want idempotencyOutcome
	}{
		{
			name: "pending record lets the handler run",
			rec:  models.IdempotencyKey{RequestHash: hash},
			want: idemRun,
		},
		{
			name: "completed record replays, handler must not run again",
			rec: models.IdempotencyKey{
				RequestHash:    hash,
				ResponseStatus: 201,
				ResponseBody:   []byte(`{"id":"pay-1"}`),
			},
			want: idemReplay,
		},
		{
			name: "completed status without a body still runs",
			rec:  models.IdempotencyKey{RequestHash: hash, ResponseStatus: 201},
			want: idemRun,
		},
		{
			name: "key reuse with a different request conflicts",
			rec: models.IdempotencyKey{
				RequestHash:    requestHash("POST", "/api/invoice/inv-1/payments", []byte(`{"amount":999}`)),
				ResponseStatus: 201,
				ResponseBody:   []byte(`{"id":"pay-1"}`),
			},
			want: idemConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outcomeFor(tt.rec, hash); got != tt.want {
				t.Errorf("outcomeFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestHash(t *testing.T) {
	a := requestHash("POST", "/api/lpo", []byte(`{"lpo_number":"LPO-1"}`))
	if b := requestHash("POST", "/api/lpo", []byte(`{"lpo_number":"LPO-1"}`)); b != a {
		t.Errorf("hash not deterministic: %s vs %s", a, b)
	}
	if b := requestHash("PUT", "/api/lpo", []byte(`{"lpo_number":"LPO-1"}`)); b == a {
		t.Error("method change did not change the hash")
	}
	if b := requestHash("POST", "/api/lpo", []byte(`{"lpo_number":"LPO-2"}`)); b == a {
		t.Error("body change did not change the hash")
	}
}
