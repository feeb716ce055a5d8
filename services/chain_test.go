package services

import (
	"math"
	"testing"
	"time"

	"buildflow-backend/models"
)

var chainNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func gravelQuotation() *models.Quotation {
	clientId := "client-1"
	q := &models.Quotation{
		Id:            "quotation-1",
		ClientId:      &clientId,
		ClientName:    "Acme Construction",
		ClientAddress: "Industrial Area, Nairobi",
		Status:        models.QuotationPending,
		ValidUntil:    chainNow.AddDate(0, 0, 30),
		Items: []models.QuotationItem{
			{ID: 7, LineItem: models.LineItem{Description: "Gravel", Units: "tonnes", Quantity: 10, UnitPrice: 100}},
		},
	}
	q.Recalculate()
	return q
}

func TestQuotationItemsMergesCustomLines(t *testing.T) {
	items := []LineItemInput{{Description: "Gravel", Quantity: 10, UnitPrice: 100}}
	custom := []LineItemInput{{Description: "Crane hire", Quantity: 1, UnitPrice: 500}}

	got := quotationItems(items, custom)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Custom || !got[1].Custom {
		t.Errorf("custom flags = %v/%v, want false/true", got[0].Custom, got[1].Custom)
	}
	if !almostEqual(got[0].Amount, 1000) || !almostEqual(got[1].Amount, 500) {
		t.Errorf("amounts = %v/%v, want 1000/500", got[0].Amount, got[1].Amount)
	}
}

func TestBuildLPOFromQuotation(t *testing.T) {
	q := gravelQuotation()
	lpo := buildLPOFromQuotation(q, ConvertQuotationRequest{
		LPONumber:       "LPO-2026-001",
		DeliveryAddress: "Site B, Thika Road",
	}, chainNow)

	if lpo.LPONumber != "LPO-2026-001" {
		t.Errorf("LPONumber = %q", lpo.LPONumber)
	}
	if lpo.QuotationId == nil || *lpo.QuotationId != q.Id {
		t.Errorf("QuotationId = %v, want %q", lpo.QuotationId, q.Id)
	}
	if lpo.ClientId == nil || *lpo.ClientId != *q.ClientId {
		t.Errorf("ClientId = %v, want %v", lpo.ClientId, *q.ClientId)
	}
	if lpo.ClientName != q.ClientName || lpo.ClientAddress != q.ClientAddress {
		t.Errorf("client snapshot = %q/%q", lpo.ClientName, lpo.ClientAddress)
	}
	if lpo.Status != models.LPOReceived {
		t.Errorf("Status = %s, want %s", lpo.Status, models.LPOReceived)
	}
	if !lpo.IssuedDate.Equal(chainNow) {
		t.Errorf("IssuedDate = %v, want %v", lpo.IssuedDate, chainNow)
	}
	if len(lpo.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(lpo.Items))
	}
	if lpo.Items[0].ID != 0 {
		t.Errorf("copied line kept source primary key %d", lpo.Items[0].ID)
	}

	// Gravel, qty 10 at 100: subtotal 1000, VAT 160, total 1160.
	if !almostEqual(lpo.SubTotal, 1000) {
		t.Errorf("SubTotal = %v, want 1000", lpo.SubTotal)
	}
	if !almostEqual(lpo.VAT, 160) {
		t.Errorf("VAT = %v, want 160", lpo.VAT)
	}
	if !almostEqual(lpo.TotalAmount, 1160) {
		t.Errorf("TotalAmount = %v, want 1160", lpo.TotalAmount)
	}
}

func TestBuildDeliveryFromLPO(t *testing.T) {
	q := gravelQuotation()
	lpo := buildLPOFromQuotation(q, ConvertQuotationRequest{LPONumber: "LPO-2026-001"}, chainNow)
	lpo.Id = "lpo-1"

	t.Run("lines copied unpriced, address falls back to client", func(t *testing.T) {
		dn := buildDeliveryFromLPO(lpo, CreateDeliveryRequest{Vehicle: "KBX 123A", Driver: "Otieno"})
		if dn.LPOId != lpo.Id {
			t.Errorf("LPOId = %q", dn.LPOId)
		}
		if dn.Status != models.DeliveryPending {
			t.Errorf("Status = %s, want %s", dn.Status, models.DeliveryPending)
		}
		if dn.DeliveryAddress != lpo.ClientAddress {
			t.Errorf("DeliveryAddress = %q, want fallback %q", dn.DeliveryAddress, lpo.ClientAddress)
		}
		if len(dn.Items) != 1 {
			t.Fatalf("items = %d, want 1", len(dn.Items))
		}
		it := dn.Items[0]
		if it.Description != "Gravel" || it.Units != "tonnes" || !almostEqual(it.Quantity, 10) {
			t.Errorf("line = %+v", it)
		}
	})

	t.Run("explicit items override the LPO lines", func(t *testing.T) {
		dn := buildDeliveryFromLPO(lpo, CreateDeliveryRequest{
			DeliveryAddress: "Gate 4",
			Items:           []DeliveryItemInput{{Description: "Gravel (first load)", Quantity: 4, Remarks: "balance to follow"}},
		})
		if dn.DeliveryAddress != "Gate 4" {
			t.Errorf("DeliveryAddress = %q", dn.DeliveryAddress)
		}
		if len(dn.Items) != 1 || dn.Items[0].Description != "Gravel (first load)" {
			t.Errorf("items = %+v", dn.Items)
		}
	})
}

func TestBuildInvoiceFromLPO(t *testing.T) {
	q := gravelQuotation()
	lpo := buildLPOFromQuotation(q, ConvertQuotationRequest{LPONumber: "LPO-2026-001"}, chainNow)
	lpo.Id = "lpo-1"

	due := chainNow.AddDate(0, 0, 30)
	inv := buildInvoiceFromLPO(lpo, due, chainNow)

	if inv.LPOId != lpo.Id {
		t.Errorf("LPOId = %q", inv.LPOId)
	}
	if inv.QuotationId == nil || *inv.QuotationId != q.Id {
		t.Errorf("QuotationId = %v, want %q", inv.QuotationId, q.Id)
	}
	// Totals are copied from the LPO, not recomputed.
	if !almostEqual(inv.SubTotal, lpo.SubTotal) || !almostEqual(inv.VAT, lpo.VAT) || !almostEqual(inv.TotalAmount, lpo.TotalAmount) {
		t.Errorf("totals = %v/%v/%v, want %v/%v/%v", inv.SubTotal, inv.VAT, inv.TotalAmount, lpo.SubTotal, lpo.VAT, lpo.TotalAmount)
	}
	if inv.Status != models.InvoiceUnpaid {
		t.Errorf("Status = %s, want %s", inv.Status, models.InvoiceUnpaid)
	}
	if !almostEqual(inv.Balance, 1160) {
		t.Errorf("Balance = %v, want 1160", inv.Balance)
	}
	if !inv.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", inv.DueDate, due)
	}
	if len(inv.Items) != 1 || inv.Items[0].Description != "Gravel" {
		t.Errorf("items = %+v", inv.Items)
	}
}

// Delivery milestones drive the LPO: raising a note starts processing, a
// confirmed receipt fulfills the order with the receiver's date.
func TestDeliveryLifecycleDrivesLPO(t *testing.T) {
	q := gravelQuotation()
	lpo := buildLPOFromQuotation(q, ConvertQuotationRequest{LPONumber: "LPO-2026-001"}, chainNow)
	lpo.Id = "lpo-1"

	dn := buildDeliveryFromLPO(lpo, CreateDeliveryRequest{})
	lpo.BeginProcessing()
	if lpo.Status != models.LPOProcessing {
		t.Fatalf("LPO status = %s, want %s", lpo.Status, models.LPOProcessing)
	}

	if err := dn.Dispatch(); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	receivedAt := chainNow.AddDate(0, 0, 2)
	if err := dn.MarkDelivered("Jane Doe", "Site Manager", receivedAt); err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}
	lpo.Fulfill(receivedAt)

	if dn.ReceivedBy != "Jane Doe" {
		t.Errorf("ReceivedBy = %q, want Jane Doe", dn.ReceivedBy)
	}
	if lpo.Status != models.LPOFulfilled {
		t.Errorf("LPO status = %s, want %s", lpo.Status, models.LPOFulfilled)
	}
	if lpo.DeliveryDate == nil || !lpo.DeliveryDate.Equal(receivedAt) {
		t.Errorf("LPO deliveryDate = %v, want %v", lpo.DeliveryDate, receivedAt)
	}
}
