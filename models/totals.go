package models

// VATRate is the flat value-added tax applied on every document subtotal.
const VATRate = 0.16

// Totals is the derived money rollup of a priced document.
type Totals struct {
	SubTotal    float64 `json:"sub_total"`
	VAT         float64 `json:"vat"`
	TotalAmount float64 `json:"total_amount"`
}

// CalculateTotals recalculates every line's amount and accumulates the
// subtotal, VAT and grand total. Pass all line collections of a document;
// custom lines count the same as catalog-sourced ones.
func CalculateTotals(lineSets ...[]*LineItem) Totals {
	var t Totals
	for _, lines := range lineSets {
		for _, ln := range lines {
			ln.Recalculate()
			t.SubTotal += ln.Amount
		}
	}
	t.VAT = t.SubTotal * VATRate
	t.TotalAmount = t.SubTotal + t.VAT
	return t
}
