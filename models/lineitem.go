package models

// LineItem is the priced line shared by quotations, LPOs and invoices.
// Amount is derived and must equal Quantity * UnitPrice whenever the
// containing document is persisted.
type LineItem struct {
	Description string  `json:"description" gorm:"not null"`
	Units       string  `json:"units"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	Amount      float64 `json:"amount" gorm:"type:numeric(12,2)"`
	ItemId      *string `json:"item_id"` // catalog back-reference, nil for free-form lines
	Custom      bool    `json:"custom"`
}

// Recalculate restores the amount invariant on this line. Negative inputs
// never reach here; the request DTOs gate quantity and unitPrice with
// gte=0 validator tags.
func (li *LineItem) Recalculate() {
	li.Amount = li.Quantity * li.UnitPrice
}
