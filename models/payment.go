package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCheque       PaymentMethod = "cheque"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentMpesa        PaymentMethod = "mpesa"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCheque, PaymentBankTransfer, PaymentMpesa:
		return true
	}
	return false
}

// Payment is a settlement recorded against an invoice. Creating, amending or
// deleting one mutates the linked invoice's amountPaid/balance/status.
type Payment struct {
	Id            string        `json:"id" gorm:"primaryKey"`
	ReceiptNumber string        `json:"receipt_number" gorm:"uniqueIndex;not null"`
	InvoiceId     string        `json:"invoice_id" gorm:"not null;index:idx_payments_invoice_date,priority:1"`
	Invoice       *Invoice      `json:"-" gorm:"foreignKey:InvoiceId;references:Id"`
	Amount        float64       `json:"amount" gorm:"type:numeric(12,2)"`
	Method        PaymentMethod `json:"method" gorm:"type:varchar(16)"`
	Date          time.Time     `json:"date" gorm:"index:idx_payments_invoice_date,priority:2"`
	Reference     string        `json:"reference"`
	Notes         string        `json:"notes"`
	ReceivedBy    string        `json:"received_by"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	p.Id = uuid.NewString()
	return
}
