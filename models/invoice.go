package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "unpaid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
)

var (
	ErrPaymentNotPositive    = errors.New("payment amount must be greater than zero")
	ErrPaymentExceedsBalance = errors.New("payment amount exceeds invoice balance")
)

// Invoice is a bill raised against an LPO. Totals are copied from the LPO at
// creation and never recomputed from items afterwards; only amountPaid,
// balance and status move, and status is always derived, never caller-set.
// Version backs the optimistic check serializing payment mutations.
type Invoice struct {
	Id            string        `json:"id" gorm:"primaryKey"`
	InvoiceNumber string        `json:"invoice_number" gorm:"uniqueIndex;not null"`
	LPOId         string        `json:"lpo_id" gorm:"not null;index"`
	LPO           *LPO          `json:"lpo,omitempty" gorm:"foreignKey:LPOId;references:Id"`
	QuotationId   *string       `json:"quotation_id"`
	Quotation     *Quotation    `json:"quotation,omitempty" gorm:"foreignKey:QuotationId;references:Id"`
	ClientId      *string       `json:"client_id" gorm:"index"`
	Client        *Client       `json:"-" gorm:"foreignKey:ClientId;references:Id"`
	ClientName    string        `json:"client_name" gorm:"not null"`
	ClientAddress string        `json:"client_address"`
	Items         []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceId;constraint:OnDelete:CASCADE"`
	SubTotal      float64       `json:"sub_total" gorm:"type:numeric(12,2)"`
	VAT           float64       `json:"vat" gorm:"column:vat;type:numeric(12,2)"`
	TotalAmount   float64       `json:"total_amount" gorm:"type:numeric(12,2)"`
	AmountPaid    float64       `json:"amount_paid" gorm:"type:numeric(12,2);default:0"`
	Balance       float64       `json:"balance" gorm:"type:numeric(12,2)"`
	Status        InvoiceStatus `json:"status" gorm:"type:varchar(16);default:unpaid"`
	DueDate       time.Time     `json:"due_date"`
	Version       uint          `json:"-" gorm:"default:0"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type InvoiceItem struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	InvoiceId string `json:"-" gorm:"index;not null"`
	LineItem  `gorm:"embedded"`
}

func (inv *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	inv.Id = uuid.NewString()
	return
}

// RecomputeStatus derives balance and status from amountPaid, totalAmount and
// dueDate. It is a pure function of its inputs and must run on every invoice
// save and after every payment mutation.
func (inv *Invoice) RecomputeStatus(now time.Time) {
	inv.Balance = inv.TotalAmount - inv.AmountPaid
	switch {
	case inv.AmountPaid == 0:
		inv.Status = InvoiceUnpaid
	case inv.AmountPaid < inv.TotalAmount:
		inv.Status = InvoicePartiallyPaid
	default:
		inv.Status = InvoicePaid
	}
	if inv.DueDate.Before(now) && inv.Status != InvoicePaid {
		inv.Status = InvoiceOverdue
	}
}

// ApplyPayment records amount against the balance. Exceeding the balance is
// rejected, not clamped.
func (inv *Invoice) ApplyPayment(amount float64, now time.Time) error {
	if amount <= 0 {
		return ErrPaymentNotPositive
	}
	if amount > inv.Balance {
		return ErrPaymentExceedsBalance
	}
	inv.AmountPaid += amount
	inv.RecomputeStatus(now)
	return nil
}

// AdjustPayment applies the difference of an amended payment. The check is
// incremental: only an increase is validated, against the current balance.
func (inv *Invoice) AdjustPayment(diff float64, now time.Time) error {
	if diff > inv.Balance {
		return ErrPaymentExceedsBalance
	}
	inv.AmountPaid += diff
	inv.RecomputeStatus(now)
	return nil
}

// ReversePayment backs out a deleted payment.
func (inv *Invoice) ReversePayment(amount float64, now time.Time) {
	inv.AmountPaid -= amount
	inv.RecomputeStatus(now)
}
