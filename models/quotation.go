package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuotationStatus string

const (
	QuotationPending   QuotationStatus = "pending"
	QuotationApproved  QuotationStatus = "approved"
	QuotationRejected  QuotationStatus = "rejected"
	QuotationExpired   QuotationStatus = "expired"
	QuotationConverted QuotationStatus = "converted"
)

var (
	ErrQuotationNotPending     = errors.New("quotation is not pending")
	ErrRejectReasonRequired    = errors.New("rejection requires a reason")
	ErrQuotationNotConvertible = errors.New("quotation cannot be converted from its current status")
)

// Quotation is a priced proposal awaiting client approval. Totals are derived
// from the item lines; custom lines live in the same table flagged Custom and
// always count towards the subtotal.
type Quotation struct {
	Id              string          `json:"id" gorm:"primaryKey"`
	QuotationNumber string          `json:"quotation_number" gorm:"uniqueIndex;not null"`
	ClientId        *string         `json:"client_id"`
	Client          *Client         `json:"client,omitempty" gorm:"foreignKey:ClientId;references:Id"`
	ClientName      string          `json:"client_name" gorm:"not null"`
	ClientAddress   string          `json:"client_address"`
	Items           []QuotationItem `json:"items" gorm:"foreignKey:QuotationId;constraint:OnDelete:CASCADE"`
	SubTotal        float64         `json:"sub_total" gorm:"type:numeric(12,2)"`
	VAT             float64         `json:"vat" gorm:"column:vat;type:numeric(12,2)"`
	TotalAmount     float64         `json:"total_amount" gorm:"type:numeric(12,2)"`
	Status          QuotationStatus `json:"status" gorm:"type:varchar(16);default:pending"`
	ValidUntil      time.Time       `json:"valid_until"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type QuotationItem struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	QuotationId string `json:"-" gorm:"index;not null"`
	LineItem    `gorm:"embedded"`
}

func (q *Quotation) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	q.Id = uuid.NewString()
	return
}

// Lines exposes the item collection to the shared totals calculator.
func (q *Quotation) Lines() []*LineItem {
	out := make([]*LineItem, 0, len(q.Items))
	for i := range q.Items {
		out = append(out, &q.Items[i].LineItem)
	}
	return out
}

// Recalculate rebuilds every line amount and the document totals.
func (q *Quotation) Recalculate() {
	t := CalculateTotals(q.Lines())
	q.SubTotal = t.SubTotal
	q.VAT = t.VAT
	q.TotalAmount = t.TotalAmount
}

// Approve moves a pending quotation to approved.
func (q *Quotation) Approve() error {
	if q.Status != QuotationPending {
		return ErrQuotationNotPending
	}
	q.Status = QuotationApproved
	return nil
}

// Reject moves a pending quotation to rejected, storing the reason in Notes.
func (q *Quotation) Reject(reason string) error {
	if q.Status != QuotationPending {
		return ErrQuotationNotPending
	}
	if reason == "" {
		return ErrRejectReasonRequired
	}
	q.Status = QuotationRejected
	q.Notes = reason
	return nil
}

// MarkConverted records that an LPO was raised against this quotation.
// Only a pending or approved quotation may convert.
func (q *Quotation) MarkConverted() error {
	if q.Status != QuotationPending && q.Status != QuotationApproved {
		return ErrQuotationNotConvertible
	}
	q.Status = QuotationConverted
	return nil
}

// IsExpired reports whether the validity window has passed. Expiry is
// computed on demand; the stored status is left untouched.
func (q *Quotation) IsExpired(now time.Time) bool {
	return q.ValidUntil.Before(now)
}

// EffectiveStatus is the status as seen by readers: a stored pending
// quotation past its validUntil reports itself expired.
func (q *Quotation) EffectiveStatus(now time.Time) QuotationStatus {
	if q.Status == QuotationPending && q.IsExpired(now) {
		return QuotationExpired
	}
	return q.Status
}
