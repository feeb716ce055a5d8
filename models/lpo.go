package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LPOStatus string

const (
	LPOReceived   LPOStatus = "received"
	LPOProcessing LPOStatus = "processing"
	LPOFulfilled  LPOStatus = "fulfilled"
	LPOCancelled  LPOStatus = "cancelled"
)

var ErrInvalidLPOStatus = errors.New("invalid LPO status")

func ValidLPOStatus(s LPOStatus) bool {
	switch s {
	case LPOReceived, LPOProcessing, LPOFulfilled, LPOCancelled:
		return true
	}
	return false
}

// LPO is the client's purchase order. The lpoNumber comes from the client's
// paperwork, so it is caller-supplied and checked for uniqueness before any
// write. Totals are recomputed from the items on every save.
type LPO struct {
	Id              string     `json:"id" gorm:"primaryKey"`
	LPONumber       string     `json:"lpo_number" gorm:"uniqueIndex;not null"`
	QuotationId     *string    `json:"quotation_id"`
	Quotation       *Quotation `json:"quotation,omitempty" gorm:"foreignKey:QuotationId;references:Id"`
	ClientId        *string    `json:"client_id"`
	Client          *Client    `json:"-" gorm:"foreignKey:ClientId;references:Id"`
	ClientName      string     `json:"client_name" gorm:"not null"`
	ClientAddress   string     `json:"client_address"`
	DeliveryAddress string     `json:"delivery_address"`
	Items           []LPOItem  `json:"items" gorm:"foreignKey:LPOId;constraint:OnDelete:CASCADE"`
	SubTotal        float64    `json:"sub_total" gorm:"type:numeric(12,2)"`
	VAT             float64    `json:"vat" gorm:"column:vat;type:numeric(12,2)"`
	TotalAmount     float64    `json:"total_amount" gorm:"type:numeric(12,2)"`
	Status          LPOStatus  `json:"status" gorm:"type:varchar(16);default:received"`
	IssuedDate      time.Time  `json:"issued_date"`
	DeliveryDate    *time.Time `json:"delivery_date"`
	AttachmentPath  string     `json:"attachment_path"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type LPOItem struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	LPOId    string `json:"-" gorm:"index;not null"`
	LineItem `gorm:"embedded"`
}

func (lpo *LPO) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	lpo.Id = uuid.NewString()
	return
}

func (lpo *LPO) Lines() []*LineItem {
	out := make([]*LineItem, 0, len(lpo.Items))
	for i := range lpo.Items {
		out = append(out, &lpo.Items[i].LineItem)
	}
	return out
}

func (lpo *LPO) Recalculate() {
	t := CalculateTotals(lpo.Lines())
	lpo.SubTotal = t.SubTotal
	lpo.VAT = t.VAT
	lpo.TotalAmount = t.TotalAmount
}

// BeginProcessing is the automatic transition taken when the first delivery
// note is raised against this LPO. It only moves received/processing orders;
// fulfilled or cancelled orders are left alone.
func (lpo *LPO) BeginProcessing() {
	if lpo.Status == LPOReceived || lpo.Status == LPOProcessing {
		lpo.Status = LPOProcessing
	}
}

// Fulfill is the automatic transition taken when a delivery against this LPO
// is marked delivered.
func (lpo *LPO) Fulfill(deliveredAt time.Time) {
	lpo.Status = LPOFulfilled
	lpo.DeliveryDate = &deliveredAt
}

// SetStatus is the administrative override. It validates enum membership only
// and deliberately skips transition validation.
func (lpo *LPO) SetStatus(s LPOStatus) error {
	if !ValidLPOStatus(s) {
		return ErrInvalidLPOStatus
	}
	lpo.Status = s
	return nil
}
