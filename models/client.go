package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

type Client struct {
	Id            string       `json:"id" gorm:"primaryKey"`
	ClientNumber  string       `json:"client_number" gorm:"uniqueIndex;not null"`
	Name          string       `json:"name" gorm:"not null"`
	Address       string       `json:"address"`
	ContactPerson string       `json:"contact_person"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	Status        ClientStatus `json:"status" gorm:"type:varchar(16);default:active"`

	// Payment terms
	DueDateDays          int     `json:"due_date_days" gorm:"default:30"`
	EarlyDiscountDays    int     `json:"early_discount_days"`
	EarlyDiscountPercent float64 `json:"early_discount_percent"`

	// Tax info
	VATPin    string `json:"vat_pin" gorm:"column:vat_pin"`
	TaxExempt bool   `json:"tax_exempt"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (client *Client) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	client.Id = uuid.NewString()
	return
}
