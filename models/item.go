package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemCategory string

const (
	CategoryTransport   ItemCategory = "transport"
	CategoryEquipment   ItemCategory = "equipment"
	CategoryLabour      ItemCategory = "labour"
	CategoryAuxiliaries ItemCategory = "auxiliaries"
)

func ValidItemCategory(c ItemCategory) bool {
	switch c {
	case CategoryTransport, CategoryEquipment, CategoryLabour, CategoryAuxiliaries:
		return true
	}
	return false
}

// Item is a catalog record. Once a document line references it the line keeps
// its own copy of description/units/price; a later price change here does not
// cascade.
type Item struct {
	Id          string       `json:"id" gorm:"primaryKey"`
	Description string       `json:"description" gorm:"not null"`
	Category    ItemCategory `json:"category" gorm:"type:varchar(16);not null"`
	Units       string       `json:"units"`
	UnitPrice   float64      `json:"unit_price" gorm:"type:numeric(12,2)"`
	IsParent    bool         `json:"is_parent"`
	ParentNo    string       `json:"parent_no"`
	Active      bool         `json:"-" gorm:"default:true"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (item *Item) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	item.Id = uuid.NewString()
	return
}
