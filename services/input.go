package services

import (
	"time"

	"buildflow-backend/models"
)

// LineItemInput is the priced line payload shared by quotation and LPO
// requests.
type LineItemInput struct {
	Description string  `json:"description" validate:"required"`
	Units       string  `json:"units"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	ItemId      *string `json:"item_id"`
}

func (in LineItemInput) line(custom bool) models.LineItem {
	li := models.LineItem{
		Description: in.Description,
		Units:       in.Units,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		ItemId:      in.ItemId,
		Custom:      custom,
	}
	li.Recalculate()
	return li
}

// DeliveryItemInput is the unpriced line payload of a delivery note.
type DeliveryItemInput struct {
	Description string  `json:"description" validate:"required"`
	Units       string  `json:"units"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	Remarks     string  `json:"remarks"`
}

func defaultValidUntil(now time.Time) time.Time { return now.AddDate(0, 0, 30) }

func defaultDueDate(now time.Time) time.Time { return now.AddDate(0, 0, 30) }
