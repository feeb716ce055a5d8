package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

var (
	ErrDeliveryNotPending    = errors.New("delivery note is not pending")
	ErrDeliveryNotInProgress = errors.New("delivery note is not pending or in transit")
	ErrReceivedByRequired    = errors.New("receivedBy is required to mark delivered")
)

// DeliveryNote records goods physically delivered against an LPO. Its lines
// carry no pricing.
type DeliveryNote struct {
	Id               string         `json:"id" gorm:"primaryKey"`
	DeliveryNumber   string         `json:"delivery_number" gorm:"uniqueIndex;not null"`
	LPOId            string         `json:"lpo_id" gorm:"not null;index"`
	LPO              *LPO           `json:"lpo,omitempty" gorm:"foreignKey:LPOId;references:Id"`
	ClientName       string         `json:"client_name" gorm:"not null"`
	ClientAddress    string         `json:"client_address"`
	DeliveryAddress  string         `json:"delivery_address"`
	Items            []DeliveryItem `json:"items" gorm:"foreignKey:DeliveryNoteId;constraint:OnDelete:CASCADE"`
	Vehicle          string         `json:"vehicle"`
	Driver           string         `json:"driver"`
	ReceivedBy       string         `json:"received_by"`
	ReceiverPosition string         `json:"receiver_position"`
	ReceivedDate     *time.Time     `json:"received_date"`
	Status           DeliveryStatus `json:"status" gorm:"type:varchar(16);default:pending"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type DeliveryItem struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	DeliveryNoteId string  `json:"-" gorm:"index;not null"`
	Description    string  `json:"description" gorm:"not null"`
	Units          string  `json:"units"`
	Quantity       float64 `json:"quantity"`
	Remarks        string  `json:"remarks"`
}

func (dn *DeliveryNote) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	dn.Id = uuid.NewString()
	return
}

// Dispatch moves a pending delivery onto the road.
func (dn *DeliveryNote) Dispatch() error {
	if dn.Status != DeliveryPending {
		return ErrDeliveryNotPending
	}
	dn.Status = DeliveryInTransit
	return nil
}

// MarkDelivered closes the delivery. The caller back-propagates fulfillment
// to the parent LPO in the same transaction.
func (dn *DeliveryNote) MarkDelivered(receivedBy, position string, at time.Time) error {
	if dn.Status != DeliveryPending && dn.Status != DeliveryInTransit {
		return ErrDeliveryNotInProgress
	}
	if receivedBy == "" {
		return ErrReceivedByRequired
	}
	dn.Status = DeliveryDelivered
	dn.ReceivedBy = receivedBy
	dn.ReceiverPosition = position
	dn.ReceivedDate = &at
	return nil
}

func (dn *DeliveryNote) Cancel() {
	dn.Status = DeliveryCancelled
}
