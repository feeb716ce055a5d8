package services

import (
	"errors"
	"time"

	"buildflow-backend/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type DeliveryService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewDeliveryService(db *gorm.DB) *DeliveryService {
	return &DeliveryService{db: db, log: log.With().Str("component", "deliveries").Logger()}
}

type CreateDeliveryRequest struct {
	Items           []DeliveryItemInput `json:"items" validate:"omitempty,dive"`
	DeliveryAddress string              `json:"delivery_address"`
	Vehicle         string              `json:"vehicle"`
	Driver          string              `json:"driver"`
}

type UpdateDeliveryRequest struct {
	DeliveryAddress *string             `json:"delivery_address"`
	Vehicle         *string             `json:"vehicle"`
	Driver          *string             `json:"driver"`
	Items           []DeliveryItemInput `json:"items" validate:"omitempty,dive"`
}

type MarkDeliveredRequest struct {
	ReceivedBy       string     `json:"received_by" validate:"required"`
	ReceiverPosition string     `json:"receiver_position"`
	ReceivedDate     *time.Time `json:"received_date"`
}

// buildDeliveryFromLPO derives a delivery note: the LPO's lines become
// unpriced delivery lines unless the caller supplies an explicit override,
// and the delivery address falls back to the client address.
func buildDeliveryFromLPO(lpo *models.LPO, req CreateDeliveryRequest) *models.DeliveryNote {
	address := req.DeliveryAddress
	if address == "" {
		address = lpo.DeliveryAddress
	}
	if address == "" {
		address = lpo.ClientAddress
	}
	dn := &models.DeliveryNote{
		LPOId:           lpo.Id,
		ClientName:      lpo.ClientName,
		ClientAddress:   lpo.ClientAddress,
		DeliveryAddress: address,
		Vehicle:         req.Vehicle,
		Driver:          req.Driver,
		Status:          models.DeliveryPending,
	}
	if len(req.Items) > 0 {
		for _, in := range req.Items {
			dn.Items = append(dn.Items, models.DeliveryItem{
				Description: in.Description,
				Units:       in.Units,
				Quantity:    in.Quantity,
				Remarks:     in.Remarks,
			})
		}
		return dn
	}
	for _, it := range lpo.Items {
		dn.Items = append(dn.Items, models.DeliveryItem{
			Description: it.Description,
			Units:       it.Units,
			Quantity:    it.Quantity,
		})
	}
	return dn
}

// CreateFromLPO derives a delivery note and nudges a received LPO into
// processing in the same transaction.
func (s *DeliveryService) CreateFromLPO(lpoId string, req CreateDeliveryRequest) (*models.DeliveryNote, error) {
	now := time.Now()
	var dn *models.DeliveryNote

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lpo models.LPO
		if err := tx.Preload("Items").First(&lpo, "id = ?", lpoId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("LPO %s not found", lpoId)
			}
			return err
		}

		number, err := nextNumber(tx, PrefixDelivery, &models.DeliveryNote{}, "delivery_number", now)
		if err != nil {
			return err
		}

		dn = buildDeliveryFromLPO(&lpo, req)
		dn.DeliveryNumber = number
		if err := tx.Create(dn).Error; err != nil {
			return err
		}

		lpo.BeginProcessing()
		if err := tx.Omit("Items").Save(&lpo).Error; err != nil {
			return err
		}
		ev := models.NewDocumentEvent("delivery_note", dn.Id, "derived_from_lpo", dn)
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("delivery", dn.DeliveryNumber).Str("lpo", lpoId).Msg("delivery note created")
	return dn, nil
}

func (s *DeliveryService) List() ([]models.DeliveryNote, error) {
	var notes []models.DeliveryNote
	err := s.db.Preload("Items").Order("created_at DESC").Find(&notes).Error
	return notes, err
}

func (s *DeliveryService) Get(id string) (*models.DeliveryNote, error) {
	var dn models.DeliveryNote
	if err := s.db.Preload("Items").Preload("LPO").First(&dn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("delivery note %s not found", id)
		}
		return nil, err
	}
	return &dn, nil
}

func (s *DeliveryService) Update(id string, req UpdateDeliveryRequest) (*models.DeliveryNote, error) {
	var dn models.DeliveryNote
	if err := s.db.Preload("Items").First(&dn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("delivery note %s not found", id)
		}
		return nil, err
	}

	if req.DeliveryAddress != nil {
		dn.DeliveryAddress = *req.DeliveryAddress
	}
	if req.Vehicle != nil {
		dn.Vehicle = *req.Vehicle
	}
	if req.Driver != nil {
		dn.Driver = *req.Driver
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.Items != nil {
			if err := tx.Where("delivery_note_id = ?", dn.Id).Delete(&models.DeliveryItem{}).Error; err != nil {
				return err
			}
			dn.Items = nil
			for _, in := range req.Items {
				dn.Items = append(dn.Items, models.DeliveryItem{
					DeliveryNoteId: dn.Id,
					Description:    in.Description,
					Units:          in.Units,
					Quantity:       in.Quantity,
					Remarks:        in.Remarks,
				})
			}
			return tx.Save(&dn).Error
		}
		return tx.Omit("Items").Save(&dn).Error
	})
	if err != nil {
		return nil, err
	}
	return &dn, nil
}

// Dispatch moves a pending delivery to in_transit.
func (s *DeliveryService) Dispatch(id string) (*models.DeliveryNote, error) {
	return s.transition(id, "dispatched", func(dn *models.DeliveryNote, _ *gorm.DB) error {
		return dn.Dispatch()
	})
}

// MarkDelivered closes the delivery and back-propagates to the parent LPO:
// status fulfilled, deliveryDate = the delivery's receivedDate.
func (s *DeliveryService) MarkDelivered(id string, req MarkDeliveredRequest) (*models.DeliveryNote, error) {
	receivedAt := time.Now()
	if req.ReceivedDate != nil {
		receivedAt = *req.ReceivedDate
	}
	return s.transition(id, "delivered", func(dn *models.DeliveryNote, tx *gorm.DB) error {
		if err := dn.MarkDelivered(req.ReceivedBy, req.ReceiverPosition, receivedAt); err != nil {
			return err
		}
		var lpo models.LPO
		if err := tx.First(&lpo, "id = ?", dn.LPOId).Error; err != nil {
			return err
		}
		lpo.Fulfill(receivedAt)
		return tx.Omit("Items").Save(&lpo).Error
	})
}

func (s *DeliveryService) Cancel(id string) (*models.DeliveryNote, error) {
	return s.transition(id, "cancelled", func(dn *models.DeliveryNote, _ *gorm.DB) error {
		dn.Cancel()
		return nil
	})
}

func (s *DeliveryService) Delete(id string) error {
	res := s.db.Delete(&models.DeliveryNote{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFoundf("delivery note %s not found", id)
	}
	return nil
}

func (s *DeliveryService) transition(id, action string, apply func(*models.DeliveryNote, *gorm.DB) error) (*models.DeliveryNote, error) {
	var dn models.DeliveryNote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&dn, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("delivery note %s not found", id)
			}
			return err
		}
		if err := apply(&dn, tx); err != nil {
			if errors.Is(err, models.ErrReceivedByRequired) {
				return Validationf(map[string]string{"received_by": "required"}, "receivedBy is required")
			}
			if errors.Is(err, models.ErrDeliveryNotPending) || errors.Is(err, models.ErrDeliveryNotInProgress) {
				return businessRule(err)
			}
			return err
		}
		if err := tx.Omit("Items").Save(&dn).Error; err != nil {
			return err
		}
		ev := models.NewDocumentEvent("delivery_note", dn.Id, action, &dn)
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("delivery", dn.DeliveryNumber).Str("status", string(dn.Status)).Msg("delivery transitioned")
	return &dn, nil
}
