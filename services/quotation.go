package services

import (
	"errors"
	"time"

	"buildflow-backend/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuotationService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewQuotationService(db *gorm.DB) *QuotationService {
	return &QuotationService{db: db, log: log.With().Str("component", "quotations").Logger()}
}

type CreateQuotationRequest struct {
	ClientId      *string         `json:"client_id"`
	ClientName    string          `json:"client_name" validate:"required"`
	ClientAddress string          `json:"client_address"`
	Items         []LineItemInput `json:"items" validate:"omitempty,dive"`
	CustomItems   []LineItemInput `json:"custom_items" validate:"omitempty,dive"`
	ValidUntil    *time.Time      `json:"valid_until"`
}

type UpdateQuotationRequest struct {
	ClientName    *string         `json:"client_name" validate:"omitempty,min=1"`
	ClientAddress *string         `json:"client_address"`
	ValidUntil    *time.Time      `json:"valid_until"`
	Notes         *string         `json:"notes"`
	Items         []LineItemInput `json:"items" validate:"omitempty,dive"`
	CustomItems   []LineItemInput `json:"custom_items" validate:"omitempty,dive"`
}

// quotationItems merges the catalog-sourced and custom collections into the
// single stored sequence, catalog lines first.
func quotationItems(items, custom []LineItemInput) []models.QuotationItem {
	out := make([]models.QuotationItem, 0, len(items)+len(custom))
	for _, in := range items {
		out = append(out, models.QuotationItem{LineItem: in.line(false)})
	}
	for _, in := range custom {
		out = append(out, models.QuotationItem{LineItem: in.line(true)})
	}
	return out
}

func (s *QuotationService) Create(req CreateQuotationRequest) (*models.Quotation, error) {
	now := time.Now()

	if req.ClientId != nil {
		var client models.Client
		if err := s.db.First(&client, "id = ?", *req.ClientId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFoundf("client %s not found", *req.ClientId)
			}
			return nil, err
		}
	}

	number, err := nextNumber(s.db, PrefixQuotation, &models.Quotation{}, "quotation_number", now)
	if err != nil {
		return nil, err
	}

	validUntil := defaultValidUntil(now)
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}

	q := models.Quotation{
		QuotationNumber: number,
		ClientId:        req.ClientId,
		ClientName:      req.ClientName,
		ClientAddress:   req.ClientAddress,
		Items:           quotationItems(req.Items, req.CustomItems),
		Status:          models.QuotationPending,
		ValidUntil:      validUntil,
	}
	q.Recalculate()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&q).Error; err != nil {
			return err
		}
		return tx.Create(&models.DocumentEvent{DocType: "quotation", DocId: q.Id, Action: "created"}).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("quotation", q.QuotationNumber).Msg("quotation created")
	return &q, nil
}

func (s *QuotationService) List() ([]models.Quotation, error) {
	var quotations []models.Quotation
	if err := s.db.Preload("Items").Order("created_at DESC").Find(&quotations).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range quotations {
		quotations[i].Status = quotations[i].EffectiveStatus(now)
	}
	return quotations, nil
}

// Get returns the quotation with its effective status: a pending quotation
// past validUntil reads as expired without a storage write.
func (s *QuotationService) Get(id string) (*models.Quotation, error) {
	var q models.Quotation
	if err := s.db.Preload("Items").Preload("Client").First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("quotation %s not found", id)
		}
		return nil, err
	}
	q.Status = q.EffectiveStatus(time.Now())
	return &q, nil
}

// Update edits a quotation. Totals are recomputed only when the payload
// carries items; edits to other fields leave the stored totals untouched.
func (s *QuotationService) Update(id string, req UpdateQuotationRequest) (*models.Quotation, error) {
	var q models.Quotation
	if err := s.db.Preload("Items").First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("quotation %s not found", id)
		}
		return nil, err
	}

	if req.ClientName != nil {
		q.ClientName = *req.ClientName
	}
	if req.ClientAddress != nil {
		q.ClientAddress = *req.ClientAddress
	}
	if req.ValidUntil != nil {
		q.ValidUntil = *req.ValidUntil
	}
	if req.Notes != nil {
		q.Notes = *req.Notes
	}

	itemsChanged := req.Items != nil || req.CustomItems != nil

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if itemsChanged {
			if err := tx.Where("quotation_id = ?", q.Id).Delete(&models.QuotationItem{}).Error; err != nil {
				return err
			}
			q.Items = quotationItems(req.Items, req.CustomItems)
			for i := range q.Items {
				q.Items[i].QuotationId = q.Id
			}
			q.Recalculate()
			if err := tx.Save(&q).Error; err != nil {
				return err
			}
		} else if err := tx.Omit("Items").Save(&q).Error; err != nil {
			return err
		}
		return tx.Create(&models.DocumentEvent{DocType: "quotation", DocId: q.Id, Action: "updated"}).Error
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *QuotationService) Delete(id string) error {
	res := s.db.Delete(&models.Quotation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFoundf("quotation %s not found", id)
	}
	return nil
}

func (s *QuotationService) Approve(id string) (*models.Quotation, error) {
	return s.transition(id, "approved", func(q *models.Quotation) error {
		return q.Approve()
	})
}

func (s *QuotationService) Reject(id, reason string) (*models.Quotation, error) {
	return s.transition(id, "rejected", func(q *models.Quotation) error {
		return q.Reject(reason)
	})
}

func (s *QuotationService) transition(id, action string, apply func(*models.Quotation) error) (*models.Quotation, error) {
	var q models.Quotation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&q, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("quotation %s not found", id)
			}
			return err
		}
		if err := apply(&q); err != nil {
			return businessRule(err)
		}
		if err := tx.Omit("Items").Save(&q).Error; err != nil {
			return err
		}
		ev := models.NewDocumentEvent("quotation", q.Id, action, &q)
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("quotation", q.QuotationNumber).Str("status", string(q.Status)).Msg("quotation transitioned")
	return &q, nil
}
