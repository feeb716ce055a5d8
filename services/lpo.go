package services

import (
	"errors"
	"time"

	"buildflow-backend/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type LPOService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewLPOService(db *gorm.DB) *LPOService {
	return &LPOService{db: db, log: log.With().Str("component", "lpos").Logger()}
}

type CreateLPORequest struct {
	LPONumber       string          `json:"lpo_number" validate:"required"`
	ClientId        *string         `json:"client_id"`
	ClientName      string          `json:"client_name" validate:"required"`
	ClientAddress   string          `json:"client_address"`
	DeliveryAddress string          `json:"delivery_address"`
	Items           []LineItemInput `json:"items" validate:"omitempty,dive"`
	IssuedDate      *time.Time      `json:"issued_date"`
	AttachmentPath  string          `json:"attachment_path"`
}

type ConvertQuotationRequest struct {
	LPONumber       string     `json:"lpo_number" validate:"required"`
	IssuedDate      *time.Time `json:"issued_date"`
	DeliveryAddress string     `json:"delivery_address"`
	AttachmentPath  string     `json:"attachment_path"`
}

type UpdateLPORequest struct {
	ClientName      *string         `json:"client_name" validate:"omitempty,min=1"`
	ClientAddress   *string         `json:"client_address"`
	DeliveryAddress *string         `json:"delivery_address"`
	IssuedDate      *time.Time      `json:"issued_date"`
	AttachmentPath  *string         `json:"attachment_path"`
	Items           []LineItemInput `json:"items" validate:"omitempty,dive"`
}

// buildLPOFromQuotation derives an LPO from a quotation: client identity is
// snapshotted, every line (custom included) is carried over, and totals are
// recomputed from the copied lines rather than trusted from the source.
func buildLPOFromQuotation(q *models.Quotation, req ConvertQuotationRequest, now time.Time) *models.LPO {
	issued := now
	if req.IssuedDate != nil {
		issued = *req.IssuedDate
	}
	lpo := &models.LPO{
		LPONumber:       req.LPONumber,
		QuotationId:     &q.Id,
		ClientId:        q.ClientId,
		ClientName:      q.ClientName,
		ClientAddress:   q.ClientAddress,
		DeliveryAddress: req.DeliveryAddress,
		Status:          models.LPOReceived,
		IssuedDate:      issued,
		AttachmentPath:  req.AttachmentPath,
	}
	for _, it := range q.Items {
		lpo.Items = append(lpo.Items, models.LPOItem{LineItem: it.LineItem})
	}
	for i := range lpo.Items {
		lpo.Items[i].ID = 0
	}
	lpo.Recalculate()
	return lpo
}

// uniqueLPONumber is the decision behind the pre-write duplicate check: any
// existing row with the caller-supplied number is a business-rule rejection.
func uniqueLPONumber(count int64, number string) error {
	if count > 0 {
		return BusinessRulef("LPO number %s already exists", number)
	}
	return nil
}

// ensureUniqueNumber rejects a duplicate lpoNumber with a clear error before
// any write, rather than leaning on the unique index alone. It runs inside
// the create transaction, so a rejection rolls back without touching any row.
func (s *LPOService) ensureUniqueNumber(tx *gorm.DB, number string) error {
	var count int64
	if err := tx.Model(&models.LPO{}).Where("lpo_number = ?", number).Count(&count).Error; err != nil {
		return err
	}
	return uniqueLPONumber(count, number)
}

// Create records a standalone LPO (no source quotation).
func (s *LPOService) Create(req CreateLPORequest) (*models.LPO, error) {
	now := time.Now()
	issued := now
	if req.IssuedDate != nil {
		issued = *req.IssuedDate
	}

	lpo := models.LPO{
		LPONumber:       req.LPONumber,
		ClientId:        req.ClientId,
		ClientName:      req.ClientName,
		ClientAddress:   req.ClientAddress,
		DeliveryAddress: req.DeliveryAddress,
		Status:          models.LPOReceived,
		IssuedDate:      issued,
		AttachmentPath:  req.AttachmentPath,
	}
	for _, in := range req.Items {
		lpo.Items = append(lpo.Items, models.LPOItem{LineItem: in.line(false)})
	}
	lpo.Recalculate()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ensureUniqueNumber(tx, req.LPONumber); err != nil {
			return err
		}
		if err := tx.Create(&lpo).Error; err != nil {
			return err
		}
		return tx.Create(&models.DocumentEvent{DocType: "lpo", DocId: lpo.Id, Action: "created"}).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("lpo", lpo.LPONumber).Msg("lpo created")
	return &lpo, nil
}

// CreateFromQuotation derives an LPO from a quotation and marks the quotation
// converted. Rejected or expired quotations do not convert.
func (s *LPOService) CreateFromQuotation(quotationId string, req ConvertQuotationRequest) (*models.LPO, error) {
	now := time.Now()
	var lpo *models.LPO

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var q models.Quotation
		if err := tx.Preload("Items").First(&q, "id = ?", quotationId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("quotation %s not found", quotationId)
			}
			return err
		}
		if q.EffectiveStatus(now) == models.QuotationExpired {
			return businessRule(models.ErrQuotationNotConvertible)
		}
		if err := q.MarkConverted(); err != nil {
			return businessRule(err)
		}
		if err := s.ensureUniqueNumber(tx, req.LPONumber); err != nil {
			return err
		}

		lpo = buildLPOFromQuotation(&q, req, now)
		if err := tx.Create(lpo).Error; err != nil {
			return err
		}
		if err := tx.Omit("Items").Save(&q).Error; err != nil {
			return err
		}
		ev := models.NewDocumentEvent("lpo", lpo.Id, "derived_from_quotation", lpo)
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("lpo", lpo.LPONumber).Str("quotation", quotationId).Msg("lpo derived from quotation")
	return lpo, nil
}

func (s *LPOService) List() ([]models.LPO, error) {
	var lpos []models.LPO
	err := s.db.Preload("Items").Order("created_at DESC").Find(&lpos).Error
	return lpos, err
}

func (s *LPOService) Get(id string) (*models.LPO, error) {
	var lpo models.LPO
	if err := s.db.Preload("Items").Preload("Quotation").First(&lpo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("LPO %s not found", id)
		}
		return nil, err
	}
	return &lpo, nil
}

// Update edits an LPO. Unlike quotations, totals are recomputed on every
// save regardless of what changed.
func (s *LPOService) Update(id string, req UpdateLPORequest) (*models.LPO, error) {
	var lpo models.LPO
	if err := s.db.Preload("Items").First(&lpo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("LPO %s not found", id)
		}
		return nil, err
	}

	if req.ClientName != nil {
		lpo.ClientName = *req.ClientName
	}
	if req.ClientAddress != nil {
		lpo.ClientAddress = *req.ClientAddress
	}
	if req.DeliveryAddress != nil {
		lpo.DeliveryAddress = *req.DeliveryAddress
	}
	if req.IssuedDate != nil {
		lpo.IssuedDate = *req.IssuedDate
	}
	if req.AttachmentPath != nil {
		lpo.AttachmentPath = *req.AttachmentPath
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.Items != nil {
			if err := tx.Where("lpo_id = ?", lpo.Id).Delete(&models.LPOItem{}).Error; err != nil {
				return err
			}
			lpo.Items = nil
			for _, in := range req.Items {
				lpo.Items = append(lpo.Items, models.LPOItem{LPOId: lpo.Id, LineItem: in.line(false)})
			}
			lpo.Recalculate()
			if err := tx.Save(&lpo).Error; err != nil {
				return err
			}
		} else {
			lpo.Recalculate()
			if err := tx.Omit("Items").Save(&lpo).Error; err != nil {
				return err
			}
		}
		return tx.Create(&models.DocumentEvent{DocType: "lpo", DocId: lpo.Id, Action: "updated"}).Error
	})
	if err != nil {
		return nil, err
	}
	return &lpo, nil
}

// SetStatus is the administrative override: any enum value is assigned
// directly, bypassing the automatic received→processing→fulfilled progression.
func (s *LPOService) SetStatus(id string, status models.LPOStatus) (*models.LPO, error) {
	var lpo models.LPO
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&lpo, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("LPO %s not found", id)
			}
			return err
		}
		if err := lpo.SetStatus(status); err != nil {
			return Validationf(map[string]string{"status": "must be one of received, processing, fulfilled, cancelled"}, "invalid LPO status %q", status)
		}
		if err := tx.Omit("Items").Save(&lpo).Error; err != nil {
			return err
		}
		ev := models.NewDocumentEvent("lpo", lpo.Id, "status_override", &lpo)
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("lpo", lpo.LPONumber).Str("status", string(status)).Msg("lpo status overridden")
	return &lpo, nil
}

func (s *LPOService) Delete(id string) error {
	res := s.db.Delete(&models.LPO{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFoundf("LPO %s not found", id)
	}
	return nil
}
