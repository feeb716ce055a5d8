package services

import (
	"errors"
	"time"

	"buildflow-backend/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type InvoiceService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db, log: log.With().Str("component", "invoices").Logger()}
}

type CreateInvoiceRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// buildInvoiceFromLPO derives an invoice: client identity and every line are
// copied verbatim, and this is the one derivation where the totals are copied
// from the source instead of recomputed from items.
func buildInvoiceFromLPO(lpo *models.LPO, dueDate time.Time, now time.Time) *models.Invoice {
	inv := &models.Invoice{
		LPOId:         lpo.Id,
		QuotationId:   lpo.QuotationId,
		ClientId:      lpo.ClientId,
		ClientName:    lpo.ClientName,
		ClientAddress: lpo.ClientAddress,
		SubTotal:      lpo.SubTotal,
		VAT:           lpo.VAT,
		TotalAmount:   lpo.TotalAmount,
		DueDate:       dueDate,
	}
	for _, it := range lpo.Items {
		line := it.LineItem
		inv.Items = append(inv.Items, models.InvoiceItem{LineItem: line})
	}
	inv.RecomputeStatus(now)
	return inv
}

// CreateFromLPO raises an invoice against an LPO, linking both the LPO and
// its source quotation when one exists.
func (s *InvoiceService) CreateFromLPO(lpoId string, req CreateInvoiceRequest) (*models.Invoice, error) {
	now := time.Now()
	var inv *models.Invoice

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lpo models.LPO
		if err := tx.Preload("Items").First(&lpo, "id = ?", lpoId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("LPO %s not found", lpoId)
			}
			return err
		}

		number, err := nextNumber(tx, PrefixInvoice, &models.Invoice{}, "invoice_number", now)
		if err != nil {
			return err
		}

		dueDate := defaultDueDate(now)
		if req.DueDate != nil {
			dueDate = *req.DueDate
		}

		inv = buildInvoiceFromLPO(&lpo, dueDate, now)
		inv.InvoiceNumber = number
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		ev := models.NewDocumentEvent("invoice", inv.Id, "derived_from_lpo", inv)
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("invoice", inv.InvoiceNumber).Str("lpo", lpoId).Msg("invoice raised")
	return inv, nil
}

func (s *InvoiceService) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.db.Preload("Items").Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range invoices {
		invoices[i].RecomputeStatus(now)
	}
	return invoices, nil
}

// Get returns the invoice with its document graph resolved (LPO, quotation,
// items) for read-only consumers such as the PDF renderer. Status is
// recomputed on read so an invoice past its due date reports overdue.
func (s *InvoiceService) Get(id string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.Preload("Items").
		Preload("LPO").
		Preload("LPO.Items").
		Preload("Quotation").
		Preload("Quotation.Items").
		First(&inv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("invoice %s not found", id)
		}
		return nil, err
	}
	inv.RecomputeStatus(time.Now())
	return &inv, nil
}

// Delete removes an invoice that has no payments applied.
func (s *InvoiceService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("invoice %s not found", id)
			}
			return err
		}
		if inv.AmountPaid != 0 {
			return BusinessRulef("invoice %s has payments applied and cannot be deleted", inv.InvoiceNumber)
		}
		return tx.Delete(&inv).Error
	})
}
