package services

import (
	"errors"
	"time"

	"buildflow-backend/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PaymentService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db, log: log.With().Str("component", "payments").Logger()}
}

type RecordPaymentRequest struct {
	Amount     float64              `json:"amount" validate:"required,gt=0"`
	Method     models.PaymentMethod `json:"method" validate:"required,oneof=cash cheque bank_transfer mpesa"`
	Date       *time.Time           `json:"date"`
	Reference  string               `json:"reference"`
	Notes      string               `json:"notes"`
	ReceivedBy string               `json:"received_by"`
}

type UpdatePaymentRequest struct {
	Amount     *float64              `json:"amount" validate:"omitempty,gt=0"`
	Method     *models.PaymentMethod `json:"method" validate:"omitempty,oneof=cash cheque bank_transfer mpesa"`
	Date       *time.Time            `json:"date"`
	Reference  *string               `json:"reference"`
	Notes      *string               `json:"notes"`
	ReceivedBy *string               `json:"received_by"`
}

// saveInvoiceReconciled persists the invoice's amountPaid/balance/status under
// an optimistic version check. Two concurrent payment mutations against the
// same invoice cannot both win; the loser gets a retryable conflict and the
// whole transaction rolls back.
func saveInvoiceReconciled(tx *gorm.DB, inv *models.Invoice) error {
	res := tx.Model(&models.Invoice{}).
		Where("id = ? AND version = ?", inv.Id, inv.Version).
		Updates(map[string]any{
			"amount_paid": inv.AmountPaid,
			"balance":     inv.Balance,
			"status":      inv.Status,
			"version":     inv.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return Conflictf("invoice %s was modified concurrently, please retry", inv.InvoiceNumber)
	}
	inv.Version++
	return nil
}

// Record validates 0 < amount <= balance (strict, never clamped) and applies
// the payment. The invoice mutation is the last durable step.
func (s *PaymentService) Record(invoiceId string, req RecordPaymentRequest) (*models.Payment, error) {
	now := time.Now()
	var payment models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, "id = ?", invoiceId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("invoice %s not found", invoiceId)
			}
			return err
		}

		if err := inv.ApplyPayment(req.Amount, now); err != nil {
			return businessRule(err)
		}

		receipt, err := nextNumber(tx, PrefixReceipt, &models.Payment{}, "receipt_number", now)
		if err != nil {
			return err
		}

		date := now
		if req.Date != nil {
			date = *req.Date
		}
		payment = models.Payment{
			ReceiptNumber: receipt,
			InvoiceId:     inv.Id,
			Amount:        req.Amount,
			Method:        req.Method,
			Date:          date,
			Reference:     req.Reference,
			Notes:         req.Notes,
			ReceivedBy:    req.ReceivedBy,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := saveInvoiceReconciled(tx, &inv); err != nil {
			return err
		}
		ev := models.NewDocumentEvent("payment", payment.Id, "recorded", &payment)
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("receipt", payment.ReceiptNumber).Float64("amount", payment.Amount).Msg("payment recorded")
	return &payment, nil
}

// Update amends a payment. An increase is validated incrementally: the
// difference, not the full new amount, is checked against the current balance.
func (s *PaymentService) Update(paymentId string, req UpdatePaymentRequest) (*models.Payment, error) {
	now := time.Now()
	var payment models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, "id = ?", paymentId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("payment %s not found", paymentId)
			}
			return err
		}
		var inv models.Invoice
		if err := tx.First(&inv, "id = ?", payment.InvoiceId).Error; err != nil {
			return err
		}

		if req.Amount != nil && *req.Amount != payment.Amount {
			diff := *req.Amount - payment.Amount
			if err := inv.AdjustPayment(diff, now); err != nil {
				return businessRule(err)
			}
			payment.Amount = *req.Amount
			if err := saveInvoiceReconciled(tx, &inv); err != nil {
				return err
			}
		}
		if req.Method != nil {
			payment.Method = *req.Method
		}
		if req.Date != nil {
			payment.Date = *req.Date
		}
		if req.Reference != nil {
			payment.Reference = *req.Reference
		}
		if req.Notes != nil {
			payment.Notes = *req.Notes
		}
		if req.ReceivedBy != nil {
			payment.ReceivedBy = *req.ReceivedBy
		}

		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		ev := models.NewDocumentEvent("payment", payment.Id, "amended", &payment)
		return tx.Create(&ev).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Delete reverses a payment: the invoice is reconciled first, then the
// payment row is removed, all in one transaction.
func (s *PaymentService) Delete(paymentId string) error {
	now := time.Now()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "id = ?", paymentId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("payment %s not found", paymentId)
			}
			return err
		}
		var inv models.Invoice
		if err := tx.First(&inv, "id = ?", payment.InvoiceId).Error; err != nil {
			return err
		}

		inv.ReversePayment(payment.Amount, now)
		if err := saveInvoiceReconciled(tx, &inv); err != nil {
			return err
		}
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		ev := models.NewDocumentEvent("payment", payment.Id, "reversed", &payment)
		return tx.Create(&ev).Error
	})
}

func (s *PaymentService) ListForInvoice(invoiceId string) ([]models.Payment, error) {
	var exists int64
	if err := s.db.Model(&models.Invoice{}).Where("id = ?", invoiceId).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, NotFoundf("invoice %s not found", invoiceId)
	}
	var payments []models.Payment
	err := s.db.Where("invoice_id = ?", invoiceId).Order("date ASC").Find(&payments).Error
	return payments, err
}
