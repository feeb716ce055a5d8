package services

import (
	"fmt"
	"math/rand"
	"time"

	"buildflow-backend/models"

	"gorm.io/gorm"
)

// Document number prefixes. LPO numbers are the one exception: they come from
// the client's paperwork and are never generated here.
const (
	PrefixQuotation = "Q"
	PrefixDelivery  = "DN"
	PrefixInvoice   = "INV"
	PrefixReceipt   = "RCT"
	PrefixClient    = "C"
)

const maxNumberAttempts = 5

// FormatDocumentNumber renders {PFX}{YY}{MM}{NNN}.
func FormatDocumentNumber(prefix string, t time.Time, seq int) string {
	return fmt.Sprintf("%s%s%03d", prefix, t.Format("0601"), seq)
}

// allocateNumber retries random candidates against a taken check. The random
// 3-digit suffix collides eventually, so existence is checked before use and
// exhaustion surfaces as a retryable conflict.
func allocateNumber(prefix string, now time.Time, taken func(string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := FormatDocumentNumber(prefix, now, rand.Intn(1000))
		inUse, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
	}
	return "", Conflictf("could not allocate a unique %s number, please retry", prefix)
}

// nextNumber allocates a document number against the given table/column.
func nextNumber(db *gorm.DB, prefix string, model any, column string, now time.Time) (string, error) {
	return allocateNumber(prefix, now, func(candidate string) (bool, error) {
		var count int64
		if err := db.Model(model).Where(column+" = ?", candidate).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

// NextClientNumber allocates a client number for the clients controller.
func NextClientNumber(db *gorm.DB, now time.Time) (string, error) {
	return nextNumber(db, PrefixClient, &models.Client{}, "client_number", now)
}
