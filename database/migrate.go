package database

import (
	"fmt"

	"buildflow-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2))
// - Basic CHECK constraints
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Client{},
			&models.Item{},
			&models.Quotation{},
			&models.QuotationItem{},
			&models.LPO{},
			&models.LPOItem{},
			&models.DeliveryNote{},
			&models.DeliveryItem{},
			&models.Invoice{},
			&models.InvoiceItem{},
			&models.Payment{},
			&models.DocumentEvent{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE items            ALTER COLUMN unit_price   TYPE numeric(12,2)`,
			`ALTER TABLE quotations       ALTER COLUMN sub_total    TYPE numeric(12,2)`,
			`ALTER TABLE quotations       ALTER COLUMN vat          TYPE numeric(12,2)`,
			`ALTER TABLE quotations       ALTER COLUMN total_amount TYPE numeric(12,2)`,
			`ALTER TABLE quotation_items  ALTER COLUMN unit_price   TYPE numeric(12,2)`,
			`ALTER TABLE quotation_items  ALTER COLUMN amount       TYPE numeric(12,2)`,
			`ALTER TABLE lpos             ALTER COLUMN sub_total    TYPE numeric(12,2)`,
			`ALTER TABLE lpos             ALTER COLUMN vat          TYPE numeric(12,2)`,
			`ALTER TABLE lpos             ALTER COLUMN total_amount TYPE numeric(12,2)`,
			`ALTER TABLE lpo_items        ALTER COLUMN unit_price   TYPE numeric(12,2)`,
			`ALTER TABLE lpo_items        ALTER COLUMN amount       TYPE numeric(12,2)`,
			`ALTER TABLE invoices         ALTER COLUMN sub_total    TYPE numeric(12,2)`,
			`ALTER TABLE invoices         ALTER COLUMN vat          TYPE numeric(12,2)`,
			`ALTER TABLE invoices         ALTER COLUMN total_amount TYPE numeric(12,2)`,
			`ALTER TABLE invoices         ALTER COLUMN amount_paid  TYPE numeric(12,2)`,
			`ALTER TABLE invoices         ALTER COLUMN balance      TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items    ALTER COLUMN unit_price   TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items    ALTER COLUMN amount       TYPE numeric(12,2)`,
			`ALTER TABLE payments         ALTER COLUMN amount       TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			check("items", "chk_items_unit_price_nonneg", "unit_price >= 0"),
			check("quotation_items", "chk_quotation_items_nonneg", "quantity >= 0 AND unit_price >= 0 AND amount >= 0"),
			check("lpo_items", "chk_lpo_items_nonneg", "quantity >= 0 AND unit_price >= 0 AND amount >= 0"),
			check("invoice_items", "chk_invoice_items_nonneg", "quantity >= 0 AND unit_price >= 0 AND amount >= 0"),
			check("payments", "chk_payments_amount_positive", "amount > 0"),
			check("invoices", "chk_invoices_amount_paid_nonneg", "amount_paid >= 0"),
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}

// check builds an idempotent ADD CONSTRAINT ... CHECK statement.
func check(table, name, expr string) string {
	return fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = '%s'::regclass
		  AND conname  = '%s'
	) THEN
		ALTER TABLE %s
		ADD CONSTRAINT %s
		CHECK (%s);
	END IF;
END $$;`, table, name, table, name, expr)
}
