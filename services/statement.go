package services

import (
	"errors"
	"sort"
	"time"

	"buildflow-backend/models"

	"gorm.io/gorm"
)

// StatementEntry is one row of a client statement: an invoice debit or a
// payment credit, annotated with the running balance at that point.
type StatementEntry struct {
	Date        time.Time `json:"date"`
	DocType     string    `json:"doc_type"` // "invoice" | "payment"
	Number      string    `json:"number"`
	Description string    `json:"description"`
	Debit       float64   `json:"debit"`
	Credit      float64   `json:"credit"`
	Balance     float64   `json:"balance"`
}

// Statement is a derived, read-only projection; nothing persisted changes
// when one is built.
type Statement struct {
	ClientId       string           `json:"client_id"`
	ClientName     string           `json:"client_name"`
	ClientNumber   string           `json:"client_number"`
	From           time.Time        `json:"from"`
	To             time.Time        `json:"to"`
	Entries        []StatementEntry `json:"entries"`
	TotalDebit     float64          `json:"total_debit"`
	TotalCredit    float64          `json:"total_credit"`
	ClosingBalance float64          `json:"closing_balance"`
}

// BuildStatement merges the invoice and payment streams into a date-ascending
// ledger. The running balance accumulates (debit − credit) in date order and
// is independent of any invoice's stored balance field.
func BuildStatement(client *models.Client, invoices []models.Invoice, payments []models.Payment, from, to time.Time) Statement {
	st := Statement{
		ClientId:     client.Id,
		ClientName:   client.Name,
		ClientNumber: client.ClientNumber,
		From:         from,
		To:           to,
	}

	for _, inv := range invoices {
		if inv.CreatedAt.Before(from) || inv.CreatedAt.After(to) {
			continue
		}
		st.Entries = append(st.Entries, StatementEntry{
			Date:        inv.CreatedAt,
			DocType:     "invoice",
			Number:      inv.InvoiceNumber,
			Description: "Invoice " + inv.InvoiceNumber,
			Debit:       inv.TotalAmount,
		})
	}
	for _, p := range payments {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		st.Entries = append(st.Entries, StatementEntry{
			Date:        p.Date,
			DocType:     "payment",
			Number:      p.ReceiptNumber,
			Description: "Payment " + p.ReceiptNumber,
			Credit:      p.Amount,
		})
	}

	// Stable sort keeps invoices ahead of their same-day payments.
	sort.SliceStable(st.Entries, func(i, j int) bool {
		return st.Entries[i].Date.Before(st.Entries[j].Date)
	})

	var balance float64
	for i := range st.Entries {
		balance += st.Entries[i].Debit - st.Entries[i].Credit
		st.Entries[i].Balance = balance
		st.TotalDebit += st.Entries[i].Debit
		st.TotalCredit += st.Entries[i].Credit
	}
	st.ClosingBalance = balance
	return st
}

type StatementService struct {
	db *gorm.DB
}

func NewStatementService(db *gorm.DB) *StatementService {
	return &StatementService{db: db}
}

// ForClient builds the statement over [from, to], defaulting to the last
// three months.
func (s *StatementService) ForClient(clientId string, from, to *time.Time) (*Statement, error) {
	now := time.Now()
	start := now.AddDate(0, -3, 0)
	end := now
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}

	var client models.Client
	if err := s.db.First(&client, "id = ?", clientId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("client %s not found", clientId)
		}
		return nil, err
	}

	var invoices []models.Invoice
	if err := s.db.Where("client_id = ?", clientId).Find(&invoices).Error; err != nil {
		return nil, err
	}

	var payments []models.Payment
	if len(invoices) > 0 {
		ids := make([]string, 0, len(invoices))
		for _, inv := range invoices {
			ids = append(ids, inv.Id)
		}
		if err := s.db.Where("invoice_id IN ?", ids).Find(&payments).Error; err != nil {
			return nil, err
		}
	}

	st := BuildStatement(&client, invoices, payments, start, end)
	return &st, nil
}
