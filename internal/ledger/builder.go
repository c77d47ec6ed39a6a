// Package ledger derives chronological running-balance statements for a
// single counter-party from raw sale, expense, and credit records.
//
// Everything here is pure: entries are rebuilt from scratch on every call
// from an immutable snapshot, nothing is cached, and nothing is persisted.
package ledger

import (
	"log/slog"
	"strings"

	"github.com/khataflow/khataflow/internal/model"
)

// Entry descriptions. The payment tags are load-bearing: reporting and
// tests distinguish partial from full settlement by them.
const (
	descSale            = "Sale"
	descPaymentReceived = "Payment received"
	descFullPayment     = "Full payment"
	descExpense         = "Expense"
	descCreditGiven     = "Credit given"
	descCreditTaken     = "Credit taken"
	descPaymentMade     = "Payment made"
)

// Build expands the records matching one party into an unsorted sequence
// of ledger entries. Party names match case-insensitively. The role
// decides which record kinds contribute: sales for customers, expenses
// for vendors; credits contribute regardless of role.
//
// An unexpected fault degrades to an empty ledger rather than escaping to
// the caller.
func Build(snapshot model.Snapshot, party string, role model.PartyRole) (entries []model.LedgerEntry) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("ledger build failed, returning empty ledger",
				"party", party, "panic", r)
			entries = nil
		}
	}()

	switch role {
	case model.RoleCustomer:
		for i := range snapshot.Sales {
			entries = append(entries, saleEntries(&snapshot.Sales[i], party)...)
		}
	case model.RoleVendor:
		for i := range snapshot.Expenses {
			if entry, ok := expenseEntry(&snapshot.Expenses[i], party); ok {
				entries = append(entries, entry)
			}
		}
	}

	for i := range snapshot.Credits {
		entries = append(entries, creditEntries(&snapshot.Credits[i], party)...)
	}

	return entries
}

// saleEntries expands one sale into its base debt entry plus, when money
// actually changed hands, a settlement entry. The two settlement shapes
// are mutually exclusive: a partial payment while paid < total, a full
// payment once paid >= total. A zero sale with nothing paid produces only
// the base entry.
func saleEntries(sale *model.SaleRecord, party string) []model.LedgerEntry {
	if !strings.EqualFold(sale.CustomerName, party) {
		return nil
	}

	entries := []model.LedgerEntry{{
		Date:        sale.Date,
		ID:          sale.ID + "-sale",
		Description: descSale,
		Polarity:    model.PolarityCredit,
		Amount:      sale.TotalAmount,
	}}

	if !sale.PaidAmount.IsPositive() {
		return entries
	}

	description := descPaymentReceived
	if sale.FullyPaid() {
		description = descFullPayment
	}

	return append(entries, model.LedgerEntry{
		Date:          sale.Date,
		ID:            sale.ID + "-payment",
		Description:   description,
		Polarity:      model.PolarityDebit,
		PaymentMethod: sale.PaymentMethod,
		Amount:        sale.PaidAmount,
	})
}

// expenseEntry maps one expense to a debit entry: the business paid the
// vendor, reducing what it owes.
func expenseEntry(expense *model.ExpenseRecord, party string) (model.LedgerEntry, bool) {
	if !strings.EqualFold(expense.VendorName, party) {
		return model.LedgerEntry{}, false
	}

	description := descExpense
	if expense.Category != "" {
		description = descExpense + " (" + expense.Category + ")"
	}

	return model.LedgerEntry{
		Date:        expense.Date,
		ID:          expense.ID + "-expense",
		Description: description,
		Polarity:    model.PolarityDebit,
		Amount:      expense.Amount,
	}, true
}

// creditEntries expands one credit into its initial obligation entry plus
// an opposite-polarity entry per repayment.
func creditEntries(credit *model.CreditRecord, party string) []model.LedgerEntry {
	if !strings.EqualFold(credit.Party, party) {
		return nil
	}

	initial := model.LedgerEntry{
		Date:   credit.Date,
		ID:     credit.ID + "-credit",
		Amount: credit.Amount,
	}

	var paymentPolarity model.EntryPolarity
	var paymentDescription string
	if credit.Direction == model.CreditGiven {
		initial.Polarity = model.PolarityCredit
		initial.Description = descCreditGiven
		paymentPolarity = model.PolarityDebit
		paymentDescription = descPaymentReceived
	} else {
		initial.Polarity = model.PolarityDebit
		initial.Description = descCreditTaken
		paymentPolarity = model.PolarityCredit
		paymentDescription = descPaymentMade
	}

	entries := []model.LedgerEntry{initial}
	for _, payment := range credit.Payments {
		entries = append(entries, model.LedgerEntry{
			Date:          payment.Date,
			ID:            payment.ID + "-payment",
			Description:   paymentDescription,
			Polarity:      paymentPolarity,
			PaymentMethod: payment.PaymentMethod,
			Amount:        payment.Amount,
		})
	}

	return entries
}
