package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryPolarity indicates whether a ledger entry increases or decreases
// the balance owed by the counter-party.
type EntryPolarity string

// Entry polarity constants.
const (
	PolarityCredit EntryPolarity = "CREDIT"
	PolarityDebit  EntryPolarity = "DEBIT"
)

// PartyRole selects which record kinds contribute to a party's ledger.
type PartyRole string

// Party role constants.
const (
	RoleCustomer PartyRole = "customer"
	RoleVendor   PartyRole = "vendor"
)

// LedgerEntry is a single dated, signed line item derived from a source
// record. Entries are rebuilt from scratch on every ledger read and have
// no identity beyond the call that produced them; they are never persisted.
type LedgerEntry struct {
	Date           time.Time
	ID             string
	Description    string
	Polarity       EntryPolarity
	PaymentMethod  PaymentMethod // empty when the source record carries none
	Amount         decimal.Decimal
	RunningBalance decimal.Decimal // attached by the balance calculator
}

// Signed returns the entry amount with its polarity applied: positive for
// credit entries, negative for debit entries.
func (e *LedgerEntry) Signed() decimal.Decimal {
	if e.Polarity == PolarityDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}
