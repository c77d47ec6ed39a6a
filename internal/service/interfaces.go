// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/khataflow/khataflow/internal/model"
)

// Storage defines the contract for the record store. The ledger core
// never talks to storage directly; callers fetch a snapshot here and pass
// it in by value.
type Storage interface {
	// Sale operations
	CreateSale(ctx context.Context, sale *model.SaleRecord) error
	GetSale(ctx context.Context, id string) (*model.SaleRecord, error)
	ListSales(ctx context.Context) ([]model.SaleRecord, error)
	DeleteSale(ctx context.Context, id string) error

	// Expense operations
	CreateExpense(ctx context.Context, expense *model.ExpenseRecord) error
	ListExpenses(ctx context.Context) ([]model.ExpenseRecord, error)
	DeleteExpense(ctx context.Context, id string) error

	// Credit operations
	CreateCredit(ctx context.Context, credit *model.CreditRecord) error
	GetCredit(ctx context.Context, id string) (*model.CreditRecord, error)
	ListCredits(ctx context.Context) ([]model.CreditRecord, error)
	AddCreditPayment(ctx context.Context, creditID string, payment model.CreditPayment) (*model.CreditRecord, error)
	DeleteCredit(ctx context.Context, id string) error

	// Product catalog operations
	CreateProduct(ctx context.Context, product *model.Product) error
	ListProducts(ctx context.Context) ([]model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// GetSnapshot returns the full record snapshot the ledger core reads.
	GetSnapshot(ctx context.Context) (*model.Snapshot, error)

	// Maintenance
	Migrate(ctx context.Context) error
	Close() error
}
