package storage

import (
	"context"

	"github.com/khataflow/khataflow/internal/model"
)

// GetSnapshot returns the full record snapshot the ledger core consumes.
// Legacy sale rows are normalized during the read, so the snapshot is
// always in canonical shape and downstream code never branches on field
// presence. The snapshot is fetched fresh per invocation; nothing is
// cached between calls.
func (s *SQLiteStorage) GetSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	sales, err := s.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	credits, err := s.ListCredits(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Snapshot{
		Sales:    sales,
		Expenses: expenses,
		Credits:  credits,
	}, nil
}
