package storage

import (
	"context"
	"fmt"

	"github.com/khataflow/khataflow/internal/model"
)

// CreateProduct inserts a new catalog product. Names are unique
// case-insensitively so the note parser can resolve them unambiguously.
func (s *SQLiteStorage) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, unit_price)
		VALUES (?, ?, ?)
	`, product.ID, product.Name, product.UnitPrice.String())
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// ListProducts returns the full product catalog ordered by name.
func (s *SQLiteStorage) ListProducts(ctx context.Context) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, unit_price FROM products ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []model.Product
	for rows.Next() {
		var product model.Product
		var price string
		if err := rows.Scan(&product.ID, &product.Name, &price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		product.UnitPrice, err = scanDecimal(price, "unit_price")
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// DeleteProduct removes a catalog product.
func (s *SQLiteStorage) DeleteProduct(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	return nil
}
