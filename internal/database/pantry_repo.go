package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/foxxcyber/pantry-chef/internal/models"
)

// GetProducts loads a stored pantry document. The boolean result is
// false when no document exists for the key, which is distinct from an
// empty stored list.
func (db *DB) GetProducts(ctx context.Context, key string) ([]models.Product, bool, error) {
	var raw []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT products FROM pantry_products WHERE key = $1
	`, key).Scan(&raw)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("corrupt pantry document %q: %w", key, err)
	}
	return products, true, nil
}

// SetProducts replaces the stored pantry document for the key.
func (db *DB) SetProducts(ctx context.Context, key string, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encoding pantry document %q: %w", key, err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO pantry_products (key, products, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET products = $2, updated_at = NOW()
	`, key, raw)
	return err
}

// DeleteProducts removes a stored pantry document entirely.
func (db *DB) DeleteProducts(ctx context.Context, key string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM pantry_products WHERE key = $1`, key)
	return err
}
