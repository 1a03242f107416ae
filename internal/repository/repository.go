package repository

import (
	"context"

	"rentlify/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil, nil when
	// the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// ProductWriter seeds the products table from the catalogue.
type ProductWriter interface {
	// Upsert inserts or updates the given products in one batch.
	Upsert(ctx context.Context, products []model.Product) (int, error)
}
