package service

import (
	"context"
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

// MoreThanFiveThreshold is the amount used by the "more than five" listing
const MoreThanFiveThreshold = 5

// ProductQuery defines the read-only product operations
type ProductQuery interface {
	ListByStock(ctx context.Context, stockType domain.StockType) ([]*domain.Product, error)
	ListAboveAmount(ctx context.Context, threshold int) ([]*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

type productQuery struct {
	repo repository.ProductRepository
}

// NewProductQuery creates a new instance of ProductQuery
func NewProductQuery(repo repository.ProductRepository) ProductQuery {
	return &productQuery{repo: repo}
}

// ListByStock returns products matching the stock type, newest first.
// No matches yields an empty slice.
func (q *productQuery) ListByStock(ctx context.Context, stockType domain.StockType) ([]*domain.Product, error) {
	if _, err := domain.ParseStockType(string(stockType)); err != nil {
		return nil, err
	}

	products, err := q.repo.ListByStock(ctx, stockType)
	if err != nil {
		return nil, actionFailed(err)
	}
	return nonNil(products), nil
}

// ListAboveAmount returns products with amount strictly greater than threshold, newest first
func (q *productQuery) ListAboveAmount(ctx context.Context, threshold int) ([]*domain.Product, error) {
	products, err := q.repo.ListAboveAmount(ctx, threshold)
	if err != nil {
		return nil, actionFailed(err)
	}
	return nonNil(products), nil
}

// Get returns a single product
func (q *productQuery) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrNotFound
		}
		return nil, actionFailed(err)
	}
	return product, nil
}

func nonNil(products []*domain.Product) []*domain.Product {
	if products == nil {
		return []*domain.Product{}
	}
	return products
}
