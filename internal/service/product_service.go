package service

import (
	"context"
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

// CreateInput holds the fields supplied for a new product. Nil means absent.
type CreateInput struct {
	Name   *string
	Amount *int
}

// UpdateInput holds the fields supplied for a partial update. Nil means absent.
type UpdateInput struct {
	Name   *string
	Amount *int
}

// IsEmpty reports whether no field was supplied
func (in UpdateInput) IsEmpty() bool {
	return in.Name == nil && in.Amount == nil
}

// ProductService defines the interface for product write operations
type ProductService interface {
	Create(ctx context.Context, in CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	repo repository.ProductRepository
	tx   repository.TxManager
}

// NewProductService creates a new instance of ProductService.
// repo serves lookups; every write goes through tx.
func NewProductService(repo repository.ProductRepository, tx repository.TxManager) ProductService {
	return &productService{
		repo: repo,
		tx:   tx,
	}
}

// Create validates the input and inserts a new product inside a transaction
func (s *productService) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	product := &domain.Product{}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Amount != nil {
		product.Amount = *in.Amount
	}

	if violations := domain.ValidateProduct(product); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	err := s.tx.WithinTx(ctx, func(repo repository.ProductRepository) error {
		return repo.Create(ctx, product)
	})
	if err != nil {
		return nil, actionFailed(err)
	}

	return product, nil
}

// Update applies the supplied fields to an existing product.
// Validation runs before a transaction is opened, so a rejected update never touches the store.
func (s *productService) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.IsEmpty() {
		return nil, ErrMissingParameter
	}

	product := *existing

	// An empty name keeps the stored one. Clients cannot tell this apart from
	// clearing the field; kept as-is for compatibility with existing callers.
	if in.Name != nil && *in.Name != "" {
		product.Name = *in.Name
	}
	if in.Amount != nil {
		product.Amount = *in.Amount
	}

	if violations := domain.ValidateProduct(&product); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	err = s.tx.WithinTx(ctx, func(repo repository.ProductRepository) error {
		return repo.Update(ctx, &product)
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrNotFound
		}
		return nil, actionFailed(err)
	}

	return &product, nil
}

// Delete removes an existing product inside a transaction
func (s *productService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(repo repository.ProductRepository) error {
		return repo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrNotFound
		}
		return actionFailed(err)
	}

	return nil
}

func (s *productService) find(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrNotFound
		}
		return nil, actionFailed(err)
	}
	return product, nil
}
