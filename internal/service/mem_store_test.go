package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

// memTable is an in-memory ProductRepository
type memTable struct {
	rows     map[int64]domain.Product
	nextID   int64
	writeErr error
}

func newMemTable() *memTable {
	return &memTable{rows: make(map[int64]domain.Product)}
}

func (t *memTable) clone() *memTable {
	c := &memTable{rows: make(map[int64]domain.Product, len(t.rows)), nextID: t.nextID, writeErr: t.writeErr}
	for id, p := range t.rows {
		c.rows[id] = p
	}
	return c
}

func (t *memTable) Create(_ context.Context, product *domain.Product) error {
	if t.writeErr != nil {
		return t.writeErr
	}
	t.nextID++
	product.ID = t.nextID
	t.rows[product.ID] = *product
	return nil
}

func (t *memTable) Update(_ context.Context, product *domain.Product) error {
	if t.writeErr != nil {
		return t.writeErr
	}
	if _, ok := t.rows[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	t.rows[product.ID] = *product
	return nil
}

func (t *memTable) Delete(_ context.Context, id int64) error {
	if t.writeErr != nil {
		return t.writeErr
	}
	if _, ok := t.rows[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *memTable) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := t.rows[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (t *memTable) ListByStock(_ context.Context, stockType domain.StockType) ([]*domain.Product, error) {
	return t.filter(func(p domain.Product) bool { return stockType.Matches(&p) }), nil
}

func (t *memTable) ListAboveAmount(_ context.Context, threshold int) ([]*domain.Product, error) {
	return t.filter(func(p domain.Product) bool { return p.Amount > threshold }), nil
}

func (t *memTable) filter(keep func(domain.Product) bool) []*domain.Product {
	var out []*domain.Product
	for _, p := range t.rows {
		if keep(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// memStore wraps a memTable with copy-on-begin transactions
type memStore struct {
	mu        sync.Mutex
	table     *memTable
	commitErr error

	begun      int
	committed  int
	rolledBack int
}

func newMemStore() *memStore {
	return &memStore{table: newMemTable()}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.begun++
	staged := s.table.clone()

	if err := fn(staged); err != nil {
		s.rolledBack++
		return err
	}
	if s.commitErr != nil {
		s.rolledBack++
		return s.commitErr
	}

	s.committed++
	s.table = staged
	return nil
}

// repo exposes the committed state for lookups
func (s *memStore) repo() repository.ProductRepository {
	return committedView{s}
}

// committedView always reads the latest committed table
type committedView struct {
	s *memStore
}

func (v committedView) Create(ctx context.Context, p *domain.Product) error {
	return v.s.table.Create(ctx, p)
}

func (v committedView) Update(ctx context.Context, p *domain.Product) error {
	return v.s.table.Update(ctx, p)
}

func (v committedView) Delete(ctx context.Context, id int64) error {
	return v.s.table.Delete(ctx, id)
}

func (v committedView) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return v.s.table.FindByID(ctx, id)
}

func (v committedView) ListByStock(ctx context.Context, st domain.StockType) ([]*domain.Product, error) {
	return v.s.table.ListByStock(ctx, st)
}

func (v committedView) ListAboveAmount(ctx context.Context, threshold int) ([]*domain.Product, error) {
	return v.s.table.ListAboveAmount(ctx, threshold)
}

// failingRepository fails every call
type failingRepository struct{}

func (failingRepository) Create(context.Context, *domain.Product) error { return errStoreDown }
func (failingRepository) Update(context.Context, *domain.Product) error { return errStoreDown }
func (failingRepository) Delete(context.Context, int64) error           { return errStoreDown }
func (failingRepository) FindByID(context.Context, int64) (*domain.Product, error) {
	return nil, errStoreDown
}
func (failingRepository) ListByStock(context.Context, domain.StockType) ([]*domain.Product, error) {
	return nil, errStoreDown
}
func (failingRepository) ListAboveAmount(context.Context, int) ([]*domain.Product, error) {
	return nil, errStoreDown
}
