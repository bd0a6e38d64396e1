package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStockType = errors.New("invalid stock type")
)

// Product represents a stocked item
type Product struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Amount int    `json:"amount" db:"amount"`
}

// InStock reports whether at least one unit is available
func (p *Product) InStock() bool {
	return p.Amount > 0
}

// StockType classifies products by availability
type StockType string

const (
	StockIn  StockType = "in-stock"
	StockOut StockType = "out-stock"
)

// ParseStockType converts a path value into a StockType
func ParseStockType(s string) (StockType, error) {
	switch StockType(s) {
	case StockIn, StockOut:
		return StockType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStockType, s)
	}
}

// Matches reports whether the product belongs to the stock type.
// in-stock and out-stock partition every product with a non-negative amount.
func (t StockType) Matches(p *Product) bool {
	if t == StockIn {
		return p.InStock()
	}
	return !p.InStock()
}
