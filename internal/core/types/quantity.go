// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Quantity represents a stock quantity with full precision.
// Uses decimal.Decimal to avoid floating-point errors; persisted as
// NUMERIC(18,3), so values are normalized to 3 fractional digits.
type Quantity = decimal.Decimal

// QuantityScale is the number of fractional digits kept for quantities.
const QuantityScale int32 = 3

// NewQuantity creates a Quantity from a string.
// This is the preferred constructor for exact values.
func NewQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return NormalizeQuantity(d), nil
}

// MustQuantity creates a Quantity from a string, panics on error.
// Use only for constants and tests.
func MustQuantity(s string) Quantity {
	d, err := NewQuantity(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewQuantityFromFloat64 creates a Quantity from a float.
// WARNING: prefer NewQuantity for exact values.
func NewQuantityFromFloat64(f float64) Quantity {
	return NormalizeQuantity(decimal.NewFromFloat(f))
}

// NormalizeQuantity rounds to the storage scale (3 fractional digits).
func NormalizeQuantity(d Quantity) Quantity {
	return d.Round(QuantityScale)
}

// ZeroQuantity returns the zero value.
func ZeroQuantity() Quantity {
	return decimal.Zero
}
