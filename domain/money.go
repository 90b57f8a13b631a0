package domain

import (
	"math"

	"github.com/Rhymond/go-money"
)

// FormatBRL renders a monetary value in pt-BR currency style (R$ 1.234,56).
// Non-finite values fall back to zero so a single bad field never takes
// down the whole row.
func FormatBRL(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	cents := int64(math.Round(value * 100))
	return money.New(cents, money.BRL).Display()
}
