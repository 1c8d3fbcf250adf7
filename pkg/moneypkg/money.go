// Package moneypkg handles fixed-point money amounts.
//
// Amounts travel as decimal strings and are stored as NUMERIC(15,2).
package moneypkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Scale is the number of fraction digits kept for every amount.
const Scale = 2

// maxIntDigits is the number of integer digits that fit into NUMERIC(15,2).
const maxIntDigits = 13

// Parse parses s as an amount with at most Scale fraction digits.
func Parse(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	if d.Exponent() < -Scale && !d.Equal(d.Round(Scale)) {
		return decimal.Zero, false
	}

	if len(d.Abs().Truncate(0).String()) > maxIntDigits {
		return decimal.Zero, false
	}

	return d, true
}

// Format renders d with exactly Scale fraction digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// Normalize reformats a stored amount, e.g. "0" into "0.00".
func Normalize(s string) (string, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", err
	}

	return Format(d), nil
}

// ValidAmount validates that the field is a decimal string fitting NUMERIC(15,2).
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, ok = Parse(s)

	return ok
}
