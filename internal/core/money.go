// Package core provides the domain model for savings goals.
//
// This file contains helpers for parsing monetary amounts from request
// strings into exact decimal values.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string into an exact positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidContribution-style validation errors for malformed,
// negative, or zero values; the caller decides which sentinel fits.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("-1")     -> error (only positive values allowed)
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidContribution
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidContribution
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidContribution
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidContribution
	}
	return d, nil
}

// ParseOptionalAmount is ParseAmount for fields where zero is meaningful:
// initial amounts and pledges. Empty and "0" both parse to zero; negative
// values are still rejected.
func ParseOptionalAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidContribution
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidContribution
	}
	return d, nil
}

// ParseRate converts a percentage string into a decimal in [0, 100].
// An empty string means a zero rate, which is a common default.
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrRateOutOfRange
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		return decimal.Zero, ErrRateOutOfRange
	}
	return d, nil
}
