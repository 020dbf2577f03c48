// Package finance implements the savings-goal projection engine.
//
// Every function in this package is a pure, deterministic mapping from its
// inputs to its outputs: no clock access, no I/O, no shared state. Callers
// thread "now" in explicitly, so concurrent use needs no synchronization.
//
// This file contains the time-value-of-money primitives. All formulas use a
// monthly rate r = annualPercent / 100 / 12 and treat r == 0 as an explicit
// branch; the no-interest case must never fall through to a division by zero.
package finance

import "math"

const monthsPerYear = 12

// MonthlyRate converts a nominal annual percentage (e.g. 5 for 5%) into the
// monthly compounding rate.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / monthsPerYear
}

// FutureValue grows a present value over the given number of monthly
// periods. Periods may be fractional when compounding across real calendar
// gaps rather than idealized schedule slots.
func FutureValue(presentValue, r, periods float64) float64 {
	if r == 0 {
		return presentValue
	}
	return presentValue * math.Pow(1+r, periods)
}

// AnnuityFutureValue returns the future value of an ordinary annuity: a
// level payment made at the end of each of the given periods.
func AnnuityFutureValue(payment, r float64, periods float64) float64 {
	if periods <= 0 {
		return 0
	}
	if r == 0 {
		return payment * periods
	}
	return payment * (math.Pow(1+r, periods) - 1) / r
}

// Payment returns the level payment per period required so that the present
// value, grown over the periods, plus an ordinary annuity of that many
// payments, reaches the target future value. Returns 0 when the present
// value's own growth already covers the target.
func Payment(futureValueTarget, presentValue, r float64, periods int) float64 {
	if periods <= 0 {
		periods = 1
	}
	n := float64(periods)
	remaining := futureValueTarget - FutureValue(presentValue, r, n)
	if remaining <= 0 {
		return 0
	}
	if r == 0 {
		return remaining / n
	}
	return remaining / ((math.Pow(1+r, n) - 1) / r)
}

// PeriodsNeeded solves for the number of monthly periods required for the
// present value plus a level payment stream to reach the target (NPER).
//
// Unreachable targets are a valid outcome, not an error: the result is
// +Inf when no amount of waiting gets there (zero payment with zero rate or
// nothing invested, or a log argument that is not positive).
func PeriodsNeeded(r, payment, presentValue, futureValueTarget float64) float64 {
	if presentValue >= futureValueTarget {
		return 0
	}
	if payment <= 0 {
		// Growth alone has to carry the balance to the target.
		if r == 0 || presentValue <= 0 {
			return math.Inf(1)
		}
		return math.Log(futureValueTarget/presentValue) / math.Log(1+r)
	}
	if r == 0 {
		return (futureValueTarget - presentValue) / payment
	}
	arg := (payment + futureValueTarget*r) / (payment + presentValue*r)
	if arg <= 0 {
		return math.Inf(1)
	}
	return math.Log(arg) / math.Log(1+r)
}
