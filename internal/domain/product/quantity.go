package product

import "math"

// ClampQuantity bounds a desired purchase quantity to [1, available],
// flooring fractional input. Out-of-stock products (available <= 0) pin the
// quantity at 1; the purchase action itself is disabled upstream.
func ClampQuantity(requested float64, available int) int {
	if available <= 0 {
		return 1
	}

	// NaN and the infinities never reach the int conversion; that
	// conversion is implementation-defined for them.
	q := 1
	switch {
	case math.IsInf(requested, 1):
		q = available
	case math.IsNaN(requested) || math.IsInf(requested, -1):
		q = 1
	default:
		q = int(math.Floor(requested))
	}
	if q < 1 {
		q = 1
	}
	if q > available {
		q = available
	}
	return q
}
