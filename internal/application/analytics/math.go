package analytics

import "math"

// Rounding rule for every rate the engine emits: ratios are computed at
// 4-decimal intermediate precision, then scaled to a percentage and rounded
// half-up to 2 decimals. This keeps results byte-identical across runs
// regardless of summation order.

// roundHalfUp rounds v to the given number of decimal places, half-up.
func roundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}

// Round2 rounds to 2 decimal places, half-up.
func Round2(v float64) float64 {
	return roundHalfUp(v, 2)
}

// Percentage returns n/d as a percentage in [0,100] under the fixed rounding
// rule. A zero denominator yields 0, never NaN or Inf.
func Percentage(n, d int) float64 {
	if d == 0 {
		return 0
	}
	ratio := roundHalfUp(float64(n)/float64(d), 4)
	return roundHalfUp(ratio*100, 2)
}

// GrowthPercent returns the month-over-month growth of cur relative to prev.
// A previous count of 0 followed by any growth reads as exactly 100%.
func GrowthPercent(prev, cur int) float64 {
	if prev == 0 {
		if cur > 0 {
			return 100
		}
		return 0
	}
	ratio := roundHalfUp(float64(cur-prev)/float64(prev), 4)
	return roundHalfUp(ratio*100, 2)
}

// Mean returns the arithmetic mean of values rounded to 2 decimals, or 0 for
// an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Round2(sum / float64(len(values)))
}
