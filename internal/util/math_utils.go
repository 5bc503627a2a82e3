package util

import (
	"math"
	"strconv"
)

// RoundHalfEven rounds x to the given number of decimal places using the
// exact binary value of x, ties going to the even digit. 3.125 -> 3.12,
// 2.675 -> 2.67 (its binary value sits just below the midpoint).
func RoundHalfEven(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return rounded
}
