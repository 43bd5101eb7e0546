package utils

import "math"

// RoundFloat rounds a float64 to the specified number of decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// Round2 rounds to 2 decimal places, the precision of every USDT column.
func Round2(val float64) float64 {
	return RoundFloat(val, 2)
}
