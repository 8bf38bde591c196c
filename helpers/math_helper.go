package helpers

import (
	"math"
	"math/big"
)

// ClampConfidence bounds a confidence score to [0, 100]
func ClampConfidence(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// ClampScore bounds a float score to [0, 100] and rounds it
func ClampScore(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	return ClampConfidence(int(math.Round(value)))
}

// RoundDiv divides and rounds half up; zero divisor yields zero
func RoundDiv(total uint64, count uint64) uint64 {
	if count == 0 {
		return 0
	}
	return (total + count/2) / count
}

// gasEpsilon absorbs float noise from table multipliers such as 1.1
const gasEpsilon = 1e-6

// CeilGas rounds a fractional gas amount up to the next whole unit
func CeilGas(gas float64) uint64 {
	if gas <= 0 {
		return 0
	}
	return uint64(math.Ceil(gas - gasEpsilon))
}

// MinInt returns the smaller of two ints
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// WeiToToken converts a wei amount into native token units (1 token = 10^18 wei)
func WeiToToken(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	tokenFloat := new(big.Float).SetInt(wei)
	divisor := new(big.Float).SetFloat64(1e18)
	result := new(big.Float).Quo(tokenFloat, divisor)
	value, _ := result.Float64()
	return value
}

// GasCostWei multiplies gas units by a price in wei
func GasCostWei(gas uint64, priceWei *big.Int) *big.Int {
	if priceWei == nil {
		return nil
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(gas), priceWei)
}
