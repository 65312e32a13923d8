package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// fastSqrt computes sqrt for float32 values.
func fastSqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
