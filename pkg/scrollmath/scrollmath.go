// Package scrollmath provides the numeric helpers shared by the scroll engine.
package scrollmath

// Lerp linearly interpolates between start and end.
func Lerp(start, end, t float64) float64 {
	return start + (end-start)*t
}

// Clamp limits value to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// MapRange maps value from [inMin, inMax] onto [outMin, outMax] without clamping.
// A zero-width input range maps to outMax once value reaches inMin.
func MapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		if value >= inMin {
			return outMax
		}
		return outMin
	}
	return outMin + (outMax-outMin)*((value-inMin)/(inMax-inMin))
}

// Normalize returns the clamped position of value inside [start, end] as 0..1.
// A zero-width or inverted range resolves to 1 once value reaches start.
func Normalize(value, start, end float64) float64 {
	if value <= start {
		if value == start && end <= start {
			return 1
		}
		return 0
	}
	if value >= end {
		return 1
	}
	return (value - start) / (end - start)
}
