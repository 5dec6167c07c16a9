package micbridge

import "math"

// SliderMax is the largest value a UI slider widget reports.
const SliderMax = 255

// ToSlider maps a device value in [0,max] onto the slider range [0,255].
// Halves round up.
func ToSlider(value, max int) int {
	if max <= 0 {
		return 0
	}
	mapped := int(math.Round(float64(value) / float64(max) * SliderMax))
	return clamp(mapped, 0, SliderMax)
}

// ToDevice maps a slider value in [0,255] back onto the device range [0,max].
// Out of range slider values are clamped first.
func ToDevice(slider, max int) int {
	if max <= 0 {
		return 0
	}
	slider = clamp(slider, 0, SliderMax)
	return int(math.Round(float64(slider) / SliderMax * float64(max)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
