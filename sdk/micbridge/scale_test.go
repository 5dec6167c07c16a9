package micbridge

import (
	"math"
	"testing"

	"github.com/leandrodaf/micbridge/sdk/contracts"
)

func TestToSlider(t *testing.T) {
	tests := []struct {
		name  string
		value int
		max   int
		want  int
	}{
		{"level zero", 0, 70, 0},
		{"level half rounds up", 35, 70, 128},
		{"level max", 70, 70, 255},
		{"level one", 1, 70, 4},
		{"gain half rounds up", 12, 24, 128},
		{"gain one", 1, 24, 11},
		{"gain max", 24, 24, 255},
		{"above max clamps", 90, 70, 255},
		{"negative clamps", -3, 70, 0},
		{"no max", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSlider(tt.value, tt.max); got != tt.want {
				t.Errorf("ToSlider(%d, %d) = %d, want %d", tt.value, tt.max, got, tt.want)
			}
		})
	}
}

func TestToDevice(t *testing.T) {
	tests := []struct {
		name   string
		slider int
		max    int
		want   int
	}{
		{"zero", 0, 70, 0},
		{"level middle", 128, 70, 35},
		{"level max", 255, 70, 70},
		{"gain middle", 128, 24, 12},
		{"gain max", 255, 24, 24},
		{"above range clamps", 300, 70, 70},
		{"negative clamps", -1, 24, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToDevice(tt.slider, tt.max); got != tt.want {
				t.Errorf("ToDevice(%d, %d) = %d, want %d", tt.slider, tt.max, got, tt.want)
			}
		})
	}
}

func TestScale_RoundTripWithinOneUnit(t *testing.T) {
	for _, unit := range []contracts.UnitMode{contracts.UnitLevel, contracts.UnitGain} {
		max := unit.Max()
		for v := 0; v <= max; v++ {
			back := ToDevice(ToSlider(v, max), max)
			if d := math.Abs(float64(back - v)); d > 1 {
				t.Errorf("%s: %d -> %d -> %d drifts by %v", unit, v, ToSlider(v, max), back, d)
			}
		}
	}
}

func TestScale_SliderCoversFullRange(t *testing.T) {
	for _, unit := range []contracts.UnitMode{contracts.UnitLevel, contracts.UnitGain} {
		max := unit.Max()
		prev := -1
		for v := 0; v <= max; v++ {
			s := ToSlider(v, max)
			if s < 0 || s > SliderMax {
				t.Fatalf("%s: ToSlider(%d) = %d out of range", unit, v, s)
			}
			if s <= prev {
				t.Fatalf("%s: ToSlider not increasing at %d (%d <= %d)", unit, v, s, prev)
			}
			prev = s
		}
	}
}
