package geo

import (
	"math"
	"testing"
)

func TestCapacityScaleBounds(t *testing.T) {
	inputs := []float64{-100, 0, 1, 50, 100, 500, 1000, 4000, 8000, 50000, 1e9}
	for _, mw := range inputs {
		s := CapacityScale(mw)
		if s < MinCapacityScale || s > MaxCapacityScale {
			t.Errorf("CapacityScale(%v) = %v outside [%v, %v]", mw, s, MinCapacityScale, MaxCapacityScale)
		}
	}
}

func TestCapacityScaleMonotonic(t *testing.T) {
	prev := 0.0
	for mw := 1.0; mw <= 20000; mw *= 1.3 {
		s := CapacityScale(mw)
		if s < prev {
			t.Fatalf("CapacityScale decreased at %v MW: %v < %v", mw, s, prev)
		}
		prev = s
	}
}

func TestCapacityScaleClampEnds(t *testing.T) {
	if got := CapacityScale(MinRefCapacityMW); math.Abs(got-MinCapacityScale) > 1e-9 {
		t.Errorf("scale at min reference = %v, want %v", got, MinCapacityScale)
	}
	if got := CapacityScale(MaxRefCapacityMW); math.Abs(got-MaxCapacityScale) > 1e-9 {
		t.Errorf("scale at max reference = %v, want %v", got, MaxCapacityScale)
	}
	// Outside the window the multiplier is constant.
	if CapacityScale(10) != CapacityScale(MinRefCapacityMW) {
		t.Error("below-window capacity should clamp to the min reference")
	}
	if CapacityScale(1e7) != CapacityScale(MaxRefCapacityMW) {
		t.Error("above-window capacity should clamp to the max reference")
	}
}

func TestCapacityScaleMissingUsesDefault(t *testing.T) {
	// A record with no capacity renders at the same size as one at the
	// configured default.
	if CapacityScale(0) != CapacityScale(DefaultCapacityMW) {
		t.Errorf("missing capacity scale %v != default capacity scale %v",
			CapacityScale(0), CapacityScale(DefaultCapacityMW))
	}
}
