package astro

import (
	"testing"
)

func TestTemperatureColorCool(t *testing.T) {
	c := TemperatureColor(1000)
	r, g, b := c.RGB255()
	if r != 255 || b != 0 {
		t.Errorf("expected red-only 1000K color, got %d,%d,%d", r, g, b)
	}
	if g != 68 {
		t.Errorf("expected green 68, got %d", g)
	}
}

func TestTemperatureColorHot(t *testing.T) {
	r, g, b := TemperatureColor(10000).RGB255()
	if b != 255 {
		t.Errorf("expected saturated blue at 10000K, got %d", b)
	}
	if r != 202 || g != 218 {
		t.Errorf("expected 202,218 at 10000K, got %d,%d", r, g)
	}
}

func TestTemperatureColorFloor(t *testing.T) {
	if TemperatureColor(10) != TemperatureColor(100) {
		t.Error("temperatures below 100K should clamp to the 100K color")
	}
	if TemperatureColor(-500) != TemperatureColor(0) {
		t.Error("negative temperatures should clamp")
	}
}

func TestGradientStops(t *testing.T) {
	stops := GradientStops(10000)
	if len(stops) != len(GradientSteps) {
		t.Fatalf("expected %d stops, got %d", len(GradientSteps), len(stops))
	}
	if stops[0] != TemperatureColor(10000) {
		t.Error("first stop should be the base temperature")
	}
	if stops[4] != TemperatureColor(1000) {
		t.Error("last stop should be a tenth of the base temperature")
	}
}

func TestSampleGradient(t *testing.T) {
	stops := GradientStops(8000)

	if SampleGradient(stops, -1) != stops[0] {
		t.Error("expected first stop below range")
	}
	if SampleGradient(stops, 2) != stops[len(stops)-1] {
		t.Error("expected last stop above range")
	}
	if SampleGradient(stops, 0.5) != stops[2] {
		t.Error("expected middle stop at t=0.5")
	}

	mid := SampleGradient(stops, 0.125)
	want := stops[0].BlendRgb(stops[1], 0.5)
	if mid.DistanceRgb(want) > 1e-9 {
		t.Errorf("expected halfway blend, got %v want %v", mid, want)
	}
}

func TestDiskGradient(t *testing.T) {
	img := DiskGradient(12000, 128)
	b := img.Bounds()
	if b.Dx() != 1 || b.Dy() != 128 {
		t.Fatalf("expected 1x128, got %dx%d", b.Dx(), b.Dy())
	}

	top := img.RGBAAt(0, 0)
	bottom := img.RGBAAt(0, 127)
	if top.A != 255 || bottom.A != 255 {
		t.Error("gradient should be opaque")
	}
	// Hot edge is bluer than the cold edge.
	if top.B <= bottom.B {
		t.Errorf("expected hotter top, top=%v bottom=%v", top, bottom)
	}
}
