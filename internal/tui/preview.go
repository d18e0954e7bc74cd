package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
)

// ramp orders glyphs from faint to bright.
var ramp = []rune(" .:-=+*#%@")

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// preview draws the disc seen from above as colored glyphs. The swirl turns
// with the rotation speed and roughens with the noise intensity.
func preview(cfg config.Config, d astro.Derived, elapsed float64, w, h int) string {
	stops := astro.GradientStops(d.BaseTemperature)
	phase := astro.DiskPhase(elapsed, cfg.RotationSpeed)

	// Fit the outer edge with a small margin, whatever the mass.
	scale := d.OuterRadius * 1.1 / (float64(w) / 2)

	var b strings.Builder
	for row := 0; row < h; row++ {
		b.WriteString("      ")
		for col := 0; col < w; col++ {
			x := (float64(col) - float64(w)/2 + 0.5) * scale
			y := (float64(row) - float64(h)/2 + 0.5) * scale * cellAspect
			b.WriteString(cell(x, y, d, stops, phase, cfg.NoiseIntensity))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cell(x, y float64, d astro.Derived, stops []colorful.Color, phase, noise float64) string {
	r := math.Hypot(x, y)
	if r < d.SchwarzschildRadius {
		return " "
	}
	if r < d.InnerRadius || r > d.OuterRadius {
		return dimmer.Render("·")
	}

	v := (r - d.InnerRadius) / (d.OuterRadius - d.InnerRadius)
	angle := math.Atan2(y, x)
	swirl := 0.5 + 0.5*math.Sin(angle*3-phase*2/(0.3+v)+v*10)
	intensity := (1 - v*0.7) * (1 - noise + noise*swirl)

	i := int(intensity * float64(len(ramp)-1))
	if i < 1 {
		i = 1
	}
	if i > len(ramp)-1 {
		i = len(ramp) - 1
	}
	c := astro.SampleGradient(stops, v).Clamped()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(ramp[i]))
}
