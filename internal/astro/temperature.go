package astro

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// GradientHeight is the texel height of the disk gradient texture.
const GradientHeight = 128

// GradientSteps are the temperature fractions from the hot inner edge to the
// cold outer edge of the disk.
var GradientSteps = []float64{1.0, 0.7, 0.5, 0.3, 0.1}

// TemperatureColor approximates the color of a black body at the given
// temperature in Kelvin (Tanner Helland's fit). Channels are rounded to
// 8-bit values.
func TemperatureColor(kelvin float64) colorful.Color {
	temp := math.Max(kelvin/100, 1)

	var r, g, b float64
	if temp <= 66 {
		r = 255
		g = 99.4708025861*math.Log(temp) - 161.1195681661
		if temp <= 19 {
			b = 0
		} else {
			b = 138.5177312231*math.Log(temp-10) - 305.0447927307
		}
	} else {
		r = 329.698727446 * math.Pow(temp-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(temp-60, -0.0755148492)
		b = 255
	}

	return colorful.Color{
		R: channel(r),
		G: channel(g),
		B: channel(b),
	}
}

func channel(v float64) float64 {
	v = math.Min(math.Max(v, 0), 255)
	return math.Round(v) / 255
}

// GradientStops returns the stop colors for a base temperature.
func GradientStops(base float64) []colorful.Color {
	stops := make([]colorful.Color, len(GradientSteps))
	for i, p := range GradientSteps {
		stops[i] = TemperatureColor(base * p)
	}
	return stops
}

// SampleGradient evaluates evenly spaced stops at t in [0, 1].
func SampleGradient(stops []colorful.Color, t float64) colorful.Color {
	if len(stops) == 0 {
		return colorful.Color{}
	}
	if len(stops) == 1 || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	return stops[i].BlendRgb(stops[i+1], pos-float64(i))
}

// DiskGradient renders a 1×height vertical gradient, hot at the top row.
func DiskGradient(base float64, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, height))
	stops := GradientStops(base)
	for y := 0; y < height; y++ {
		t := (float64(y) + 0.5) / float64(height)
		r, g, b := SampleGradient(stops, t).Clamped().RGB255()
		img.SetRGBA(0, y, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return img
}
