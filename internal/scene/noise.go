package scene

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
)

const NoiseSize = 256

// noiseOctaves sets the feature count across the tile for the R, G and B
// channels respectively.
var noiseOctaves = [3]float64{4, 8, 16}

// NoiseTexture renders three channels of Perlin noise into a size×size tile
// that wraps seamlessly in both directions, so the disk shader can scroll it
// with repeat addressing.
func NoiseTexture(size int, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	gens := [3]*perlin.Perlin{}
	for i := range gens {
		gens[i] = perlin.NewPerlin(2, 2, 3, seed+int64(i))
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var px [3]uint8
			for ch, g := range gens {
				n := tileable(g, float64(x)/float64(size), float64(y)/float64(size), noiseOctaves[ch])
				px[ch] = uint8(math.Round(clamp01(n*0.5+0.5) * 255))
			}
			img.SetRGBA(x, y, color.RGBA{R: px[0], G: px[1], B: px[2], A: 255})
		}
	}
	return img
}

// tileable blends four shifted samples so that the result at u=0 equals the
// result at u=1 (and likewise for v).
func tileable(g *perlin.Perlin, u, v, freq float64) float64 {
	x, y := u*freq, v*freq
	a := g.Noise2D(x, y)
	b := g.Noise2D(x-freq, y)
	c := g.Noise2D(x, y-freq)
	d := g.Noise2D(x-freq, y-freq)
	return a*(1-u)*(1-v) + b*u*(1-v) + c*(1-u)*v + d*u*v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
