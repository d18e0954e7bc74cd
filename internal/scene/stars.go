package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	StarRadius = 400.0

	starMinSize   = 0.5
	starSizeRange = 30.0

	// starPixelScale converts a star size attribute into world units on the
	// star sphere.
	starPixelScale = 0.04
)

type Star struct {
	Position mgl32.Vec3
	Size     float32
	Color    colorful.Color
}

// StarField is the background sky, generated once per star count.
type StarField struct {
	Stars []Star
}

// NewStarField distributes count stars uniformly over a sphere of radius
// StarRadius. Colors span every hue at full saturation and 80-100% lightness.
func NewStarField(count int, rng *rand.Rand) *StarField {
	stars := make([]Star, count)
	for i := range stars {
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Acos(2*rng.Float64() - 1)

		pos := mgl32.Vec3{
			float32(math.Cos(theta) * math.Sin(phi) * StarRadius),
			float32(math.Sin(theta) * math.Sin(phi) * StarRadius),
			float32(math.Cos(phi) * StarRadius),
		}

		hue := math.Round(rng.Float64() * 360)
		lightness := math.Round(80+rng.Float64()*20) / 100

		stars[i] = Star{
			Position: pos,
			Size:     float32(starMinSize + rng.Float64()*starSizeRange),
			Color:    colorful.Hsl(math.Mod(hue, 360), 1, lightness),
		}
	}
	return &StarField{Stars: stars}
}

// Quads expands every star into two triangles tangent to the star sphere so
// the whole field renders in one draw call. It returns per-vertex positions
// (xyz), texture coordinates (uv) and colors (rgba).
func (f *StarField) Quads() (vertices []float32, texcoords []float32, colors []uint8) {
	n := len(f.Stars) * 6
	vertices = make([]float32, 0, n*3)
	texcoords = make([]float32, 0, n*2)
	colors = make([]uint8, 0, n*4)

	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}

	for _, s := range f.Stars {
		normal := s.Position.Normalize()
		right, up := tangentBasis(normal)
		half := s.Size * starPixelScale

		r, g, b := s.Color.Clamped().RGB255()
		for _, c := range corners {
			p := s.Position.Add(right.Mul(c[0] * half)).Add(up.Mul(c[1] * half))
			vertices = append(vertices, p[0], p[1], p[2])
			texcoords = append(texcoords, (c[0]+1)/2, (c[1]+1)/2)
			colors = append(colors, r, g, b, 255)
		}
	}
	return vertices, texcoords, colors
}

// tangentBasis returns two unit vectors orthogonal to n and to each other.
func tangentBasis(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	ref := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(n.Dot(ref))) > 0.99 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	right := ref.Cross(n).Normalize()
	up := n.Cross(right)
	return right, up
}
