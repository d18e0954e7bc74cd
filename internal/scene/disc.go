package scene

import "math"

const (
	DiscRadialSegments = 64
	DiscRings          = 8
)

// Mesh is an indexed triangle list in the layout the GPU expects.
type Mesh struct {
	Vertices  []float32 // xyz
	Normals   []float32 // xyz
	Texcoords []float32 // uv
	Indices   []uint16
}

func (m *Mesh) VertexCount() int   { return len(m.Vertices) / 3 }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// NewDisc builds a flat open annulus in the XZ plane between inner and outer.
// u runs around the ring, v runs from the inner edge (0) to the outer edge (1).
func NewDisc(inner, outer float64, radialSegments, rings int) *Mesh {
	m := &Mesh{}
	for ring := 0; ring <= rings; ring++ {
		v := float64(ring) / float64(rings)
		radius := inner + v*(outer-inner)
		for seg := 0; seg <= radialSegments; seg++ {
			u := float64(seg) / float64(radialSegments)
			theta := u * 2 * math.Pi

			m.Vertices = append(m.Vertices,
				float32(radius*math.Sin(theta)), 0, float32(radius*math.Cos(theta)))
			m.Normals = append(m.Normals, 0, 1, 0)
			m.Texcoords = append(m.Texcoords, float32(u), float32(v))
		}
	}

	stride := radialSegments + 1
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < radialSegments; seg++ {
			a := uint16(ring*stride + seg)
			b := uint16((ring+1)*stride + seg)
			c := uint16((ring+1)*stride + seg + 1)
			d := uint16(ring*stride + seg + 1)
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	return m
}

// NewQuad builds a size×size square in the XY plane facing +Z.
func NewQuad(size float64) *Mesh {
	h := float32(size / 2)
	return &Mesh{
		Vertices:  []float32{-h, -h, 0, h, -h, 0, h, h, 0, -h, h, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
		Texcoords: []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Indices:   []uint16{0, 1, 2, 0, 2, 3},
	}
}
