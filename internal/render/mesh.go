package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/blackhole/internal/scene"
)

// gpuMesh keeps the Go-side buffers alive for as long as raylib references
// them through the mesh pointers.
type gpuMesh struct {
	mesh      rl.Mesh
	vertices  []float32
	normals   []float32
	texcoords []float32
	colors    []uint8
	indices   []uint16
	loaded    bool
}

func uploadIndexed(m *scene.Mesh) *gpuMesh {
	g := &gpuMesh{
		vertices:  m.Vertices,
		normals:   m.Normals,
		texcoords: m.Texcoords,
		colors:    solidColors(m.VertexCount()),
		indices:   m.Indices,
	}
	g.mesh = rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.TriangleCount()),
		Vertices:      &g.vertices[0],
		Normals:       &g.normals[0],
		Texcoords:     &g.texcoords[0],
		Colors:        &g.colors[0],
		Indices:       &g.indices[0],
	}
	rl.UploadMesh(&g.mesh, false)
	g.loaded = true
	return g
}

// uploadStars sends the whole star field as one non-indexed triangle list;
// large fields exceed the 16-bit index range.
func uploadStars(f *scene.StarField) *gpuMesh {
	if len(f.Stars) == 0 {
		return &gpuMesh{}
	}
	vertices, texcoords, colors := f.Quads()
	normals := make([]float32, len(vertices))
	for i := 0; i < len(vertices); i += 3 {
		n := mgl32.Vec3{vertices[i], vertices[i+1], vertices[i+2]}.Normalize().Mul(-1)
		copy(normals[i:i+3], n[:])
	}

	g := &gpuMesh{vertices: vertices, normals: normals, texcoords: texcoords, colors: colors}
	count := len(vertices) / 3
	g.mesh = rl.Mesh{
		VertexCount:   int32(count),
		TriangleCount: int32(count / 3),
		Vertices:      &g.vertices[0],
		Normals:       &g.normals[0],
		Texcoords:     &g.texcoords[0],
		Colors:        &g.colors[0],
	}
	rl.UploadMesh(&g.mesh, false)
	g.loaded = true
	return g
}

func (g *gpuMesh) draw(mat rl.Material, transform rl.Matrix) {
	if g == nil || !g.loaded {
		return
	}
	rl.DrawMesh(g.mesh, mat, transform)
}

func (g *gpuMesh) unload() {
	if g == nil || !g.loaded {
		return
	}
	rl.UnloadMesh(&g.mesh)
	g.loaded = false
}

func solidColors(n int) []uint8 {
	c := make([]uint8, n*4)
	for i := range c {
		c[i] = 255
	}
	return c
}

// toMatrix converts a column-major mgl32 matrix into raylib's layout.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
