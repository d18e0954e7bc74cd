package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FovY = 35.0 // degrees
	Near = 0.1
	Far  = 500.0

	orbitDamping   = 0.05
	orbitZoomSpeed = 0.4
	orbitRotSpeed  = 0.01
	minDistance    = 1.0
	maxDistance    = 200.0
	maxPolar       = math.Pi - 1e-3
	minPolar       = 1e-3
)

// DefaultEye is the starting camera position.
var DefaultEye = mgl32.Vec3{0, 3, 10}

// Orbit rotates a camera around the origin with inertia. Input accumulates
// into deltas that bleed off a little every frame.
type Orbit struct {
	Azimuth  float64 // around +Y, 0 looks down -Z
	Polar    float64 // from +Y
	Distance float64

	dAzimuth float64
	dPolar   float64
	scale    float64
}

func NewOrbit(eye mgl32.Vec3) *Orbit {
	o := &Orbit{scale: 1}
	r := float64(eye.Len())
	if r == 0 {
		r = float64(DefaultEye.Len())
		eye = DefaultEye
	}
	o.Distance = r
	o.Polar = math.Acos(float64(eye[1]) / r)
	o.Azimuth = math.Atan2(float64(eye[0]), float64(eye[2]))
	return o
}

// Drag feeds a pointer movement in pixels.
func (o *Orbit) Drag(dx, dy float64) {
	o.dAzimuth -= dx * orbitRotSpeed
	o.dPolar -= dy * orbitRotSpeed
}

// Zoom feeds wheel ticks; positive values move closer.
func (o *Orbit) Zoom(ticks float64) {
	if ticks == 0 {
		return
	}
	f := math.Pow(0.95, orbitZoomSpeed*math.Abs(ticks))
	if ticks > 0 {
		o.scale *= f
	} else {
		o.scale /= f
	}
}

// Update applies pending input with damping. Call once per frame.
func (o *Orbit) Update() {
	o.Azimuth += o.dAzimuth * orbitDamping
	o.Polar += o.dPolar * orbitDamping
	o.Polar = math.Min(math.Max(o.Polar, minPolar), maxPolar)
	o.Distance = math.Min(math.Max(o.Distance*o.scale, minDistance), maxDistance)

	o.dAzimuth *= 1 - orbitDamping
	o.dPolar *= 1 - orbitDamping
	if math.Abs(o.dAzimuth) < 1e-6 {
		o.dAzimuth = 0
	}
	if math.Abs(o.dPolar) < 1e-6 {
		o.dPolar = 0
	}
	o.scale = 1
}

// Eye returns the camera position in world space.
func (o *Orbit) Eye() mgl32.Vec3 {
	s := math.Sin(o.Polar)
	return mgl32.Vec3{
		float32(o.Distance * s * math.Sin(o.Azimuth)),
		float32(o.Distance * math.Cos(o.Polar)),
		float32(o.Distance * s * math.Cos(o.Azimuth)),
	}
}

// View is the complete camera for one frame.
type View struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Aspect float32
}

// NewView combines the orbit position, the jitter offset of the camera rig
// and the roll around the view axis. A positive roll turns counterclockwise
// about the camera's local +Z (pointing back at the viewer), tilting up
// toward screen left.
func NewView(eye, shake mgl32.Vec3, roll float64, aspect float32) View {
	back := eye.Normalize()
	up := mgl32.HomogRotate3D(float32(roll), back).Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	return View{
		Eye:    eye.Add(shake),
		Target: shake,
		Up:     up.Normalize(),
		Aspect: aspect,
	}
}

func (v View) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(v.Eye, v.Target, v.Up)
}

func (v View) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(FovY), v.Aspect, Near, Far)
}

// Convergence projects the world origin into [0,1]² screen coordinates with
// the origin at the bottom-left, which is where lensed light converges.
func (v View) Convergence() mgl32.Vec2 {
	clip := v.Projection().Mul4(v.ViewMatrix()).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if clip[3] == 0 {
		return mgl32.Vec2{0.5, 0.5}
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	return mgl32.Vec2{ndc[0]*0.5 + 0.5, ndc[1]*0.5 + 0.5}
}

// Billboard returns the model matrix that places a +Z-facing quad at pos and
// turns it toward the eye.
func Billboard(pos, eye, up mgl32.Vec3) mgl32.Mat4 {
	z := eye.Sub(pos)
	if z.Len() == 0 {
		return mgl32.Translate3D(pos[0], pos[1], pos[2])
	}
	z = z.Normalize()
	x := up.Cross(z)
	if x.Len() < 1e-6 {
		x = mgl32.Vec3{1, 0, 0}.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	m := mgl32.Ident4()
	m.SetCol(0, x.Vec4(0))
	m.SetCol(1, y.Vec4(0))
	m.SetCol(2, z.Vec4(0))
	m.SetCol(3, pos.Vec4(1))
	return m
}
