package astro

import (
	"math"

	"github.com/san-kum/blackhole/internal/config"
)

const (
	// RadiusPerSolarMass scales mass into scene units.
	RadiusPerSolarMass = 0.05

	InnerRadiusFactor = 3.0
	OuterRadiusFactor = 12.0

	// ReferenceMass is the mass at which the temperature is not rescaled.
	ReferenceMass = 10.0

	rollPerMass = 0.2 / 50.0
)

// Derived holds geometry and uniform inputs computed from a config.
type Derived struct {
	SchwarzschildRadius float64
	InnerRadius         float64
	OuterRadius         float64
	HoleSize            float64 // side of the horizon billboard
	DistortionDiscSize  float64 // side of the lensing plane, covers the whole disk
	BaseTemperature     float64
	Roll                float64
}

func Derive(cfg config.Config) Derived {
	rs := SchwarzschildRadius(cfg.Mass)
	outer := rs * OuterRadiusFactor
	return Derived{
		SchwarzschildRadius: rs,
		InnerRadius:         rs * InnerRadiusFactor,
		OuterRadius:         outer,
		HoleSize:            rs * 2,
		DistortionDiscSize:  outer * 2,
		BaseTemperature:     BaseTemperature(cfg.DiskTemperature, cfg.Mass, cfg.AccretionRate),
		Roll:                CameraRoll(cfg.Mass),
	}
}

func SchwarzschildRadius(mass float64) float64 {
	return mass * RadiusPerSolarMass
}

// BaseTemperature scales the peak disk temperature by mass and accretion
// rate, both with a quarter power.
func BaseTemperature(peak, mass, accretion float64) float64 {
	massFactor := math.Pow(mass/ReferenceMass, 0.25)
	accretionFactor := math.Pow(accretion, 0.25)
	return peak * massFactor * accretionFactor
}

// CameraRoll is the fixed roll of the camera around its view axis, in radians.
func CameraRoll(mass float64) float64 {
	return mass * rollPerMass
}

// DiskPhase is the animation clock fed to the disk shader.
func DiskPhase(elapsed, rotationSpeed float64) float64 {
	return elapsed * rotationSpeed
}

// SameGeometry reports whether two configs produce identical disk meshes.
func SameGeometry(a, b config.Config) bool {
	return a.Mass == b.Mass
}

// SameGradient reports whether two configs produce identical disk gradients.
func SameGradient(a, b config.Config) bool {
	return a.Mass == b.Mass && a.DiskTemperature == b.DiskTemperature && a.AccretionRate == b.AccretionRate
}

// TemperatureProfile samples the thin-disk temperature T(r) = T₀·(r_in/r)^¾
// at n radii from the inner to the outer edge.
func TemperatureProfile(d Derived, n int) []float64 {
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	for i := range out {
		r := d.InnerRadius + (d.OuterRadius-d.InnerRadius)*float64(i)/float64(n-1)
		out[i] = d.BaseTemperature * math.Pow(d.InnerRadius/r, 0.75)
	}
	return out
}
