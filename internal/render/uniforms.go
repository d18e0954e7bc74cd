package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
)

// FrameUniforms is every per-frame shader value, computed on the CPU
// before any pass runs.
type FrameUniforms struct {
	Time float32

	// disc
	Phase          float32
	Temperature    float32
	AccretionRate  float32
	NoiseIntensity float32

	// distortion
	Lensing             float32
	SchwarzschildRadius float32
	DiscRadius          float32

	// composite
	Convergence    mgl32.Vec2
	Vignette       float32
	ChromaticShift float32
	Mass           float32
}

// Uniforms maps a configuration, its derived quantities, the elapsed time
// and the projected hole centre to shader values. The disc always receives
// the mass- and accretion-adjusted base temperature.
func Uniforms(cfg config.Config, d astro.Derived, elapsed float64, convergence mgl32.Vec2) FrameUniforms {
	return FrameUniforms{
		Time: float32(elapsed),

		Phase:          float32(astro.DiskPhase(elapsed, cfg.RotationSpeed)),
		Temperature:    float32(d.BaseTemperature),
		AccretionRate:  float32(cfg.AccretionRate),
		NoiseIntensity: float32(cfg.NoiseIntensity),

		Lensing:             float32(cfg.LensingIntensity),
		SchwarzschildRadius: float32(d.SchwarzschildRadius),
		DiscRadius:          float32(d.OuterRadius),

		Convergence:    convergence,
		Vignette:       float32(cfg.VignetteIntensity),
		ChromaticShift: float32(cfg.ChromaticShift),
		Mass:           float32(cfg.Mass),
	}
}

// values returns the uniform assignments for one program, keyed by the
// names in programUniforms.
func (u FrameUniforms) values(program string) map[string][]float32 {
	switch program {
	case ProgramDisc:
		return map[string][]float32{
			"phase":          {u.Phase},
			"temperature":    {u.Temperature},
			"accretionRate":  {u.AccretionRate},
			"noiseIntensity": {u.NoiseIntensity},
		}
	case ProgramHole:
		return map[string][]float32{"lensing": {u.Lensing}}
	case ProgramDistortionDisc:
		return map[string][]float32{
			"lensing":             {u.Lensing},
			"schwarzschildRadius": {u.SchwarzschildRadius},
			"discRadius":          {u.DiscRadius},
		}
	case ProgramComposite:
		return map[string][]float32{
			"time":           {u.Time},
			"convergence":    {u.Convergence[0], u.Convergence[1]},
			"vignette":       {u.Vignette},
			"chromaticShift": {u.ChromaticShift},
			"lensing":        {u.Lensing},
			"mass":           {u.Mass},
		}
	}
	return nil
}
