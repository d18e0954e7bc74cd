package config

import "math"

// Param names a numeric configuration parameter. The value matches its yaml key.
type Param string

const (
	Mass               Param = "mass"
	RotationSpeed      Param = "rotation_speed"
	DiskTemperature    Param = "disk_temperature"
	LensingIntensity   Param = "lensing_intensity"
	StarCount          Param = "star_count"
	VibrationAmplitude Param = "vibration_amplitude"
	AccretionRate      Param = "accretion_rate"
	VignetteIntensity  Param = "vignette_intensity"
	ChromaticShift     Param = "chromatic_shift"
	NoiseIntensity     Param = "noise_intensity"
)

type Range struct {
	Min   float64
	Max   float64
	Step  float64
	Unit  string
	Label string

	// Formula and Help describe the physics behind the parameter.
	Formula string
	Help    string
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Clamp(v float64) float64 {
	return math.Min(math.Max(v, r.Min), r.Max)
}

// Fraction maps v onto [0, 1] across the range.
func (r Range) Fraction(v float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}

var Ranges = map[Param]Range{
	Mass: {
		Min: 1, Max: 100, Step: 1, Unit: "M☉", Label: "Black hole mass",
		Formula: "rs = 2GM/c²",
		Help:    "Schwarzschild radius. Sets the size of the event horizon, where escape is impossible.",
	},
	RotationSpeed: {
		Min: 0.1, Max: 5.0, Step: 0.1, Unit: "c", Label: "Rotation speed",
		Formula: "v = √(GM/r)",
		Help:    "Keplerian orbital speed of the accretion disc.",
	},
	DiskTemperature: {
		Min: 1000, Max: 15000, Step: 100, Unit: "K", Label: "Disk temperature",
		Formula: "T ∝ (GM/r³)^(1/4)",
		Help:    "Shakura-Sunyaev thin disc. Temperature falls off as r^(-3/4).",
	},
	LensingIntensity: {
		Min: 0.1, Max: 3.0, Step: 0.1, Unit: "×", Label: "Gravitational lensing",
		Formula: "α = 4GM/(c²r)",
		Help:    "Deflection angle of light in general relativity. Drives the visible distortion.",
	},
	StarCount: {
		Min: 1000, Max: 50000, Step: 1000, Unit: "stars", Label: "Star density",
		Formula: "n = N/V",
		Help:    "Number of background stars in the field of view.",
	},
	VibrationAmplitude: {
		Min: 0, Max: 1, Step: 0.01, Unit: "h", Label: "Perturbations",
		Formula: "h ∝ G²M²/(c⁴r)",
		Help:    "Amplitude of gravitational waves and spacetime perturbations.",
	},
	AccretionRate: {
		Min: 0.01, Max: 1.0, Step: 0.01, Unit: "Ṁ", Label: "Accretion rate",
		Formula: "Ṁ = dM/dt",
		Help:    "Rate of infalling matter. Sets the brightness of the disc.",
	},
	VignetteIntensity: {
		Min: 0, Max: 2, Step: 0.1, Unit: "×", Label: "Vignette",
		Formula: "I ∝ cos⁴(θ)",
		Help:    "Darkening toward the frame edges from lensing and perspective.",
	},
	ChromaticShift: {
		Min: 0, Max: 0.1, Step: 0.001, Unit: "z", Label: "Gravitational redshift",
		Formula: "z = √[(1-3rs/r)/(1-2rs/r)] - 1",
		Help:    "Redshift caused by spacetime curvature near the hole.",
	},
	NoiseIntensity: {
		Min: 0, Max: 1, Step: 0.01, Unit: "σ", Label: "Disk turbulence",
		Formula: "Re = vL/ν",
		Help:    "Reynolds number of the magnetohydrodynamic turbulence in the disc.",
	},
}

var paramOrder = []Param{
	Mass, RotationSpeed, DiskTemperature, LensingIntensity, ChromaticShift,
	AccretionRate, StarCount, VibrationAmplitude, VignetteIntensity, NoiseIntensity,
}

// Params lists the numeric parameters in control-panel order.
func Params() []Param {
	out := make([]Param, len(paramOrder))
	copy(out, paramOrder)
	return out
}

func RangeOf(p Param) (Range, bool) {
	r, ok := Ranges[p]
	return r, ok
}
