package config

import (
	"fmt"
	"math/rand"
)

// Presets holds the built-in configurations. The default configuration is
// always first so that selecting index 0 restores the original values.
var Presets = []Config{
	DefaultConfig(),
	{
		Name:        "Sagittarius A*",
		Description: "Supermassive black hole at the center of the Milky Way (4.1 × 10⁶ M☉, scaled down)",
		Mass:        60, RotationSpeed: 0.8, DiskTemperature: 12000, LensingIntensity: 1.2,
		StarCount: 25000, VibrationAmplitude: 0.05, AccretionRate: 0.15,
		VignetteIntensity: 1.1, ChromaticShift: 0.025, NoiseIntensity: 0.08,
	},
	{
		Name:        "M87* (Event Horizon Telescope)",
		Description: "Supermassive black hole imaged by the EHT (6.5 × 10⁹ M☉, scaled down)",
		Mass:        100, RotationSpeed: 1.2, DiskTemperature: 15000, LensingIntensity: 1.5,
		StarCount: 30000, VibrationAmplitude: 0.03, AccretionRate: 0.25,
		VignetteIntensity: 1.3, ChromaticShift: 0.035, NoiseIntensity: 0.06,
	},
	{
		Name:        "Stellar Black Hole",
		Description: "Black hole formed by stellar collapse (typically 5-25 M☉)",
		Mass:        15, RotationSpeed: 1.5, DiskTemperature: 8000, LensingIntensity: 1.0,
		StarCount: 15000, VibrationAmplitude: 0.15, AccretionRate: 0.3,
		VignetteIntensity: 0.9, ChromaticShift: 0.02, NoiseIntensity: 0.12,
	},
	{
		Name:        "Intermediate Black Hole",
		Description: "Mass between stellar and supermassive",
		Mass:        40, RotationSpeed: 1.0, DiskTemperature: 10000, LensingIntensity: 1.1,
		StarCount: 20000, VibrationAmplitude: 0.08, AccretionRate: 0.2,
		VignetteIntensity: 1.0, ChromaticShift: 0.022, NoiseIntensity: 0.1,
	},
	{
		Name:        "Classroom",
		Description: "Tuned for classroom demos with visible but realistic effects",
		Mass:        20, RotationSpeed: 1.2, DiskTemperature: 10000, LensingIntensity: 1.3,
		StarCount: 18000, VibrationAmplitude: 0.1, AccretionRate: 0.25,
		VignetteIntensity: 1.1, ChromaticShift: 0.025, NoiseIntensity: 0.1,
	},
	{
		Name:        "Outreach",
		Description: "Maximum visual impact for public presentations",
		Mass:        80, RotationSpeed: 2.5, DiskTemperature: 14000, LensingIntensity: 2.2,
		StarCount: 35000, VibrationAmplitude: 0.2, AccretionRate: 0.4,
		VignetteIntensity: 1.5, ChromaticShift: 0.04, NoiseIntensity: 0.15,
	},
	{
		Name:        "Pure Science",
		Description: "Physically grounded parameters without exaggerated effects",
		Mass:        25, RotationSpeed: 1.0, DiskTemperature: 9500, LensingIntensity: 1.0,
		StarCount: 12000, VibrationAmplitude: 0.02, AccretionRate: 0.15,
		VignetteIntensity: 0.8, ChromaticShift: 0.015, NoiseIntensity: 0.05,
	},
	{
		Name:        "Extreme",
		Description: "Maximum mass and effects to explore the limits",
		Mass:        100, RotationSpeed: 3.0, DiskTemperature: 15000, LensingIntensity: 3.0,
		StarCount: 50000, VibrationAmplitude: 0.25, AccretionRate: 0.6,
		VignetteIntensity: 2.0, ChromaticShift: 0.06, NoiseIntensity: 0.2,
	},
	{
		Name:        "Minimal",
		Description: "Minimum mass to study the lower limits",
		Mass:        3, RotationSpeed: 0.5, DiskTemperature: 5000, LensingIntensity: 0.8,
		StarCount: 8000, VibrationAmplitude: 0.25, AccretionRate: 0.1,
		VignetteIntensity: 0.7, ChromaticShift: 0.01, NoiseIntensity: 0.15,
	},
	{
		Name:        "Merger Event",
		Description: "Two black holes merging with intense perturbations",
		Mass:        50, RotationSpeed: 4.0, DiskTemperature: 13000, LensingIntensity: 2.5,
		StarCount: 25000, VibrationAmplitude: 1.0, AccretionRate: 0.8,
		VignetteIntensity: 1.4, ChromaticShift: 0.05, NoiseIntensity: 0.3,
	},
}

func GetPreset(name string) (Config, error) {
	for _, p := range Presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Config{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, ListPresets())
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for _, p := range Presets {
		names = append(names, p.Name)
	}
	return names
}

// PresetIndex returns the position of the named preset, or -1.
func PresetIndex(name string) int {
	for i, p := range Presets {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// RandomPresetName asks Resolve for a preset picked at random.
const RandomPresetName = "random"

func RandomPreset(rng *rand.Rand) Config {
	return Presets[rng.Intn(len(Presets))]
}
