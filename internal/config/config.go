package config

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMass               = 10.0
	DefaultRotationSpeed      = 1.0
	DefaultDiskTemperature    = 10000.0
	DefaultLensingIntensity   = 1.0
	DefaultStarCount          = 10000
	DefaultVibrationAmplitude = 0.1
	DefaultAccretionRate      = 0.1
	DefaultVignetteIntensity  = 1.0
	DefaultChromaticShift     = 0.02
	DefaultNoiseIntensity     = 0.1
)

// Config is the full parameter set of one render cycle. Values are treated as
// immutable: edits go through With, which returns a new Config.
type Config struct {
	Name               string  `yaml:"name" json:"name"`
	Description        string  `yaml:"description" json:"description"`
	Mass               float64 `yaml:"mass" json:"mass"`
	RotationSpeed      float64 `yaml:"rotation_speed" json:"rotation_speed"`
	DiskTemperature    float64 `yaml:"disk_temperature" json:"disk_temperature"`
	LensingIntensity   float64 `yaml:"lensing_intensity" json:"lensing_intensity"`
	StarCount          int     `yaml:"star_count" json:"star_count"`
	VibrationAmplitude float64 `yaml:"vibration_amplitude" json:"vibration_amplitude"`
	AccretionRate      float64 `yaml:"accretion_rate" json:"accretion_rate"`
	VignetteIntensity  float64 `yaml:"vignette_intensity" json:"vignette_intensity"`
	ChromaticShift     float64 `yaml:"chromatic_shift" json:"chromatic_shift"`
	NoiseIntensity     float64 `yaml:"noise_intensity" json:"noise_intensity"`
}

func DefaultConfig() Config {
	return Config{
		Name:               "Default",
		Description:        "Balanced standard configuration",
		Mass:               DefaultMass,
		RotationSpeed:      DefaultRotationSpeed,
		DiskTemperature:    DefaultDiskTemperature,
		LensingIntensity:   DefaultLensingIntensity,
		StarCount:          DefaultStarCount,
		VibrationAmplitude: DefaultVibrationAmplitude,
		AccretionRate:      DefaultAccretionRate,
		VignetteIntensity:  DefaultVignetteIntensity,
		ChromaticShift:     DefaultChromaticShift,
		NoiseIntensity:     DefaultNoiseIntensity,
	}
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults, so partial files are accepted.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as YAML to w.
func Write(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Get returns the value of a numeric parameter.
func (c Config) Get(p Param) (float64, error) {
	switch p {
	case Mass:
		return c.Mass, nil
	case RotationSpeed:
		return c.RotationSpeed, nil
	case DiskTemperature:
		return c.DiskTemperature, nil
	case LensingIntensity:
		return c.LensingIntensity, nil
	case StarCount:
		return float64(c.StarCount), nil
	case VibrationAmplitude:
		return c.VibrationAmplitude, nil
	case AccretionRate:
		return c.AccretionRate, nil
	case VignetteIntensity:
		return c.VignetteIntensity, nil
	case ChromaticShift:
		return c.ChromaticShift, nil
	case NoiseIntensity:
		return c.NoiseIntensity, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, string(p))
}

// With returns a copy of c with p set to value, clamped to its range.
// The receiver is left untouched.
func (c Config) With(p Param, value float64) (Config, error) {
	r, ok := RangeOf(p)
	if !ok {
		return c, fmt.Errorf("%w: %q", ErrUnknownParam, string(p))
	}
	if math.IsNaN(value) {
		return c, &ParamError{Param: p, Value: value, Wrapped: ErrOutOfRange}
	}
	v := r.Clamp(value)

	next := c
	switch p {
	case Mass:
		next.Mass = v
	case RotationSpeed:
		next.RotationSpeed = v
	case DiskTemperature:
		next.DiskTemperature = v
	case LensingIntensity:
		next.LensingIntensity = v
	case StarCount:
		next.StarCount = int(math.Round(v))
	case VibrationAmplitude:
		next.VibrationAmplitude = v
	case AccretionRate:
		next.AccretionRate = v
	case VignetteIntensity:
		next.VignetteIntensity = v
	case ChromaticShift:
		next.ChromaticShift = v
	case NoiseIntensity:
		next.NoiseIntensity = v
	}
	return next, nil
}

// Validate reports the first parameter outside its documented range.
func (c Config) Validate() error {
	for _, p := range Params() {
		v, _ := c.Get(p)
		if !Ranges[p].Contains(v) {
			return &ParamError{Param: p, Value: v, Wrapped: ErrOutOfRange}
		}
	}
	return nil
}

// Clamp forces every parameter into its range.
func (c Config) Clamp() Config {
	out := c
	for _, p := range Params() {
		v, _ := c.Get(p)
		out, _ = out.With(p, v)
	}
	return out
}
