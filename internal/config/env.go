package config

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env carries process-level defaults that CLI flags may override.
type Env struct {
	Preset     string
	ConfigPath string
	DataDir    string
	LogLevel   string
}

// LoadEnv reads an optional .env file and then the process environment.
func LoadEnv(files ...string) Env {
	// A missing .env is normal; the real environment still applies.
	_ = godotenv.Load(files...)

	return Env{
		Preset:     GetEnv("BLACKHOLE_PRESET", DefaultConfig().Name),
		ConfigPath: GetEnv("BLACKHOLE_CONFIG", ""),
		DataDir:    GetEnv("BLACKHOLE_DATA", ".blackhole"),
		LogLevel:   GetEnv("BLACKHOLE_LOG_LEVEL", "info"),
	}
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// Resolve picks the starting configuration: an explicit file wins over a
// preset name. The name "random" picks any preset.
func Resolve(path, preset string) (Config, error) {
	if path != "" {
		cfg, err := Load(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	switch {
	case preset == "":
		return DefaultConfig(), nil
	case strings.EqualFold(preset, RandomPresetName):
		return RandomPreset(rand.New(rand.NewSource(time.Now().UnixNano()))), nil
	}
	return GetPreset(preset)
}
