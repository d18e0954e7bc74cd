package render

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
)

func TestUniformsDefault(t *testing.T) {
	cfg := config.DefaultConfig()
	d := astro.Derive(cfg)
	u := Uniforms(cfg, d, 2, mgl32.Vec2{0.5, 0.5})

	if u.Time != 2 {
		t.Errorf("expected time 2, got %f", u.Time)
	}
	if u.Phase != float32(2*cfg.RotationSpeed) {
		t.Errorf("expected phase %f, got %f", 2*cfg.RotationSpeed, u.Phase)
	}
	if u.SchwarzschildRadius != 0.5 {
		t.Errorf("expected rs 0.5, got %f", u.SchwarzschildRadius)
	}
	if u.DiscRadius != 6 {
		t.Errorf("expected disc radius 6, got %f", u.DiscRadius)
	}
	if u.Mass != 10 || u.Lensing != 1 {
		t.Errorf("expected mass 10 and lensing 1, got %f and %f", u.Mass, u.Lensing)
	}
}

func TestUniformsUseBaseTemperature(t *testing.T) {
	cfg, err := config.GetPreset("Extreme")
	if err != nil {
		t.Fatal(err)
	}
	d := astro.Derive(cfg)
	u := Uniforms(cfg, d, 0, mgl32.Vec2{})

	if math.Abs(float64(u.Temperature)-d.BaseTemperature) > 0.5 {
		t.Errorf("expected base temperature %f, got %f", d.BaseTemperature, u.Temperature)
	}
	if float64(u.Temperature) == cfg.DiskTemperature {
		t.Errorf("expected temperature adjusted for mass and accretion")
	}
}

func TestUniformsPhaseScalesWithSpeed(t *testing.T) {
	slow := config.DefaultConfig()
	fast, err := slow.With(config.RotationSpeed, 4)
	if err != nil {
		t.Fatal(err)
	}

	a := Uniforms(slow, astro.Derive(slow), 10, mgl32.Vec2{})
	b := Uniforms(fast, astro.Derive(fast), 10, mgl32.Vec2{})
	if b.Phase <= a.Phase {
		t.Errorf("expected faster phase, got %f vs %f", b.Phase, a.Phase)
	}
	if a.Time != b.Time {
		t.Errorf("time should not depend on rotation speed")
	}
}

func TestProgramValuesMatchDeclaredUniforms(t *testing.T) {
	u := Uniforms(config.DefaultConfig(), astro.Derive(config.DefaultConfig()), 1, mgl32.Vec2{0.3, 0.7})

	for _, name := range programNames {
		declared := make(map[string]bool)
		for _, n := range programUniforms[name] {
			declared[n] = true
		}
		for k := range u.values(name) {
			if !declared[k] {
				t.Errorf("%s: value %q has no declared uniform", name, k)
			}
		}
	}

	conv := u.values(ProgramComposite)["convergence"]
	if len(conv) != 2 || conv[0] != 0.3 || conv[1] != 0.7 {
		t.Errorf("expected convergence [0.3 0.7], got %v", conv)
	}
}

func TestShaderSources(t *testing.T) {
	for _, name := range programNames {
		vs, fs, err := ShaderSource(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !strings.HasPrefix(vs, "#version 330") || !strings.HasPrefix(fs, "#version 330") {
			t.Errorf("%s: expected GLSL 330 sources", name)
		}
		for _, u := range programUniforms[name] {
			if !strings.Contains(vs+fs, u) {
				t.Errorf("%s: uniform %q not referenced in source", name, u)
			}
		}
	}

	if _, _, err := ShaderSource("missing"); err == nil {
		t.Error("expected error for a missing program")
	}
}

func TestToMatrixLayout(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	r := toMatrix(m)
	if r.M12 != 1 || r.M13 != 2 || r.M14 != 3 || r.M15 != 1 {
		t.Errorf("expected translation in M12..M14, got %v", r)
	}
}
