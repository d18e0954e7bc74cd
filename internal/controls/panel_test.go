package controls

import (
	"errors"
	"testing"

	"github.com/san-kum/blackhole/internal/config"
)

func TestPanelIncreaseDecrease(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	p.Select(config.RotationSpeed)

	if !p.Increase(false) {
		t.Fatal("expected change")
	}
	if got := p.Config().RotationSpeed; got != 1.1 {
		t.Errorf("expected 1.1, got %v", got)
	}

	p.Decrease(true)
	if got := p.Config().RotationSpeed; got != 0.1 {
		t.Errorf("expected 0.1 after coarse decrease, got %v", got)
	}

	// Clamped at the minimum, nothing changes.
	if p.Decrease(false) {
		t.Error("expected no change at the minimum")
	}
}

func TestPanelEditDoesNotMutatePrevious(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	before := p.Config()

	p.Select(config.Mass)
	p.Increase(true)

	if before.Mass != config.DefaultMass {
		t.Errorf("previous config mutated: mass %v", before.Mass)
	}
	if p.Config().Mass != config.DefaultMass+10 {
		t.Errorf("expected mass %v, got %v", config.DefaultMass+10, p.Config().Mass)
	}
}

func TestPanelStarCountStep(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	p.Select(config.StarCount)
	p.Increase(false)
	if p.Config().StarCount != config.DefaultStarCount+1000 {
		t.Errorf("expected %d stars, got %d", config.DefaultStarCount+1000, p.Config().StarCount)
	}
}

func TestPanelNavigationWraps(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	n := len(config.Params())

	p.Prev()
	if _, ok := p.Selected(); ok {
		t.Error("expected preset row after wrapping backwards")
	}
	p.Next()
	if param, _ := p.Selected(); param != config.Params()[0] {
		t.Errorf("expected first param, got %s", param)
	}

	for i := 0; i < n+1; i++ {
		p.Next()
	}
	if param, _ := p.Selected(); param != config.Params()[0] {
		t.Errorf("expected full cycle back to first param, got %s", param)
	}
}

func TestPanelPresetRow(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	p.Prev()

	p.Increase(false)
	if p.Preset() != config.Presets[1].Name {
		t.Errorf("expected %s, got %s", config.Presets[1].Name, p.Preset())
	}
	p.Decrease(false)
	p.Decrease(false)
	if p.Preset() != config.Presets[len(config.Presets)-1].Name {
		t.Errorf("expected wrap to last preset, got %s", p.Preset())
	}
}

func TestPanelSetPreset(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	if err := p.SetPreset("Extreme"); err != nil {
		t.Fatal(err)
	}
	if p.Config().Mass != 100 {
		t.Errorf("expected mass 100, got %v", p.Config().Mass)
	}

	err := p.SetPreset("nope")
	if !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPanelReset(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	p.SetPreset("Minimal")
	if !p.Reset() {
		t.Error("expected reset to change the config")
	}
	if p.Config() != config.DefaultConfig() {
		t.Error("expected default config after reset")
	}
	if p.Reset() {
		t.Error("second reset should be a no-op")
	}
}

func TestPanelCustomConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Name = "Mine"
	p := NewPanel(cfg)
	if p.Preset() != "" {
		t.Errorf("expected custom config, got preset %q", p.Preset())
	}

	rows := p.Rows()
	last := rows[len(rows)-1]
	if last.Value != "Mine (custom)" {
		t.Errorf("expected custom label, got %q", last.Value)
	}

	p.NextPreset()
	if p.Preset() != config.Presets[0].Name {
		t.Errorf("expected first preset, got %q", p.Preset())
	}
}

func TestRows(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	rows := p.Rows()
	if len(rows) != len(config.Params())+1 {
		t.Fatalf("expected %d rows, got %d", len(config.Params())+1, len(rows))
	}
	if !rows[0].Selected {
		t.Error("expected first row selected")
	}
	for _, r := range rows[:len(rows)-1] {
		if r.Fraction < 0 || r.Fraction > 1 {
			t.Errorf("%s: fraction %f out of range", r.Param, r.Fraction)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		param config.Param
		value float64
		want  string
	}{
		{config.StarCount, 10000, "10000 stars"},
		{config.Mass, 10, "10.00 M☉"},
		{config.ChromaticShift, 0.025, "0.03 z"},
		{config.DiskTemperature, 6500, "6500.00 K"},
	}
	for _, tt := range tests {
		if got := Format(tt.param, tt.value); got != tt.want {
			t.Errorf("Format(%s, %v) = %q, want %q", tt.param, tt.value, got, tt.want)
		}
	}
}

func TestSnap(t *testing.T) {
	if got := snap(0.1+0.2, 0.1); got != 0.3 {
		t.Errorf("expected 0.3, got %v", got)
	}
	if got := snap(0.0249999, 0.001); got != 0.025 {
		t.Errorf("expected 0.025, got %v", got)
	}
}

func TestPanelEditLeavesPreset(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	if err := p.SetPreset("Sagittarius A*"); err != nil {
		t.Fatal(err)
	}
	p.Select(config.Mass)
	p.Increase(false)

	if p.Preset() != "" {
		t.Errorf("expected custom config after an edit, got preset %q", p.Preset())
	}
	rows := p.Rows()
	if got := rows[len(rows)-1].Value; got != "Sagittarius A* (custom)" {
		t.Errorf("expected custom label, got %q", got)
	}

	p.Decrease(false)
	if p.Preset() != "Sagittarius A*" {
		t.Errorf("expected preset back once values match, got %q", p.Preset())
	}
}

func TestPanelSetModifiedPreset(t *testing.T) {
	cfg, _ := config.GetPreset("Extreme")
	cfg.Mass = 50
	p := NewPanel(cfg)
	if p.Preset() != "" {
		t.Errorf("expected a modified preset to load as custom, got %q", p.Preset())
	}
}

func TestRowsCarryHelp(t *testing.T) {
	p := NewPanel(config.DefaultConfig())
	for _, r := range p.Rows() {
		if r.Param == "" {
			if r.Help != config.DefaultConfig().Description {
				t.Errorf("expected preset description on the preset row, got %q", r.Help)
			}
			continue
		}
		if r.Formula == "" || r.Help == "" {
			t.Errorf("%s: missing formula or help", r.Param)
		}
	}
}
