// Package controls holds the state of the parameter panel shared by the
// window overlay and the terminal tuner. Every edit produces a new config.
package controls

import (
	"fmt"
	"math"

	"github.com/san-kum/blackhole/internal/config"
)

// CoarseFactor multiplies the parameter step for coarse edits.
const CoarseFactor = 10

type Panel struct {
	cfg      config.Config
	params   []config.Param
	selected int // len(params) selects the preset row
	preset   int // index into config.Presets, -1 when loaded from elsewhere
}

func NewPanel(cfg config.Config) *Panel {
	p := &Panel{params: config.Params()}
	p.Set(cfg)
	return p
}

// Set replaces the edited config, e.g. after a hot reload.
func (p *Panel) Set(cfg config.Config) {
	p.cfg = cfg.Clamp()
	p.preset = matchPreset(p.cfg)
}

// matchPreset returns the index of the preset cfg is an unmodified copy of,
// or -1 once any value differs from the named preset.
func matchPreset(cfg config.Config) int {
	i := config.PresetIndex(cfg.Name)
	if i < 0 || config.Presets[i] != cfg {
		return -1
	}
	return i
}

func (p *Panel) Config() config.Config { return p.cfg }

// Preset returns the name of the active preset, or "" for a custom config.
func (p *Panel) Preset() string {
	if p.preset < 0 {
		return ""
	}
	return config.Presets[p.preset].Name
}

// Selected returns the parameter under the cursor; ok is false on the
// preset row.
func (p *Panel) Selected() (param config.Param, ok bool) {
	if p.selected >= len(p.params) {
		return "", false
	}
	return p.params[p.selected], true
}

func (p *Panel) Next() {
	p.selected = (p.selected + 1) % (len(p.params) + 1)
}

func (p *Panel) Prev() {
	p.selected = (p.selected + len(p.params)) % (len(p.params) + 1)
}

// Select moves the cursor to a parameter.
func (p *Panel) Select(param config.Param) bool {
	for i, q := range p.params {
		if q == param {
			p.selected = i
			return true
		}
	}
	return false
}

func (p *Panel) Increase(coarse bool) bool { return p.step(1, coarse) }
func (p *Panel) Decrease(coarse bool) bool { return p.step(-1, coarse) }

func (p *Panel) step(dir float64, coarse bool) bool {
	param, ok := p.Selected()
	if !ok {
		if dir > 0 {
			return p.NextPreset()
		}
		return p.PrevPreset()
	}

	r, _ := config.RangeOf(param)
	delta := r.Step * dir
	if coarse {
		delta *= CoarseFactor
	}
	cur, _ := p.cfg.Get(param)
	return p.SetValue(param, snap(cur+delta, r.Step))
}

// SetValue replaces one parameter and reports whether the config changed.
func (p *Panel) SetValue(param config.Param, value float64) bool {
	next, err := p.cfg.With(param, value)
	if err != nil || next == p.cfg {
		return false
	}
	p.cfg = next
	p.preset = matchPreset(next)
	return true
}

func (p *Panel) NextPreset() bool { return p.cyclePreset(1) }
func (p *Panel) PrevPreset() bool { return p.cyclePreset(-1) }

func (p *Panel) cyclePreset(dir int) bool {
	n := len(config.Presets)
	i := p.preset
	if i < 0 {
		i = 0
		if dir < 0 {
			i = n - 1
		}
	} else {
		i = (i + dir + n) % n
	}
	return p.usePreset(i)
}

// SetPreset loads a preset by name.
func (p *Panel) SetPreset(name string) error {
	i := config.PresetIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", config.ErrUnknownPreset, name)
	}
	p.usePreset(i)
	return nil
}

func (p *Panel) usePreset(i int) bool {
	changed := p.cfg != config.Presets[i]
	p.cfg = config.Presets[i]
	p.preset = i
	return changed
}

// Reset returns to the default configuration.
func (p *Panel) Reset() bool {
	return p.usePreset(0)
}

// Row is one display line of the panel.
type Row struct {
	Param    config.Param // empty on the preset row
	Label    string
	Value    string
	Fraction float64
	Selected bool
	Formula  string
	Help     string
}

func (p *Panel) Rows() []Row {
	rows := make([]Row, 0, len(p.params)+1)
	for i, param := range p.params {
		v, _ := p.cfg.Get(param)
		r, _ := config.RangeOf(param)
		rows = append(rows, Row{
			Param:    param,
			Label:    r.Label,
			Value:    Format(param, v),
			Fraction: r.Fraction(v),
			Selected: i == p.selected,
			Formula:  r.Formula,
			Help:     r.Help,
		})
	}

	preset := p.Preset()
	if preset == "" {
		preset = p.cfg.Name + " (custom)"
	}
	rows = append(rows, Row{
		Label:    "Preset",
		Value:    preset,
		Selected: p.selected == len(p.params),
		Help:     p.cfg.Description,
	})
	return rows
}

// Format renders a parameter value with its unit. Star counts are whole
// numbers, everything else shows two decimals.
func Format(param config.Param, v float64) string {
	unit := config.Ranges[param].Unit
	if param == config.StarCount {
		return fmt.Sprintf("%.0f %s", v, unit)
	}
	return fmt.Sprintf("%.2f %s", v, unit)
}

// snap rounds v to the nearest multiple of step and strips float noise.
func snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(math.Round(v/step)*step*1e6) / 1e6
}
