package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
	"github.com/san-kum/blackhole/internal/controls"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const (
	sliderWidth = 24
	frameDelay  = 50 * time.Millisecond
)

// Model edits a configuration file from the terminal. Saving rewrites the
// file, which a window started with --watch picks up on its next poll.
type Model struct {
	panel *controls.Panel
	path  string

	editing    bool
	editPreset bool
	editBuf    string
	quitArmed  bool

	status    string
	statusErr bool
	dirty     bool

	elapsed   float64
	lastFrame time.Time

	width  int
	height int
}

func NewTuner(path string, cfg config.Config) Model {
	return Model{
		panel:  controls.NewPanel(cfg),
		path:   path,
		width:  80,
		height: 24,
	}
}

// Config returns the config as currently edited.
func (m Model) Config() config.Config { return m.panel.Config() }

// Dirty reports edits that have not been saved yet.
func (m Model) Dirty() bool { return m.dirty }

type tickMsg time.Time

type savedMsg struct {
	path string
	err  error
}

func tick() tea.Cmd {
	return tea.Tick(frameDelay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func save(path string, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{path: path, err: config.Save(path, cfg)}
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			m.elapsed += now.Sub(m.lastFrame).Seconds()
		}
		m.lastFrame = now
		return m, tick()
	case savedMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.status, m.statusErr = "saved "+msg.path, false
		m.dirty = false
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	changed := false
	key := msg.String()
	if key != "q" && key != "esc" {
		m.quitArmed = false
	}
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if m.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.status, m.statusErr = "unsaved changes, press q again to quit", true
			return m, nil
		}
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		i := int(key[0]-'0') - 1
		if i < 0 {
			i = 9
		}
		if params := config.Params(); i < len(params) {
			m.panel.Select(params[i])
		}
	case "up", "k":
		m.panel.Prev()
	case "down", "j", "tab":
		m.panel.Next()
	case "left", "h":
		changed = m.panel.Decrease(false)
	case "right", "l":
		changed = m.panel.Increase(false)
	case "shift+left", "H":
		changed = m.panel.Decrease(true)
	case "shift+right", "L":
		changed = m.panel.Increase(true)
	case "n", "]":
		changed = m.panel.NextPreset()
	case "p", "[":
		changed = m.panel.PrevPreset()
	case "r":
		changed = m.panel.Reset()
	case "enter":
		m.editing = true
		if param, ok := m.panel.Selected(); ok {
			v, _ := m.panel.Config().Get(param)
			m.editBuf = trimFloat(v)
		} else {
			m.editPreset = true
			m.editBuf = ""
		}
	case "ctrl+s", "s":
		if m.path == "" {
			m.status, m.statusErr = "no file to save to", true
			return m, nil
		}
		return m, save(m.path, m.panel.Config())
	}
	if changed {
		m.dirty = true
		m.status = ""
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editPreset {
		return m.editPresetKey(msg)
	}
	switch msg.String() {
	case "enter":
		param, _ := m.panel.Selected()
		var val float64
		if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err != nil {
			m.status, m.statusErr = fmt.Sprintf("%q is not a number", m.editBuf), true
		} else if m.panel.SetValue(param, val) {
			m.dirty = true
			m.status = ""
		}
		m.editing = false
		m.editBuf = ""
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

// editPresetKey reads a preset name typed on the preset row.
func (m Model) editPresetKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		before := m.panel.Config()
		if err := m.panel.SetPreset(m.editBuf); err != nil {
			m.status, m.statusErr = err.Error(), true
		} else if m.panel.Config() != before {
			m.dirty = true
			m.status = ""
		}
		m.editing, m.editPreset, m.editBuf = false, false, ""
	case tea.KeyEsc:
		m.editing, m.editPreset, m.editBuf = false, false, ""
	case tea.KeyBackspace:
		if r := []rune(m.editBuf); len(r) > 0 {
			m.editBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.editBuf += " "
	case tea.KeyRunes:
		m.editBuf += string(msg.Runes)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	cfg := m.panel.Config()
	d := astro.Derive(cfg)

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("b l a c k h o l e") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	title := cfg.Name
	if m.dirty {
		title += " *"
	}
	b.WriteString("      " + white.Render(title) + "  " + dim.Render(cfg.Description) + "\n\n")

	rows := m.panel.Rows()
	for _, row := range rows {
		b.WriteString(m.viewRow(row) + "\n")
	}
	for _, row := range rows {
		if !row.Selected {
			continue
		}
		b.WriteString("\n")
		if row.Formula != "" {
			b.WriteString("      " + yellow.Render(row.Formula) + "\n")
		}
		if row.Help != "" {
			b.WriteString("      " + dim.Render(row.Help) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(preview(cfg, d, m.elapsed, 44, 13))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("      %s %s  %s %s  %s %s\n",
		dim.Render("rs"), white.Render(fmt.Sprintf("%.2f", d.SchwarzschildRadius)),
		dim.Render("disc"), white.Render(fmt.Sprintf("%.2f–%.2f", d.InnerRadius, d.OuterRadius)),
		dim.Render("T₀"), white.Render(fmt.Sprintf("%.0fK", d.BaseTemperature))))
	b.WriteString(fmt.Sprintf("      %s %s\n", dim.Render("T(r)"), yellow.Render(sparkline(astro.TemperatureProfile(d, 32), 32))))

	if m.status != "" {
		style := green
		if m.statusErr {
			style = red
		}
		b.WriteString("\n      " + style.Render(m.status) + "\n")
	}

	b.WriteString("\n" + dim.Render("      ↑↓/1-0 select  ←→ adjust  HL coarse  enter edit  n/p preset  r reset  s save  q quit") + "\n")
	return b.String()
}

func (m Model) viewRow(row controls.Row) string {
	label := fmt.Sprintf("%-22s", row.Label)
	if row.Param == "" {
		if m.editPreset {
			return "      " + cyan.Render("▸ ") + white.Render(label) + magenta.Render(m.editBuf+"▋")
		}
		if row.Selected {
			return "      " + cyan.Render("▸ ") + white.Render(label) + magenta.Render(row.Value)
		}
		return "        " + dim.Render(label) + dim.Render(row.Value)
	}

	value := fmt.Sprintf("%12s", row.Value)
	if m.editing && row.Selected {
		value = fmt.Sprintf("%12s", m.editBuf+"▋")
	}
	bar := slider(row.Fraction, sliderWidth)
	if row.Selected {
		return "      " + cyan.Render("▸ ") + white.Render(label) + cyan.Render(bar) + " " + magenta.Render(value)
	}
	return "        " + dim.Render(label) + dimmer.Render(bar) + " " + dim.Render(value)
}

func slider(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
