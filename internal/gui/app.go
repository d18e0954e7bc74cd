package gui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/blackhole/internal/config"
	"github.com/san-kum/blackhole/internal/controls"
	"github.com/san-kum/blackhole/internal/render"
	"github.com/san-kum/blackhole/internal/storage"
)

// Theme Colors
var (
	ColPanel   = rl.NewColor(10, 8, 12, 190)
	ColAccent  = rl.NewColor(255, 170, 90, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(170, 165, 175, 255)
	ColTextDim = rl.NewColor(90, 85, 95, 255)
	ColTrack   = rl.NewColor(45, 40, 50, 255)
	ColError   = rl.NewColor(255, 90, 90, 255)
)

const (
	// WatchInterval is how often a watched config file is polled.
	WatchInterval = time.Second

	panelWidth     = 340
	telemetryLen   = 200
	windowTitle    = "blackhole"
	fontPath       = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	fontBaseSize   = 32
	defaultWidth   = 1280
	defaultHeight  = 720
	targetFPS      = 60
	panelRowHeight = 30
	helpLineChars  = 40
)

type Options struct {
	Config     config.Config
	ConfigPath string
	Watch      bool
	Width      int32
	Height     int32
	Seed       int64
	Store      *storage.Store
	Logger     *slog.Logger
}

type App struct {
	Session  *Session
	Pipeline *render.Pipeline
	Font     rl.Font

	// frame times in milliseconds
	Telemetry []float64

	log *slog.Logger
}

func initWindow(w, h int32) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w, h, windowTitle)
	rl.SetTargetFPS(targetFPS)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when present and falls back to the raylib
// default font.
func loadFont() rl.Font {
	font := rl.LoadFontEx(fontPath, fontBaseSize, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window and blocks until it is closed. GPU resources are
// released before the window goes away.
func Run(opts Options) error {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	initWindow(opts.Width, opts.Height)
	defer rl.CloseWindow()

	pipeline, err := render.New(render.Options{
		Width:  int32(rl.GetScreenWidth()),
		Height: int32(rl.GetScreenHeight()),
		Seed:   opts.Seed,
		Logger: log,
	})
	if err != nil {
		return err
	}
	defer pipeline.Unload()

	app, err := NewApp(opts, pipeline, log)
	if err != nil {
		return err
	}
	defer rl.UnloadFont(app.Font)

	return app.RunLoop()
}

func NewApp(opts Options, pipeline *render.Pipeline, log *slog.Logger) (*App, error) {
	var watcher *config.Watcher
	if opts.Watch && opts.ConfigPath != "" {
		watcher = config.NewWatcher(opts.ConfigPath, WatchInterval)
		log.Info("watching configuration", "path", opts.ConfigPath)
	}

	session, err := NewSession(SessionOptions{
		Config:   opts.Config,
		Renderer: pipeline,
		Dialogs:  nativeDialogs{},
		Store:    opts.Store,
		Watcher:  watcher,
		Seed:     opts.Seed,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Session:   session,
		Pipeline:  pipeline,
		Font:      loadFont(),
		Telemetry: make([]float64, 0, telemetryLen),
		log:       log.With("component", "gui"),
	}, nil
}

// RunLoop alternates Update and Draw; the next frame starts only after the
// current one has been presented.
func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() && !a.Session.Quit {
		a.Update()
		if err := a.Draw(); err != nil {
			return err
		}
	}
	a.log.Info("window closed", "elapsed", a.Session.Elapsed())
	return nil
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		if err := a.Pipeline.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())); err != nil {
			a.log.Warn("resize", "err", err)
		}
	}

	for _, action := range pollActions() {
		a.Session.Handle(action)
	}

	// Orbit with the mouse unless it is over the panel.
	mouse := rl.GetMousePosition()
	overPanel := a.Session.ShowPanel && mouse.X < panelWidth
	if rl.IsMouseButtonDown(rl.MouseLeftButton) && !overPanel {
		d := rl.GetMouseDelta()
		a.Session.Orbit().Drag(float64(d.X), float64(d.Y))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Session.Orbit().Zoom(float64(wheel))
	}

	dt := rl.GetFrameTime()
	a.Session.Tick(float64(dt))

	a.Telemetry = append(a.Telemetry, float64(dt)*1000)
	if len(a.Telemetry) > telemetryLen {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() error {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if err := a.Session.Render(float32(w) / float32(h)); err != nil {
		return err
	}

	if a.Session.ShowPanel {
		a.drawPanel()
	}
	a.DrawHUD(int(w), int(h))
	return nil
}

func (a *App) DrawHUD(w, h int) {
	cfg := a.Session.Config()
	x := 30
	if a.Session.ShowPanel {
		x = panelWidth + 20
	}
	a.drawText("blackhole", x, 24, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", cfg.Name), x+150, 28, 16, ColAccent)
	if cfg.Description != "" {
		a.drawText(cfg.Description, x, 54, 14, ColText)
	}

	a.DrawTelemetry(w-260, h-90, 200, 40)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), w-260, h-40, 14, ColTextDim)

	if a.Session.DialogOpen() {
		a.drawText("waiting for file dialog", x, h-84, 14, ColTextDim)
	}
	if msg, isErr := a.Session.Status(); msg != "" {
		col := ColAccent
		if isErr {
			col = ColError
		}
		a.drawText(msg, x, h-64, 14, col)
	}

	a.drawText("[DRAG] ORBIT  [WHEEL] ZOOM  [P] PRESET  [R] RESET  [O] OPEN  [S] SAVE  [F12] SNAPSHOT  [TAB] PANEL  [Q] QUIT",
		x, h-34, 12, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawPanel() {
	h := rl.GetScreenHeight()
	rl.DrawRectangle(0, 0, panelWidth, int32(h), ColPanel)

	a.drawText("parameters", 20, 24, 20, ColSelect)
	y := 70
	var selected controls.Row
	for _, row := range a.Session.Panel().Rows() {
		if row.Selected {
			selected = row
		}
		label, col := "  "+row.Label, ColText
		if row.Selected {
			label, col = "> "+row.Label, ColSelect
		}
		a.drawText(label, 16, y, 14, col)
		a.drawText(row.Value, panelWidth-130, y, 14, col)

		if row.Param != "" {
			track := int32(panelWidth - 52)
			rl.DrawRectangle(30, int32(y+18), track, 3, ColTrack)
			fill := ColTextDim
			if row.Selected {
				fill = ColAccent
			}
			rl.DrawRectangle(30, int32(y+18), int32(float64(track)*row.Fraction), 3, fill)
		}
		y += panelRowHeight
	}

	d := a.Pipeline.Derived()
	y += 10
	a.drawText(fmt.Sprintf("rs %.2f   disc %.2f-%.2f", d.SchwarzschildRadius, d.InnerRadius, d.OuterRadius), 20, y, 14, ColTextDim)
	a.drawText(fmt.Sprintf("T0 %.0f K   roll %.3f rad", d.BaseTemperature, d.Roll), 20, y+20, 14, ColTextDim)

	y += 56
	if selected.Formula != "" {
		a.drawText(selected.Formula, 20, y, 16, ColAccent)
		y += 24
	}
	for _, line := range wrap(selected.Help, helpLineChars) {
		a.drawText(line, 20, y, 13, ColText)
		y += 18
	}
}

// wrap breaks text into lines of at most width characters at spaces.
func wrap(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		if line != "" && len([]rune(line))+1+len([]rune(word)) > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// DrawTelemetry plots recent frame times as a line strip.
func (a *App) DrawTelemetry(rectX, rectY, width, height int) {
	if len(a.Telemetry) < 2 {
		return
	}

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColTextDim)
	a.drawText(fmt.Sprintf("%.1f ms", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
