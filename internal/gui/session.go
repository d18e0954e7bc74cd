package gui

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
	"github.com/san-kum/blackhole/internal/controls"
	"github.com/san-kum/blackhole/internal/render"
	"github.com/san-kum/blackhole/internal/scene"
	"github.com/san-kum/blackhole/internal/storage"
)

// statusDuration is how long a status line stays on screen, in seconds.
const statusDuration = 3.0

// Renderer is the part of the render pipeline the session drives.
type Renderer interface {
	Apply(cfg config.Config) error
	Frame(elapsed float64, view scene.View) (render.FrameUniforms, error)
	Capture() (image.Image, error)
}

// Dialogs asks the user for file paths. An empty path means the user
// cancelled.
type Dialogs interface {
	OpenConfig() (string, error)
	SaveConfig(suggested string) (string, error)
}

type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionIncrease
	ActionDecrease
	ActionIncreaseCoarse
	ActionDecreaseCoarse
	ActionNextPreset
	ActionPrevPreset
	ActionReset
	ActionTogglePanel
	ActionOpen
	ActionSave
	ActionSnapshot
	ActionQuit
)

// Session is everything the window shows, without the window: the edited
// config, the camera, the clock and the side effects of each action.
type Session struct {
	log      *slog.Logger
	renderer Renderer
	dialogs  Dialogs
	store    *storage.Store
	watcher  *config.Watcher
	seed     int64

	panel *controls.Panel
	orbit *scene.Orbit

	elapsed   float64
	ShowPanel bool
	Quit      bool

	snapshotPending bool

	// dialogs run off the frame loop; results arrive here and are handled
	// in Tick.
	dialogResults chan dialogResult
	dialogBusy    bool

	status    string
	statusErr bool
	statusAt  float64
}

type SessionOptions struct {
	Config   config.Config
	Renderer Renderer
	Dialogs  Dialogs
	Store    *storage.Store
	Watcher  *config.Watcher
	Seed     int64
	Logger   *slog.Logger
}

func NewSession(opts SessionOptions) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		log:       log.With("component", "session"),
		renderer:  opts.Renderer,
		dialogs:   opts.Dialogs,
		store:     opts.Store,
		watcher:   opts.Watcher,
		seed:      opts.Seed,
		panel:     controls.NewPanel(opts.Config),
		orbit:     scene.NewOrbit(scene.DefaultEye),
		ShowPanel: true,

		dialogResults: make(chan dialogResult, 1),
	}
	if err := s.renderer.Apply(s.panel.Config()); err != nil {
		return nil, fmt.Errorf("apply initial config: %w", err)
	}
	return s, nil
}

func (s *Session) Config() config.Config { return s.panel.Config() }
func (s *Session) Panel() *controls.Panel { return s.panel }
func (s *Session) Orbit() *scene.Orbit { return s.orbit }
func (s *Session) Elapsed() float64 { return s.elapsed }

// DialogOpen reports whether a file dialog is waiting for the user.
func (s *Session) DialogOpen() bool { return s.dialogBusy }

// Status returns the current status line, empty once it has expired.
func (s *Session) Status() (msg string, isErr bool) {
	if s.status == "" || s.elapsed-s.statusAt > statusDuration {
		return "", false
	}
	return s.status, s.statusErr
}

func (s *Session) setStatus(msg string, isErr bool) {
	s.status, s.statusErr, s.statusAt = msg, isErr, s.elapsed
	if isErr {
		s.log.Warn(msg)
	} else {
		s.log.Info(msg)
	}
}

// Tick advances the clock and the camera and polls the watched file. The
// clock keeps running across config changes.
func (s *Session) Tick(dt float64) {
	s.elapsed += dt
	s.orbit.Update()

	select {
	case res := <-s.dialogResults:
		s.dialogBusy = false
		s.finishDialog(res)
	default:
	}

	if s.watcher == nil {
		return
	}
	cfg, changed, err := s.watcher.Poll()
	if err != nil {
		s.setStatus(fmt.Sprintf("reload %s: %v", s.watcher.Path(), err), true)
		return
	}
	if changed {
		s.apply(cfg, "reloaded "+s.watcher.Path())
	}
}

func (s *Session) apply(cfg config.Config, msg string) {
	prev := s.panel.Config()
	s.panel.Set(cfg)
	if err := s.renderer.Apply(s.panel.Config()); err != nil {
		s.panel.Set(prev)
		s.setStatus(err.Error(), true)
		return
	}
	if msg != "" {
		s.setStatus(msg, false)
	}
}

// Handle performs one user action.
func (s *Session) Handle(a Action) {
	changed := false
	switch a {
	case ActionNext:
		s.panel.Next()
	case ActionPrev:
		s.panel.Prev()
	case ActionIncrease:
		changed = s.panel.Increase(false)
	case ActionDecrease:
		changed = s.panel.Decrease(false)
	case ActionIncreaseCoarse:
		changed = s.panel.Increase(true)
	case ActionDecreaseCoarse:
		changed = s.panel.Decrease(true)
	case ActionNextPreset:
		changed = s.panel.NextPreset()
	case ActionPrevPreset:
		changed = s.panel.PrevPreset()
	case ActionReset:
		changed = s.panel.Reset()
	case ActionTogglePanel:
		s.ShowPanel = !s.ShowPanel
	case ActionOpen:
		s.open()
	case ActionSave:
		s.save()
	case ActionSnapshot:
		s.snapshotPending = true
	case ActionQuit:
		s.Quit = true
	}

	if changed {
		if err := s.renderer.Apply(s.panel.Config()); err != nil {
			s.setStatus(err.Error(), true)
		}
	}
}

type dialogResult struct {
	action Action
	path   string
	err    error
	cfg    config.Config // config to save, captured when the dialog opened
}

// runDialog shows a dialog on its own goroutine so the window keeps
// drawing. Only one dialog is open at a time.
func (s *Session) runDialog(action Action, show func() (string, error)) {
	if s.dialogBusy {
		return
	}
	s.dialogBusy = true
	cfg := s.panel.Config()
	go func() {
		path, err := show()
		s.dialogResults <- dialogResult{action: action, path: path, err: err, cfg: cfg}
	}()
}

func (s *Session) open() {
	if s.dialogs == nil {
		return
	}
	s.runDialog(ActionOpen, s.dialogs.OpenConfig)
}

func (s *Session) save() {
	if s.dialogs == nil {
		return
	}
	suggested := suggestedName(s.panel.Config())
	s.runDialog(ActionSave, func() (string, error) {
		return s.dialogs.SaveConfig(suggested)
	})
}

func (s *Session) finishDialog(res dialogResult) {
	if res.err != nil {
		s.setStatus(res.err.Error(), true)
		return
	}
	if res.path == "" {
		return
	}

	switch res.action {
	case ActionOpen:
		cfg, err := config.Load(res.path)
		if err != nil {
			s.setStatus(err.Error(), true)
			return
		}
		s.apply(cfg, "loaded "+res.path)
	case ActionSave:
		if err := config.Save(res.path, res.cfg); err != nil {
			s.setStatus(err.Error(), true)
			return
		}
		s.setStatus("saved "+res.path, false)
	}
}

func suggestedName(cfg config.Config) string {
	return fmt.Sprintf("%s.yaml", cfg.Name)
}

// View builds this frame's camera: the orbit position, the jitter of the
// camera rig and the mass-dependent roll.
func (s *Session) View(aspect float32) scene.View {
	cfg := s.panel.Config()
	shake := astro.CameraShake(cfg.VibrationAmplitude, s.elapsed)
	return scene.NewView(s.orbit.Eye(), shake, astro.CameraRoll(cfg.Mass), aspect)
}

// Render draws the frame and, if one was requested, saves a snapshot of it
// before any overlay is added.
func (s *Session) Render(aspect float32) error {
	if _, err := s.renderer.Frame(s.elapsed, s.View(aspect)); err != nil {
		return err
	}
	if s.snapshotPending {
		s.snapshotPending = false
		s.snapshot()
	}
	return nil
}

func (s *Session) snapshot() {
	if s.store == nil {
		s.setStatus("snapshots are disabled", true)
		return
	}
	img, err := s.renderer.Capture()
	if err != nil && !errors.Is(err, render.ErrEmptyFrame) {
		s.setStatus(err.Error(), true)
		return
	}
	id, err := s.store.Save(s.panel.Config(), s.seed, img)
	if err != nil {
		s.setStatus(err.Error(), true)
		return
	}
	s.setStatus("snapshot "+id, false)
}
