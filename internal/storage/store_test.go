package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/blackhole/internal/config"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func testFrame() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	st.now = fixedClock(time.Unix(1700000000, 0))

	cfg, err := config.GetPreset("Sagittarius A*")
	if err != nil {
		t.Fatal(err)
	}

	id, err := st.Save(cfg, 42, testFrame())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id != "sagittarius-a_1700000000" {
		t.Errorf("unexpected id %q", id)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != cfg.Name {
		t.Errorf("expected name %q, got %q", cfg.Name, meta.Name)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Width != 4 || meta.Height != 3 {
		t.Errorf("expected 4x3 frame, got %dx%d", meta.Width, meta.Height)
	}
	if meta.Config != cfg {
		t.Errorf("config mismatch: %+v", meta.Config)
	}
	if meta.Derived["schwarzschild_radius"] != cfg.Mass*0.05 {
		t.Errorf("unexpected rs %f", meta.Derived["schwarzschild_radius"])
	}

	loaded, err := st.LoadConfig(id)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("yaml config mismatch: %+v", loaded)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	id, err := st.Save(config.DefaultConfig(), 1, testFrame())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, configFile, frameFile, profileFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, id, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	f, err := os.Open(st.FramePath(id))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("frame is not a png: %v", err)
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r>>8 != 255 {
		t.Errorf("expected red pixel, got %v", img.At(1, 1))
	}
}

func TestStoreWithoutFrame(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	id, err := st.Save(config.DefaultConfig(), 1, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(st.FramePath(id)); !os.IsNotExist(err) {
		t.Error("expected no frame.png")
	}
}

func TestStoreSameSecond(t *testing.T) {
	st := New(t.TempDir())
	st.now = fixedClock(time.Unix(100, 0))

	a, err := st.Save(config.DefaultConfig(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(config.DefaultConfig(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
	if b != "default_100_2" {
		t.Errorf("unexpected second id %q", b)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	snaps, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("expected 0 snapshots, got %d", len(snaps))
	}

	st.now = fixedClock(time.Unix(200, 0))
	if _, err := st.Save(config.Presets[2], 1, nil); err != nil {
		t.Fatal(err)
	}
	st.now = fixedClock(time.Unix(100, 0))
	if _, err := st.Save(config.Presets[1], 1, nil); err != nil {
		t.Fatal(err)
	}
	// Stray entries are skipped.
	os.Mkdir(filepath.Join(tmpDir, "junk"), 0755)
	os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644)

	snaps, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Name != config.Presets[1].Name {
		t.Errorf("expected oldest first, got %s", snaps[0].Name)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	snaps, err := st.List()
	if err != nil || len(snaps) != 0 {
		t.Errorf("expected empty list, got %v, %v", snaps, err)
	}
}

func TestStoreCreatesBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nested", "snaps"))
	if _, err := st.Save(config.DefaultConfig(), 1, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
	if _, err := st.LoadConfig("missing"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestStoreProfile(t *testing.T) {
	st := New(t.TempDir())
	id, err := st.Save(config.DefaultConfig(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	radii, temps, err := st.LoadProfile(id)
	if err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if len(radii) != profileSamples || len(temps) != profileSamples {
		t.Fatalf("expected %d samples, got %d/%d", profileSamples, len(radii), len(temps))
	}
	if radii[0] != 1.5 || radii[len(radii)-1] != 6 {
		t.Errorf("expected radii from 1.5 to 6, got %f..%f", radii[0], radii[len(radii)-1])
	}
	if temps[0] <= temps[len(temps)-1] {
		t.Error("expected temperature to fall outward")
	}
}

func TestStoreRestore(t *testing.T) {
	st := New(t.TempDir())
	cfg, _ := config.GetPreset("Extreme")

	withFrame, err := st.Save(cfg, 9, testFrame())
	if err != nil {
		t.Fatal(err)
	}
	r, err := st.Restore(withFrame)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if r.Config != cfg || r.Meta.Seed != 9 {
		t.Errorf("unexpected restore %+v seed %d", r.Config, r.Meta.Seed)
	}
	if len(r.Temps) != profileSamples {
		t.Errorf("expected %d profile samples, got %d", profileSamples, len(r.Temps))
	}
	if r.Frame != st.FramePath(withFrame) {
		t.Errorf("expected frame path %q, got %q", st.FramePath(withFrame), r.Frame)
	}

	noFrame, err := st.Save(cfg, 9, nil)
	if err != nil {
		t.Fatal(err)
	}
	r, err = st.Restore(noFrame)
	if err != nil {
		t.Fatal(err)
	}
	if r.Frame != "" {
		t.Errorf("expected no frame, got %q", r.Frame)
	}

	if _, err := st.Restore("missing"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	var data struct {
		Config  map[string]any     `json:"config"`
		Derived map[string]float64 `json:"derived"`
		Profile []map[string]any   `json:"profile"`
	}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Config["name"] != "Default" {
		t.Errorf("expected name Default, got %v", data.Config["name"])
	}
	if len(data.Profile) != profileSamples {
		t.Errorf("expected %d profile points, got %d", profileSamples, len(data.Profile))
	}
	if hex, _ := data.Profile[0]["color"].(string); len(hex) != 7 || hex[0] != '#' {
		t.Errorf("expected hex color, got %v", data.Profile[0]["color"])
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Sagittarius A*":                 "sagittarius-a",
		"M87* (Event Horizon Telescope)": "m87-event-horizon-telescope",
		"  ":                             "snapshot",
		"Merger Event":                   "merger-event",
	}
	for in, want := range tests {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
