package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
	frameFile    = "frame.png"
	profileFile  = "profile.csv"

	// profileSamples is the number of radii written to profile.csv.
	profileSamples = 64
)

var ErrNoSnapshot = errors.New("storage: snapshot not found")

// Store keeps snapshots, one directory each, under a base directory.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type Metadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     int                `json:"width,omitempty"`
	Height    int                `json:"height,omitempty"`
	Config    config.Config      `json:"config"`
	Derived   map[string]float64 `json:"derived"`
}

// Save writes a snapshot of cfg and, when img is non-nil, the rendered frame.
// It returns the snapshot id.
func (s *Store) Save(cfg config.Config, seed int64, img image.Image) (string, error) {
	ts := s.now()
	id, err := s.allocate(slug(cfg.Name), ts)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.baseDir, id)

	d := astro.Derive(cfg)
	meta := Metadata{
		ID:        id,
		Name:      cfg.Name,
		Timestamp: ts,
		Seed:      seed,
		Config:    cfg,
		Derived:   derivedMetrics(d),
	}
	if img != nil {
		meta.Width, meta.Height = img.Bounds().Dx(), img.Bounds().Dy()
	}

	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return "", err
	}
	if err := writeProfile(filepath.Join(dir, profileFile), d); err != nil {
		return "", err
	}
	if img != nil {
		if err := writePNG(filepath.Join(dir, frameFile), img); err != nil {
			return "", err
		}
	}
	return id, nil
}

// allocate creates a fresh snapshot directory, adding a counter when two
// snapshots share a second.
func (s *Store) allocate(name string, ts time.Time) (string, error) {
	base := fmt.Sprintf("%s_%d", name, ts.Unix())
	id := base
	for i := 2; ; i++ {
		err := os.Mkdir(filepath.Join(s.baseDir, id), 0755)
		if err == nil {
			return id, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			if err := s.Init(); err != nil {
				return "", err
			}
			continue
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

func derivedMetrics(d astro.Derived) map[string]float64 {
	return map[string]float64{
		"schwarzschild_radius": d.SchwarzschildRadius,
		"inner_radius":         d.InnerRadius,
		"outer_radius":         d.OuterRadius,
		"base_temperature":     d.BaseTemperature,
		"roll":                 d.Roll,
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeProfile(path string, d astro.Derived) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"radius", "temperature", "r", "g", "b"}); err != nil {
		return err
	}
	for _, p := range Profile(d, profileSamples) {
		r, g, b := p.Color.RGB255()
		row := []string{
			strconv.FormatFloat(p.Radius, 'f', 6, 64),
			strconv.FormatFloat(p.Temperature, 'f', 2, 64),
			strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	snaps := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		if snaps[i].Timestamp.Equal(snaps[j].Timestamp) {
			return snaps[i].ID < snaps[j].ID
		}
		return snaps[i].Timestamp.Before(snaps[j].Timestamp)
	})
	return snaps, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, id)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", id, err)
	}
	return &meta, nil
}

// LoadConfig reads the YAML config saved with a snapshot.
func (s *Store) LoadConfig(id string) (config.Config, error) {
	cfg, err := config.Load(filepath.Join(s.baseDir, id, configFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("%w: %s", ErrNoSnapshot, id)
	}
	return cfg, err
}

// FramePath is where a snapshot's frame lives; the file may be absent.
func (s *Store) FramePath(id string) string {
	return filepath.Join(s.baseDir, id, frameFile)
}

// LoadProfile reads back the radius and temperature columns of profile.csv.
func (s *Store) LoadProfile(id string) (radii, temps []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, profileFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	radii = make([]float64, 0, len(records)-1)
	temps = make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		rad, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		temp, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		radii = append(radii, rad)
		temps = append(temps, temp)
	}
	return radii, temps, nil
}

// Restored is everything read back from one snapshot.
type Restored struct {
	Meta   *Metadata
	Config config.Config
	Radii  []float64
	Temps  []float64
	Frame  string // empty when the snapshot has no frame
}

// Restore reads a snapshot's metadata, config and temperature profile.
func (s *Store) Restore(id string) (*Restored, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	cfg, err := s.LoadConfig(id)
	if err != nil {
		return nil, err
	}
	radii, temps, err := s.LoadProfile(id)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	out := &Restored{Meta: meta, Config: cfg, Radii: radii, Temps: temps}
	if _, err := os.Stat(s.FramePath(id)); err == nil {
		out.Frame = s.FramePath(id)
	}
	return out, nil
}

// slug lowercases a name and keeps only letters and digits, joined by
// single dashes.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "snapshot"
	}
	return b.String()
}
