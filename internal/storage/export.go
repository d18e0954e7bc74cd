package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
)

type ProfilePoint struct {
	Radius      float64        `json:"radius"`
	Temperature float64        `json:"temperature"`
	Color       colorful.Color `json:"-"`
	Hex         string         `json:"color"`
}

// Profile samples the disc temperature and its black-body color across the
// disc.
func Profile(d astro.Derived, n int) []ProfilePoint {
	temps := astro.TemperatureProfile(d, n)
	points := make([]ProfilePoint, len(temps))
	for i, t := range temps {
		c := astro.TemperatureColor(t)
		points[i] = ProfilePoint{
			Radius:      d.InnerRadius + (d.OuterRadius-d.InnerRadius)*float64(i)/float64(len(temps)-1),
			Temperature: t,
			Color:       c,
			Hex:         c.Clamped().Hex(),
		}
	}
	return points
}

type ExportData struct {
	Config  config.Config      `json:"config"`
	Derived map[string]float64 `json:"derived"`
	Profile []ProfilePoint     `json:"profile"`
}

func NewExportData(cfg config.Config) ExportData {
	d := astro.Derive(cfg)
	return ExportData{
		Config:  cfg,
		Derived: derivedMetrics(d),
		Profile: Profile(d, profileSamples),
	}
}

func ExportJSON(path string, cfg config.Config) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, cfg)
}

func WriteJSON(w io.Writer, cfg config.Config) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(cfg))
}
