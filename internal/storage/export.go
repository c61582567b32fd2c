package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/spectrum"
)

type ExportData struct {
	Scheme     string               `json:"scheme"`
	Params     dynamo.Params        `json:"params"`
	Duration   float64              `json:"duration"`
	Times      []float64            `json:"times"`
	Excitation []float64            `json:"excitation"`
	Channels   map[string][]float64 `json:"channels"`
	Metrics    map[string]float64   `json:"metrics"`
}

func NewExportData(scheme string, res *dynamo.Result, excitation []float64, m map[string]float64) *ExportData {
	data := &ExportData{
		Scheme:     scheme,
		Params:     res.Params,
		Duration:   res.Params.Duration(),
		Times:      res.Times(),
		Excitation: excitation,
		Channels:   make(map[string][]float64, len(dynamo.Channels)),
		Metrics:    finite(m),
	}
	for _, c := range dynamo.Channels {
		data.Channels[c.String()] = res.Channel(c)
	}
	return data
}

// WriteJSON encodes the export as indented JSON. Histories containing NaN
// or Inf cannot be encoded and return an error.
func (d *ExportData) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}

type SpectrumExport struct {
	Config             spectrum.Config    `json:"config"`
	Spectrum           *spectrum.Spectrum `json:"spectrum"`
	PseudoVelocity     []float64          `json:"pseudo_velocity"`
	PseudoAcceleration []float64          `json:"pseudo_acceleration"`
}

func encodeTo(path string, v any) error {
	out := io.Writer(os.Stdout)
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// ExportSpectrumJSON writes the spectrum with its pseudo ordinates to path,
// or to stdout when path is "-".
func ExportSpectrumJSON(path string, cfg spectrum.Config, spec *spectrum.Spectrum) error {
	return encodeTo(path, SpectrumExport{
		Config:             cfg,
		Spectrum:           spec,
		PseudoVelocity:     spec.PseudoVelocity(),
		PseudoAcceleration: spec.PseudoAcceleration(),
	})
}

// ExportJSON writes the export to path, or to stdout when path is "-".
func ExportJSON(path, scheme string, res *dynamo.Result, excitation []float64, m map[string]float64) error {
	return encodeTo(path, NewExportData(scheme, res, excitation, m))
}
