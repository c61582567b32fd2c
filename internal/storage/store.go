package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/spectrum"
)

const (
	KindRun      = "run"
	KindSpectrum = "spectrum"

	metadataFile = "metadata.json"
	historyFile  = "history.csv"
	spectrumFile = "spectrum.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one saved run or spectrum. Spectrum is set only for
// KindSpectrum entries.
type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Scheme    string             `json:"scheme,omitempty"`
	Source    string             `json:"source"`
	Params    dynamo.Params      `json:"params"`
	Spectrum  *spectrum.Config   `json:"spectrum,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// SaveRun writes the histories of res, with the excitation alongside, under
// a new run directory. Non-finite metrics are left out of the metadata.
func (s *Store) SaveRun(scheme, source string, res *dynamo.Result, excitation []float64, m map[string]float64) (string, error) {
	meta := RunMetadata{
		Kind:    KindRun,
		Scheme:  scheme,
		Source:  source,
		Params:  res.Params,
		Metrics: finite(m),
	}

	runDir, err := s.create(&meta)
	if err != nil {
		return "", err
	}

	header := []string{"time", "excitation"}
	for _, c := range dynamo.Channels {
		header = append(header, c.String())
	}

	times := res.Times()
	rows := make([][]float64, res.Len())
	for i := range rows {
		row := make([]float64, 0, len(header))
		g := 0.0
		if i < len(excitation) {
			g = excitation[i]
		}
		row = append(row, times[i], g)
		for _, c := range dynamo.Channels {
			row = append(row, res.Channel(c)[i])
		}
		rows[i] = row
	}

	if err := writeCSV(filepath.Join(runDir, historyFile), header, rows); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func (s *Store) SaveSpectrum(source string, cfg spectrum.Config, spec *spectrum.Spectrum) (string, error) {
	meta := RunMetadata{
		Kind:     KindSpectrum,
		Source:   source,
		Spectrum: &cfg,
		Params: dynamo.Params{
			Mass:    cfg.ReferenceMass,
			Damping: cfg.Damping,
			Dt:      cfg.Dt,
			Beta:    cfg.Beta,
			Steps:   cfg.Steps,
		},
	}

	runDir, err := s.create(&meta)
	if err != nil {
		return "", err
	}

	header := []string{"period"}
	for _, c := range spectrum.Channels {
		header = append(header, c.String())
	}

	rows := make([][]float64, spec.Len())
	for i := range rows {
		row := []float64{spec.Periods[i]}
		for _, c := range spectrum.Channels {
			row = append(row, spec.Channel(c)[i])
		}
		rows[i] = row
	}

	if err := writeCSV(filepath.Join(runDir, spectrumFile), header, rows); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func (s *Store) create(meta *RunMetadata) (string, error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Kind, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return runDir, nil
}

// List returns all saved entries, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistory rebuilds the result and excitation of a saved run.
func (s *Store) LoadHistory(runID string) (*dynamo.Result, []float64, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	if meta.Kind != KindRun {
		return nil, nil, fmt.Errorf("%s: not a run (kind %s)", runID, meta.Kind)
	}

	rows, err := readCSV(filepath.Join(s.baseDir, runID, historyFile), 2+len(dynamo.Channels))
	if err != nil {
		return nil, nil, err
	}

	p := meta.Params
	p.Steps = len(rows)
	res := dynamo.NewResult(p)
	excitation := make([]float64, len(rows))

	for i, row := range rows {
		excitation[i] = row[1]
		for j, c := range dynamo.Channels {
			res.Channel(c)[i] = row[2+j]
		}
	}

	return res, excitation, nil
}

func (s *Store) LoadSpectrum(runID string) (*spectrum.Spectrum, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	if meta.Kind != KindSpectrum {
		return nil, fmt.Errorf("%s: not a spectrum (kind %s)", runID, meta.Kind)
	}

	rows, err := readCSV(filepath.Join(s.baseDir, runID, spectrumFile), 1+len(spectrum.Channels))
	if err != nil {
		return nil, err
	}

	spec := &spectrum.Spectrum{
		Periods:      make([]float64, len(rows)),
		Acceleration: make([]float64, len(rows)),
		Velocity:     make([]float64, len(rows)),
		Displacement: make([]float64, len(rows)),
		Energy:       make([]float64, len(rows)),
	}
	for i, row := range rows {
		spec.Periods[i] = row[0]
		for j, c := range spectrum.Channels {
			spec.Channel(c)[i] = row[1+j]
		}
	}

	return spec, nil
}

func writeCSV(path string, header []string, rows [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for j, val := range row {
			record[j] = strconv.FormatFloat(val, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func readCSV(path string, columns int) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = columns

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, columns)
		for j, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %d: %w", path, i+1, j+1, err)
			}
			row[j] = val
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func finite(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}
