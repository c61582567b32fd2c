package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scheme != "newmark" {
		t.Errorf("expected scheme newmark, got %s", cfg.Scheme)
	}
	if cfg.System.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.System.Beta != 0.25 {
		t.Errorf("expected beta 0.25, got %f", cfg.System.Beta)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	doc := `
scheme: linear
system:
  mass: 5
  period: 0.5
  beta: 0.1666666666666667
spectrum:
  divisions: 20
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Scheme != "linear" || cfg.Spectrum.Divisions != 20 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.System.Dt != DefaultDt || cfg.System.Steps != DefaultSteps {
		t.Error("expected unset fields to keep defaults")
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	want := 4 * math.Pi * math.Pi * 5 / 0.25
	if math.Abs(p.Stiffness-want) > 1e-9 {
		t.Errorf("expected stiffness from period %f, got %f", want, p.Stiffness)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Wave.File = "wave.csv"
	cfg.Spectrum.Workers = 4

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Wave.File != "wave.csv" || got.Spectrum.Workers != 4 {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestParamsFromWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.System.Weight = 98.0665

	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.Mass-10) > 1e-12 {
		t.Errorf("expected mass 10, got %f", p.Mass)
	}
}

func TestParamsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.System.Steps = 0

	if _, err := cfg.Params(); !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestExcitation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.System.Steps = 50
	cfg.Wave.Scale = 0.01
	cfg.Wave.Amplitude = 100

	w, err := cfg.Excitation()
	if err != nil {
		t.Fatal(err)
	}
	if len(w) != 50 {
		t.Fatalf("expected 50 samples, got %d", len(w))
	}
	if w[0] != 0 {
		t.Errorf("sine should start at zero, got %f", w[0])
	}
	// 100 · 0.01 scaled amplitude
	for _, v := range w {
		if math.Abs(v) > 1+1e-12 {
			t.Fatalf("sample %f exceeds scaled amplitude", v)
		}
	}

	cfg.Wave.Pulse = true
	w, err = cfg.Excitation()
	if err != nil {
		t.Fatal(err)
	}
	if w[0] != 1 || w[1] != 0 {
		t.Errorf("unexpected pulse %v", w[:2])
	}
}

func TestExcitationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.csv")
	if err := os.WriteFile(path, []byte("1,2,3"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.System.Steps = 3
	cfg.Wave.File = path

	w, err := cfg.Excitation()
	if err != nil {
		t.Fatal(err)
	}
	if w[2] != 3 {
		t.Errorf("unexpected samples %v", w)
	}

	cfg.System.Steps = 4
	if _, err := cfg.Excitation(); !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for a short file, got %v", err)
	}
}

func TestSweepConfig(t *testing.T) {
	cfg := DefaultConfig()
	sc := cfg.SweepConfig()

	if sc.PeriodLow != DefaultPeriodLow || sc.Divisions != DefaultDivisions || sc.Steps != DefaultSteps {
		t.Errorf("unexpected sweep config %+v", sc)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("run", "linear")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.System.Beta != dynamo.BetaLinear {
		t.Errorf("expected beta 1/6, got %f", cfg.System.Beta)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("run", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "average"); cfg != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("spectrum")
	if len(presets) != 3 || presets[0] != "long" {
		t.Errorf("unexpected spectrum presets %v", presets)
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestPresetsValid(t *testing.T) {
	for kind, group := range Presets {
		for name, cfg := range group {
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", kind, name, err)
			}
		}
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("system:\n  steps: 500\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("run", "explicit")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.System.Steps != 500 {
		t.Errorf("expected file to set steps, got %d", cfg.System.Steps)
	}
	if cfg.Scheme != "explicit" || cfg.System.Dt != 0.01 {
		t.Errorf("expected preset values to survive, got %+v", cfg)
	}
	if base.System.Steps != 2000 {
		t.Error("preset must not be modified")
	}
}
