package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/physics"
	"github.com/san-kum/sdofsim/internal/spectrum"
	"github.com/san-kum/sdofsim/internal/wave"
)

const (
	DefaultScheme     = "newmark"
	DefaultMass       = 10.0
	DefaultStiffness  = 10.0
	DefaultDamping    = 0.02
	DefaultDt         = 0.02
	DefaultBeta       = dynamo.BetaAverage
	DefaultSteps      = 1000
	DefaultAmplitude  = 1.0
	DefaultWavePeriod = 0.5
	DefaultPeriodLow  = 0.1
	DefaultPeriodHigh = 10.0
	DefaultDivisions  = 100
)

type Config struct {
	Scheme   string         `yaml:"scheme"`
	System   SystemConfig   `yaml:"system"`
	Wave     WaveConfig     `yaml:"wave"`
	Spectrum SpectrumConfig `yaml:"spectrum"`
}

// SystemConfig describes the oscillator. Weight, when set, replaces Mass
// (mass = weight / g). Period, when set, replaces Stiffness
// (k = 4π²·m / T²).
type SystemConfig struct {
	Mass      float64 `yaml:"mass"`
	Weight    float64 `yaml:"weight,omitempty"`
	Stiffness float64 `yaml:"stiffness"`
	Period    float64 `yaml:"period,omitempty"`
	Damping   float64 `yaml:"damping"`
	Dt        float64 `yaml:"dt"`
	Beta      float64 `yaml:"beta"`
	Steps     int     `yaml:"steps"`
}

// WaveConfig selects the excitation: a sample file if File is set,
// otherwise a sine of Amplitude and Period, or a single pulse of Amplitude
// when Pulse is true. Scale multiplies the samples.
type WaveConfig struct {
	File      string  `yaml:"file,omitempty"`
	Scale     float64 `yaml:"scale"`
	Amplitude float64 `yaml:"amplitude"`
	Period    float64 `yaml:"period"`
	Pulse     bool    `yaml:"pulse,omitempty"`
}

type SpectrumConfig struct {
	PeriodLow     float64 `yaml:"period_low"`
	PeriodHigh    float64 `yaml:"period_high"`
	Divisions     int     `yaml:"divisions"`
	ReferenceMass float64 `yaml:"reference_mass"`
	Workers       int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme: DefaultScheme,
		System: SystemConfig{
			Mass:      DefaultMass,
			Stiffness: DefaultStiffness,
			Damping:   DefaultDamping,
			Dt:        DefaultDt,
			Beta:      DefaultBeta,
			Steps:     DefaultSteps,
		},
		Wave: WaveConfig{
			Scale:     1.0,
			Amplitude: DefaultAmplitude,
			Period:    DefaultWavePeriod,
		},
		Spectrum: SpectrumConfig{
			PeriodLow:     DefaultPeriodLow,
			PeriodHigh:    DefaultPeriodHigh,
			Divisions:     DefaultDivisions,
			ReferenceMass: spectrum.DefaultReferenceMass,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base; fields absent from the file
// keep the base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params resolves the oscillator parameters.
func (c *Config) Params() (dynamo.Params, error) {
	s := c.System
	mass := s.Mass
	if s.Weight != 0 {
		m, err := physics.MassFromWeight(s.Weight)
		if err != nil {
			return dynamo.Params{}, err
		}
		mass = m
	}

	stiffness := s.Stiffness
	if s.Period != 0 {
		k, err := physics.StiffnessFromPeriod(mass, s.Period)
		if err != nil {
			return dynamo.Params{}, err
		}
		stiffness = k
	}

	p := dynamo.Params{
		Mass:      mass,
		Stiffness: stiffness,
		Damping:   s.Damping,
		Dt:        s.Dt,
		Beta:      s.Beta,
		Steps:     s.Steps,
	}
	return p, p.Validate()
}

// Excitation loads or generates the base acceleration series, Steps long.
func (c *Config) Excitation() ([]float64, error) {
	var (
		samples []float64
		err     error
	)

	switch {
	case c.Wave.File != "":
		samples, err = wave.Load(c.Wave.File, c.System.Steps)
	case c.Wave.Pulse:
		samples = wave.Pulse(c.Wave.Amplitude, c.System.Steps)
	default:
		samples, err = wave.Sine(c.Wave.Amplitude, c.Wave.Period, c.System.Dt, c.System.Steps)
	}
	if err != nil {
		return nil, err
	}

	if c.Wave.Scale != 0 && c.Wave.Scale != 1 {
		samples = wave.Scale(samples, c.Wave.Scale)
	}
	return samples, nil
}

// SweepConfig builds the spectrum sweep from the system and spectrum
// sections. Mass and stiffness are not used; the sweep derives stiffness
// from ReferenceMass per period.
func (c *Config) SweepConfig() spectrum.Config {
	return spectrum.Config{
		PeriodLow:     c.Spectrum.PeriodLow,
		PeriodHigh:    c.Spectrum.PeriodHigh,
		Divisions:     c.Spectrum.Divisions,
		Damping:       c.System.Damping,
		Dt:            c.System.Dt,
		Beta:          c.System.Beta,
		Steps:         c.System.Steps,
		ReferenceMass: c.Spectrum.ReferenceMass,
		Workers:       c.Spectrum.Workers,
	}
}

// Validate checks the system section and the scheme name is non-empty.
// Spectrum ranges are checked by the sweep itself.
func (c *Config) Validate() error {
	if c.Scheme == "" {
		return &dynamo.ArgumentError{Field: "scheme", Value: c.Scheme, Reason: "must be set"}
	}
	_, err := c.Params()
	return err
}
