package config

import (
	"sort"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

func preset(mod func(c *Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

// Presets are grouped by command: "run" and "spectrum".
var Presets = map[string]map[string]*Config{
	"run": {
		"average": preset(func(c *Config) { c.Scheme = "average" }),
		"linear": preset(func(c *Config) {
			c.Scheme = "linear"
			c.System.Beta = dynamo.BetaLinear
		}),
		"explicit": preset(func(c *Config) {
			c.Scheme = "explicit"
			c.System.Beta = dynamo.BetaExplicit
			c.System.Dt = 0.01
			c.System.Steps = 2000
		}),
		"free": preset(func(c *Config) {
			c.System.Damping = 0
			c.Wave.Pulse = true
		}),
		"resonance": preset(func(c *Config) {
			// sine at the natural period of m=10, k=10
			c.Wave.Period = 6.283185307179586
			c.System.Steps = 3000
		}),
	},
	"spectrum": {
		"short": preset(func(c *Config) {
			c.Spectrum.PeriodLow = 0.05
			c.Spectrum.PeriodHigh = 2.0
			c.System.Dt = 0.005
			c.System.Steps = 4000
		}),
		"standard": preset(func(c *Config) {}),
		"long": preset(func(c *Config) {
			c.Spectrum.PeriodLow = 0.5
			c.Spectrum.PeriodHigh = 20.0
			c.Spectrum.Divisions = 200
			c.System.Steps = 3000
		}),
	},
}

func GetPreset(kind, name string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
