// Package config loads atmosphere and table build settings from the
// environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-optical-depth/pkg/atmosphere"
	"github.com/df07/go-optical-depth/pkg/lut"
)

// Recognized environment variables
const (
	EnvAtmosphereRadius = "ATMOSPHERE_RADIUS"
	EnvPlanetRadius     = "PLANET_RADIUS"
	EnvDensityFactor    = "DENSITY_FACTOR"
	EnvScaleHeight      = "SCALE_HEIGHT"
	EnvIntegrationSteps = "INTEGRATION_STEPS"
	EnvLUTWidth         = "LUT_WIDTH"
	EnvLUTHeight        = "LUT_HEIGHT"
	EnvLUTTileSize      = "LUT_TILE_SIZE"
	EnvLUTWorkers       = "LUT_WORKERS"
)

// Settings groups everything a caller needs to query or build tables
type Settings struct {
	Atmosphere atmosphere.Config
	Build      lut.BuildConfig
}

// Default returns the Earth atmosphere and the default table size
func Default() Settings {
	return Settings{
		Atmosphere: atmosphere.DefaultConfig(),
		Build:      lut.DefaultBuildConfig(),
	}
}

// Load overlays values from envFiles and then from the process environment
// on top of Default. Process variables win over file values. Missing files
// are skipped; malformed values and invalid results are errors.
func Load(envFiles ...string) (Settings, error) {
	values := map[string]string{}
	for _, file := range envFiles {
		fileValues, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Settings{}, fmt.Errorf("reading %s: %w", file, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
}

// FromLookup builds Settings from an arbitrary key lookup
func FromLookup(lookup func(string) (string, bool)) (Settings, error) {
	s := Default()
	p := parser{lookup: lookup}

	p.parseFloat(EnvAtmosphereRadius, &s.Atmosphere.AtmosphereRadius)
	p.parseFloat(EnvPlanetRadius, &s.Atmosphere.PlanetRadius)
	p.parseFloat(EnvDensityFactor, &s.Atmosphere.DensityFactor)
	p.parseFloat(EnvScaleHeight, &s.Atmosphere.ScaleHeight)
	p.parseInt(EnvIntegrationSteps, &s.Atmosphere.IntegrationSteps)
	p.parseInt(EnvLUTWidth, &s.Build.Width)
	p.parseInt(EnvLUTHeight, &s.Build.Height)
	p.parseInt(EnvLUTTileSize, &s.Build.TileSize)
	p.parseInt(EnvLUTWorkers, &s.Build.NumWorkers)

	if p.err != nil {
		return Settings{}, p.err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks both halves of the settings
func (s Settings) Validate() error {
	if err := s.Atmosphere.Validate(); err != nil {
		return err
	}
	return s.Build.Validate()
}

// parser keeps the first parse error so each field can be read unconditionally
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) parseFloat(key string, dst *float64) {
	raw, ok := p.lookup(key)
	if !ok || p.err != nil {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = v
}

func (p *parser) parseInt(key string, dst *int) {
	raw, ok := p.lookup(key)
	if !ok || p.err != nil {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = v
}
