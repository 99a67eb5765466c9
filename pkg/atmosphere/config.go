package atmosphere

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoIntersection is returned when a ray never reaches the outer atmosphere boundary
	ErrNoIntersection = errors.New("atmosphere: ray does not reach the atmosphere boundary")

	// ErrInvalidConfig is wrapped by every configuration validation failure
	ErrInvalidConfig = errors.New("atmosphere: invalid configuration")

	// ErrZeroDirection is returned when a ray direction cannot be normalized
	ErrZeroDirection = errors.New("atmosphere: zero ray direction")
)

// Earth constants used by DefaultConfig
const (
	EarthAtmosphereRadius = 6471000.0
	EarthRadius           = 6371000.0
	EarthDensityFactor    = 0.0001
	EarthScaleHeight      = 9300.0
	DefaultSteps          = 50
)

// Config holds the planet and density model constants.
// A Config is treated as immutable once passed to New.
type Config struct {
	AtmosphereRadius float64 // Outer boundary of the shell, meters from the planet center
	PlanetRadius     float64 // Ground level, meters from the planet center
	DensityFactor    float64 // Density at ground level
	ScaleHeight      float64 // Exponential falloff length in meters
	IntegrationSteps int     // Number of density samples along a ray (must be > 1)
}

// DefaultConfig returns the Earth configuration
func DefaultConfig() Config {
	return Config{
		AtmosphereRadius: EarthAtmosphereRadius,
		PlanetRadius:     EarthRadius,
		DensityFactor:    EarthDensityFactor,
		ScaleHeight:      EarthScaleHeight,
		IntegrationSteps: DefaultSteps,
	}
}

// Validate checks the configuration. All failures wrap ErrInvalidConfig.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"atmosphere radius", c.AtmosphereRadius},
		{"planet radius", c.PlanetRadius},
		{"density factor", c.DensityFactor},
		{"scale height", c.ScaleHeight},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}

	if c.PlanetRadius < 0 {
		return fmt.Errorf("%w: planet radius must be non-negative, got %g", ErrInvalidConfig, c.PlanetRadius)
	}
	if c.AtmosphereRadius <= c.PlanetRadius {
		return fmt.Errorf("%w: atmosphere radius %g must exceed planet radius %g",
			ErrInvalidConfig, c.AtmosphereRadius, c.PlanetRadius)
	}
	if c.DensityFactor < 0 {
		return fmt.Errorf("%w: density factor must be non-negative, got %g", ErrInvalidConfig, c.DensityFactor)
	}
	if c.ScaleHeight <= 0 {
		return fmt.Errorf("%w: scale height must be positive, got %g", ErrInvalidConfig, c.ScaleHeight)
	}
	// step size is length/(steps-1)
	if c.IntegrationSteps <= 1 {
		return fmt.Errorf("%w: integration steps must be greater than 1, got %d", ErrInvalidConfig, c.IntegrationSteps)
	}
	return nil
}

// ShellThickness returns the distance between ground and the outer boundary
func (c Config) ShellThickness() float64 {
	return c.AtmosphereRadius - c.PlanetRadius
}
