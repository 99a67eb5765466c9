// Package lut maps rays to a normalized 2D coordinate and builds optical
// depth lookup tables indexed by it.
package lut

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/df07/go-optical-depth/pkg/atmosphere"
	"github.com/df07/go-optical-depth/pkg/core"
)

// Coord is a ray compressed to two numbers.
// D remaps the cosine between the radial direction and the ray direction
// from [-1, 1] to [0, 1]; H is the altitude normalized to the shell.
// Neither is clamped: values outside [0, 1] mean the ray origin is outside
// the shell.
type Coord struct {
	D float64
	H float64
}

// Mapper converts between rays and Coords for one planet geometry
type Mapper struct {
	PlanetRadius     float64
	AtmosphereRadius float64
}

// NewMapper creates a mapper for the radii in cfg
func NewMapper(cfg atmosphere.Config) Mapper {
	return Mapper{
		PlanetRadius:     cfg.PlanetRadius,
		AtmosphereRadius: cfg.AtmosphereRadius,
	}
}

// To2D compresses a ray. dir must be unit length.
// At the planet center the radial direction is undefined and D is 0.5.
func (m Mapper) To2D(pos, dir core.Vec3) Coord {
	r := pos.Length()
	c := Coord{
		D: 0.5,
		H: (r - m.PlanetRadius) / (m.AtmosphereRadius - m.PlanetRadius),
	}
	if r > 0 {
		c.D = (pos.Dot(dir)/r + 1) / 2
	}
	return c
}

// From2D expands a coordinate into a canonical ray.
// The origin is always on the +Z axis and the direction lies in the XZ
// plane; azimuth carries no information under spherical symmetry.
func (m Mapper) From2D(x, y float64) (pos, dir core.Vec3) {
	height := y*(m.AtmosphereRadius-m.PlanetRadius) + m.PlanetRadius
	z := x*2 - 1

	pos = core.NewVec3(0, 0, height)
	// x slightly outside [0, 1] would otherwise produce NaN
	dir = core.NewVec3(math.Sqrt(math.Max(0, 1-z*z)), 0, z)
	return pos, dir
}

// ViewZenith returns the angle between the local vertical and the ray
// direction encoded by c.D.
func ViewZenith(c Coord) unit.Angle {
	cos := math.Max(-1, math.Min(1, c.D*2-1))
	return unit.Angle(math.Acos(cos))
}

// CoordForZenith returns the D component for a view zenith angle
func CoordForZenith(zenith unit.Angle) float64 {
	return (zenith.Cos() + 1) / 2
}
