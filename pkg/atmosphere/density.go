package atmosphere

import (
	"math"

	"github.com/df07/go-optical-depth/pkg/core"
)

// Density returns the air density at pos.
// Heights below ground are clamped to ground level, so the planet center
// has the ground density.
func (a *Atmosphere) Density(pos core.Vec3) float64 {
	h := math.Max(pos.Length()-a.cfg.PlanetRadius, 0)
	return a.cfg.DensityFactor * math.Exp(-h/a.cfg.ScaleHeight)
}
