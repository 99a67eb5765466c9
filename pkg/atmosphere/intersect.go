package atmosphere

import (
	"math"

	"github.com/df07/go-optical-depth/pkg/core"
)

// Distance returns the distance along d from p to the far intersection with
// the outer atmosphere boundary.
//
// d must be unit length: the quadratic is solved with its leading
// coefficient fixed at 1. Use RayOpticalDepth for unnormalized directions.
// Returns ErrNoIntersection when the ray misses the boundary sphere or the
// sphere lies entirely behind p.
func (a *Atmosphere) Distance(p, d core.Vec3) (float64, error) {
	r2 := a.cfg.AtmosphereRadius * a.cfg.AtmosphereRadius
	pd2 := 2 * p.Dot(d)

	discriminant := pd2*pd2 - 4*(p.LengthSquared()-r2)
	if discriminant < 0 || math.IsNaN(discriminant) {
		return 0, ErrNoIntersection
	}

	t := 0.5 * (math.Sqrt(discriminant) - pd2)
	if t < 0 {
		return 0, ErrNoIntersection
	}
	return t, nil
}
