package atmosphere

import (
	"math"

	"github.com/df07/go-optical-depth/pkg/core"
)

// OpticalDepth integrates density along pos + t*dir for t in [0, length].
//
// Left-endpoint Riemann sum over IntegrationSteps samples spaced
// length/(IntegrationSteps-1) apart: each sample contributes its own density
// times the step, starting at pos. A zero length returns 0.
func (a *Atmosphere) OpticalDepth(pos, dir core.Vec3, length float64) float64 {
	steps := a.cfg.IntegrationSteps
	stepSize := length / float64(steps-1)
	delta := dir.Multiply(stepSize)

	pt := pos
	depth := 0.0
	for i := 0; i < steps; i++ {
		depth += a.Density(pt) * stepSize
		pt = pt.Add(delta)
	}
	return depth
}

// RayOpticalDepth normalizes dir, finds the distance to the atmosphere
// boundary and integrates density over that segment.
func (a *Atmosphere) RayOpticalDepth(pos, dir core.Vec3) (float64, error) {
	if dir.IsZero() {
		return 0, ErrZeroDirection
	}
	dir = dir.Normalize()

	length, err := a.Distance(pos, dir)
	if err != nil {
		return 0, err
	}
	return a.OpticalDepth(pos, dir, length), nil
}

// Transmittance converts an optical depth into the fraction of light that
// survives the path.
func Transmittance(depth float64) float64 {
	return math.Exp(-depth)
}
