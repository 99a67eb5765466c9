package atmosphere

import "math"

// RadialOpticalDepth is the closed-form optical depth of a ray pointing
// straight up from altitude (meters above ground, >= 0) over length meters.
//
// It serves as a reference for the numeric integrator. It is exact only for
// radial rays that start at or above ground.
func (a *Atmosphere) RadialOpticalDepth(altitude, length float64) float64 {
	h := a.cfg.ScaleHeight
	altitude = math.Max(altitude, 0)
	return a.cfg.DensityFactor * h * math.Exp(-altitude/h) * -math.Expm1(-length/h)
}
