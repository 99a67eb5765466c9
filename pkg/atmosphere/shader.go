package atmosphere

import "github.com/chewxy/math32"

// OpticalDepth32 is OpticalDepth evaluated in float32, matching the
// precision of the shader that builds the lookup table on the GPU. It is
// used to bound the error a float32 table introduces.
func (a *Atmosphere) OpticalDepth32(pos, dir [3]float32, length float32) float32 {
	planetRadius := float32(a.cfg.PlanetRadius)
	densityFactor := float32(a.cfg.DensityFactor)
	scaleHeight := float32(a.cfg.ScaleHeight)

	steps := a.cfg.IntegrationSteps
	stepSize := length / float32(steps-1)

	pt := pos
	var depth float32
	for i := 0; i < steps; i++ {
		r := math32.Sqrt(pt[0]*pt[0] + pt[1]*pt[1] + pt[2]*pt[2])
		h := math32.Max(r-planetRadius, 0)
		depth += densityFactor * math32.Exp(-h/scaleHeight) * stepSize

		pt[0] += dir[0] * stepSize
		pt[1] += dir[1] * stepSize
		pt[2] += dir[2] * stepSize
	}
	return depth
}
