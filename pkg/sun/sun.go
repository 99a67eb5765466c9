// Package sun locates the sun relative to sites on a spherical planet so
// that optical depth toward the sun can be queried.
package sun

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/df07/go-optical-depth/pkg/core"
)

// Direction returns the unit vector toward the sun at t in an Earth-fixed
// frame: +Z through the north pole, +X through the prime meridian.
func Direction(t time.Time) core.Vec3 {
	jd := julian.TimeToJD(t.UTC())

	// JD stands in for JDE; the difference is about a minute of time
	ra, dec := solar.ApparentEquatorial(jd)

	// Equatorial (inertial) unit vector
	x := dec.Cos() * ra.Cos()
	y := dec.Cos() * ra.Sin()
	z := dec.Sin()

	// Rotate into the Earth-fixed frame by Greenwich sidereal time
	gst := sidereal.Apparent(jd).Angle()
	cosGST, sinGST := gst.Cos(), gst.Sin()

	return core.NewVec3(
		x*cosGST+y*sinGST,
		-x*sinGST+y*cosGST,
		z,
	)
}

// Site returns the position of a point at the given latitude, longitude
// (east positive) and altitude above a sphere of planetRadius.
func Site(lat, lon unit.Angle, altitude, planetRadius float64) core.Vec3 {
	r := planetRadius + altitude
	return core.NewVec3(
		r*lat.Cos()*lon.Cos(),
		r*lat.Cos()*lon.Sin(),
		r*lat.Sin(),
	)
}

// Zenith returns the angle between the local vertical at site and dir.
// dir must be unit length.
func Zenith(site, dir core.Vec3) unit.Angle {
	cos := site.Normalize().Dot(dir)
	return unit.Angle(math.Acos(math.Max(-1, math.Min(1, cos))))
}

// AboveHorizon reports whether dir points above the geometric horizon at site
func AboveHorizon(site, dir core.Vec3) bool {
	return site.Dot(dir) > 0
}
