package geodesic

import "math"

// Geocentric converts geodetic coordinates to Earth-centered Cartesian
// coordinates: X toward the intersection of the equator and the prime
// meridian, Y toward latitude 0, longitude 90, and Z toward the north pole.
type Geocentric struct {
	a   float64
	e2  float64
	e2m float64 // 1 - e2
}

// NewGeocentric initializes a geocentric converter on the given ellipsoid.
func NewGeocentric(e *Ellipsoid) *Geocentric {
	return &Geocentric{a: e.g.a, e2: e.g.e2, e2m: sq(e.g.f1)}
}

// Forward converts a geodetic point to geocentric coordinates.
//
// Param lat is the latitude of the point (degrees).
// Param lon is the longitude of the point (degrees).
// Param h is the height of the point above the ellipsoid (meters).
// Out param x, y, z are pointers to the geocentric coordinates (meters).
//
// lat should be in the range [-90,+90]; latitudes outside that range yield
// NaN results.  The conversion is closed form (via the radius of curvature
// in the prime vertical) and cannot fail.  Any of the out params may be nil.
func (c *Geocentric) Forward(lat, lon, h float64, x, y, z *float64) {
	sphi, cphi := sincosd(latFix(lat))
	slam, clam := sincosd(lon)
	n := c.a / math.Sqrt(1 - c.e2*sq(sphi))
	zz := (c.e2m*n + h) * sphi
	xx := (n + h) * cphi
	yy := xx * slam
	xx *= clam
	if x != nil {
		*x = xx
	}
	if y != nil {
		*y = yy
	}
	if z != nil {
		*z = zz
	}
}
