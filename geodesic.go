package geodesic

// WGS84 conforming ellispoid
// https://en.wikipedia.org/wiki/World_Geodetic_System
var WGS84 = newEllipsoid(6378137, float64(1.)/298.257223563)

// Ellipsoid is an object for performing geodesic operations.
//
// The only instance is the WGS84 package-level variable, constructed once at
// package initialization and read-only thereafter; all operations are safe
// for concurrent use without additional locking.
type Ellipsoid struct {
	g          geodGeodesic
	radius     float64
	flattening float64
}

// newEllipsoid initializes a new geodesic ellipsoid object.
//
// Param radius is the equatorial radius (meters).
// Param flattening is the flattening factor of the ellipsoid.
func newEllipsoid(radius, flattening float64) *Ellipsoid {
	e := &Ellipsoid{radius: radius, flattening: flattening}
	geodInit(&e.g, radius, flattening)
	return e
}

// Radius of the Ellipsoid
func (e *Ellipsoid) Radius() float64 {
	return e.radius
}

// Flattening of the Ellipsoid
func (e *Ellipsoid) Flattening() float64 {
	return e.flattening
}

// Inverse solves the inverse geodesic problem.
//
// Param lat1 is latitude of point 1 (degrees).
// Param lon1 is longitude of point 1 (degrees).
// Param lat2 is latitude of point 2 (degrees).
// Param lon2 is longitude of point 2 (degrees).
// Out param s12 is a pointer to the distance from point 1 to point 2 (meters).
// Out param azi1 is a pointer to the azimuth at point 1 (degrees).
// Out param azi2 is a pointer to the (forward) azimuth at point 2 (degrees).
// Returns a12, the arc length between the points on the auxiliary sphere
// (degrees).
//
// lat1 and lat2 should be in the range [-90,+90]; latitudes outside that
// range yield NaN results.  Longitudes may be any real value and are reduced
// modulo 360 internally.  The values of azi1 and azi2 returned are in the
// range (-180,+180].  Any of the "return" arguments, s12, etc., may be
// replaced with nil, if you do not need some quantities computed.
//
// For coincident points s12 is 0 and both azimuths equal the bearing of the
// degenerate meridional solution, 0 or 180 depending on hemisphere (the
// bearing between a point and itself is a genuine singularity of the
// problem, so a fixed convention is reported).
//
// The solution to the inverse problem is found using Newton's method.  If
// this fails to converge (this is very unlikely in geodetic applications
// but does occur for very eccentric ellipsoids), then the bisection method
// is used to refine the solution, so the iteration count is bounded for
// every input and the best available estimate is always returned.
func (e *Ellipsoid) Inverse(
	lat1, lon1, lat2, lon2 float64,
	s12, azi1, azi2 *float64,
) (a12 float64) {
	return geodInverse(&e.g, lat1, lon1, lat2, lon2, s12, azi1, azi2)
}

// Direct solves the direct geodesic problem.
//
// Param lat1 is the latitude of point 1 (degrees).
// Param lon1 is the longitude of point 1 (degrees).
// Param azi1 is the azimuth at point 1 (degrees).
// Param s12 is the distance from point 1 to point 2 (meters). negative is ok.
// Out param lat2 is a pointer to the latitude of point 2 (degrees).
// Out param lon2 is a pointer to the longitude of point 2 (degrees).
// Out param azi2 is a pointer to the (forward) azimuth at point 2 (degrees).
// Returns a12, the arc length between the points on the auxiliary sphere
// (degrees).
//
// lat1 should be in the range [-90,+90].  azi1 may be any real value and is
// normalized internally.  Paths crossing a pole or the antimeridian wrap
// correctly; the values of lon2 and azi2 returned are in the range
// (-180,+180].  Any of the "return" arguments, lat2, etc., may be replaced
// with nil, if you do not need some quantities computed.
//
// The direct problem is solved by inverting the distance series and cannot
// fail to converge.
func (e *Ellipsoid) Direct(
	lat1, lon1, azi1, s12 float64,
	lat2, lon2, azi2 *float64,
) (a12 float64) {
	return geodDirect(&e.g, lat1, lon1, azi1, s12, lat2, lon2, azi2)
}
