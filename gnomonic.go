package geodesic

import "math"

// Gnomonic performs the ellipsoidal gnomonic projection centered at an
// arbitrary point on the ellipsoid.  Geodesics through the center project to
// straight lines in the plane; the projection is only defined within 90
// degrees of arc of the center and becomes singular as that limit is
// approached.
//
// The projection is computed from the geodesic reduced length m12 and
// geodesic scale M12: the point at azimuth azi1 and geodesic distance s12
// from the center maps to polar planar coordinates (rho = m12/M12, azi1).
type Gnomonic struct {
	e *Ellipsoid
}

const gnomonicNumit = 10

// eps0 is about 1.5e-10; the reverse projection iterates until the distance
// correction drops below eps0 * a (sub-millimeter on Earth).
var gnomonicEps = 0.01 * math.Sqrt(epsilon)

// NewGnomonic initializes a gnomonic projection on the given ellipsoid.
// The projection and the geodesic operations share the exact same ellipsoid
// instance, so projected and solved quantities are mutually consistent.
func NewGnomonic(e *Ellipsoid) *Gnomonic {
	return &Gnomonic{e: e}
}

// Ellipsoid the projection operates on.
func (p *Gnomonic) Ellipsoid() *Ellipsoid {
	return p.e
}

// Forward projects a point to the plane of the projection centered at
// (lat0, lon0).
//
// Param lat0 is the latitude of the projection center (degrees).
// Param lon0 is the longitude of the projection center (degrees).
// Param lat is the latitude of the point (degrees).
// Param lon is the longitude of the point (degrees).
// Out param x is a pointer to the easting of the point (meters).
// Out param y is a pointer to the northing of the point (meters).
//
// The projected coordinates grow without bound as the arc distance from the
// center approaches 90 degrees, and are NaN at and beyond that limit (the
// projection has no value there); no error is raised.  Latitudes should be
// in the range [-90,+90].  Either out param may be nil.
func (p *Gnomonic) Forward(lat0, lon0, lat, lon float64, x, y *float64) {
	_, _, salp1, calp1, _, _, m12, gM12, _ :=
		geodGenInverse(&p.e.g, lat0, lon0, lat, lon)
	var xx, yy float64
	if gM12 <= 0 {
		xx = math.NaN()
		yy = math.NaN()
	} else {
		rho := m12 / gM12
		// salp1, calp1 are the sine and cosine of the azimuth at the center.
		xx = rho * salp1
		yy = rho * calp1
	}
	if x != nil {
		*x = xx
	}
	if y != nil {
		*y = yy
	}
}

// Reverse projects a planar point back to geographic coordinates.
//
// Param lat0 is the latitude of the projection center (degrees).
// Param lon0 is the longitude of the projection center (degrees).
// Param x is the easting of the point (meters).
// Param y is the northing of the point (meters).
// Out param lat is a pointer to the latitude of the point (degrees).
// Out param lon is a pointer to the longitude of the point (degrees).
//
// The geodesic distance to the point is refined with Newton's method against
// the forward projection, at most gnomonicNumit iterations.  If the
// iteration does not reach tolerance the last iterate is returned; this
// trades a little accuracy far from the center for never failing.  The
// returned lon is in the range (-180,+180].  Either out param may be nil.
func (p *Gnomonic) Reverse(lat0, lon0, x, y float64, lat, lon *float64) {
	azi0 := atan2d(x, y)
	rho := math.Hypot(x, y)
	s := p.e.g.a * math.Atan(rho/p.e.g.a)
	little := rho <= p.e.g.a
	if !little {
		rho = 1 / rho
	}
	var l geodGeodesicLine
	geodLineInit(&l, &p.e.g, lat0, lon0, azi0)
	var lat1, lon1 float64
	trip := false
	for count := gnomonicNumit; count > 0; count-- {
		var m, gM float64
		lat1, lon1, _, m, gM, _, _ = l.position(s)
		if trip {
			break
		}
		// If little, solve rho(s) = rho with drho(s)/ds = 1/M^2;
		// otherwise solve 1/rho(s) = 1/rho with d(1/rho(s))/ds = -1/m^2.
		var ds float64
		if little {
			ds = (m/gM - rho) * sq(gM)
		} else {
			ds = (rho - gM/m) * sq(m)
		}
		s -= ds
		if !(math.Abs(ds) >= gnomonicEps*p.e.g.a) {
			trip = true
		}
	}
	// Without convergence the last iterate is still the best available
	// estimate.
	if lat != nil {
		*lat = lat1
	}
	if lon != nil {
		*lon = lon1
	}
}
