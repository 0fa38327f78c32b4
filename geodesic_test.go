package geodesic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eqish(x, y float64, prec int) bool {
	return math.Abs(x-y) < float64(1.0)/math.Pow10(prec)
}

// angClose compares two angles in degrees modulo 360.
func angClose(x, y, tol float64) bool {
	d, _ := angDiff(x, y)
	return math.Abs(d) < tol
}

const (
	wgs84A = 6378137.0
	wgs84F = float64(1.) / 298.257223563
	// Length of a quarter meridian on WGS84.
	meridianQuarter = 10001965.7293127
)

func TestEllipsoidParams(t *testing.T) {
	assert.Equal(t, wgs84A, WGS84.Radius())
	assert.Equal(t, wgs84F, WGS84.Flattening())
}

func TestInverseEquator(t *testing.T) {
	var s12, azi1, azi2 float64
	a12 := WGS84.Inverse(0, 0, 0, 90, &s12, &azi1, &azi2)
	// A quarter of the equator.
	require.InDelta(t, wgs84A*math.Pi/2, s12, 1e-6)
	require.InDelta(t, 90, azi1, 1e-12)
	require.InDelta(t, 90, azi2, 1e-12)
	// On the equator the arc length is the longitude difference scaled by
	// 1/(1-f).
	require.InDelta(t, 90/(1-wgs84F), a12, 1e-9)
}

func TestInverseMeridian(t *testing.T) {
	var s12, azi1, azi2 float64
	WGS84.Inverse(0, 0, 90, 0, &s12, &azi1, &azi2)
	require.InDelta(t, meridianQuarter, s12, 1e-3)
	require.InDelta(t, 0, azi1, 1e-12)
	require.InDelta(t, 0, azi2, 1e-12)
}

func TestInverseKnown(t *testing.T) {
	// JFK to CDG.  Reference values cross-checked against an independent
	// Vincenty solve (5854179.3277 m).
	var s12, azi1, azi2 float64
	WGS84.Inverse(40.6, -73.8, 49.01, 2.56, &s12, &azi1, &azi2)
	assert.InDelta(t, 53.47497, azi1, 1e-4)
	assert.InDelta(t, 111.60411, azi2, 1e-4)
	assert.InDelta(t, 5854179.3276, s12, 1e-3)
}

func TestInverseAntipodalEquator(t *testing.T) {
	// Equatorial antipodal points: the shortest path runs over a pole and
	// its length is half a meridian circumference.  The solve must neither
	// hang nor return NaN.
	var s12, azi1, azi2 float64
	a12 := WGS84.Inverse(0, 0, 0, 180, &s12, &azi1, &azi2)
	require.False(t, math.IsNaN(s12))
	require.False(t, math.IsNaN(azi1))
	require.False(t, math.IsNaN(azi2))
	require.False(t, math.IsNaN(a12))
	require.InDelta(t, 2*meridianQuarter, s12, 1e-2)
}

func TestInverseNearAntipodal(t *testing.T) {
	// Near-antipodal inverse problems exercise the astroid starting guess;
	// the solve must converge to a consistent solution.
	var s12, azi1 float64
	WGS84.Inverse(30, 0, -29.9, 179.8, &s12, &azi1, nil)
	require.False(t, math.IsNaN(s12))
	require.False(t, math.IsNaN(azi1))
	// Check against the direct problem.
	var lat2, lon2 float64
	WGS84.Direct(30, 0, azi1, s12, &lat2, &lon2, nil)
	assert.True(t, eqish(lat2, -29.9, 8), "lat2 = %v", lat2)
	assert.True(t, angClose(lon2, 179.8, 1e-8), "lon2 = %v", lon2)
}

func TestInverseCoincident(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		lat := rng.Float64()*180 - 90
		lon := rng.Float64()*360 - 180
		var s12, azi1, azi2 float64
		a12 := WGS84.Inverse(lat, lon, lat, lon, &s12, &azi1, &azi2)
		if s12 != 0 || a12 != 0 {
			t.Fatalf("coincident (%v %v): s12=%v a12=%v", lat, lon, s12, a12)
		}
		// The conventional bearing is the degenerate meridional solution.
		if math.Mod(math.Abs(azi1), 180) != 0 ||
			math.Mod(math.Abs(azi2), 180) != 0 {
			t.Fatalf("coincident (%v %v): azi1=%v azi2=%v",
				lat, lon, azi1, azi2)
		}
	}
}

func TestDirectKnown(t *testing.T) {
	// JFK heading 53.5 degrees for 5850 km, the standard example.
	var lat2, lon2, azi2 float64
	WGS84.Direct(40.64, -73.78, 53.5, 5850e3, &lat2, &lon2, &azi2)
	assert.InDelta(t, 49.01473, lat2, 1e-4)
	assert.InDelta(t, 2.56026, lon2, 1e-4)
	assert.InDelta(t, 111.62988, azi2, 1e-4)
}

func TestDirectEquator(t *testing.T) {
	var lat2, lon2, azi2 float64
	WGS84.Direct(0, 0, 90, wgs84A*math.Pi/2, &lat2, &lon2, &azi2)
	require.InDelta(t, 0, lat2, 1e-9)
	require.InDelta(t, 90, lon2, 1e-9)
	require.InDelta(t, 90, azi2, 1e-9)
}

func TestDirectPoleCrossing(t *testing.T) {
	// Heading due north over the pole: the longitude jumps to the opposite
	// meridian and the path continues due south.
	var lat2, lon2, azi2 float64
	WGS84.Direct(89.9, 0, 0, 100e3, &lat2, &lon2, &azi2)
	require.InDelta(t, 89.2047, lat2, 0.01)
	require.InDelta(t, 180, math.Abs(lon2), 1e-9)
	require.InDelta(t, 180, math.Abs(azi2), 1e-9)
}

func TestDirectNegativeDistance(t *testing.T) {
	// Negative s12 travels backward along the same geodesic.
	var lata, lona, latb, lonb float64
	WGS84.Direct(35, 45, 30, -2e6, &lata, &lona, nil)
	WGS84.Direct(35, 45, 30+180, 2e6, &latb, &lonb, nil)
	require.True(t, eqish(lata, latb, 9), "lat %v != %v", lata, latb)
	require.True(t, angClose(lona, lonb, 1e-9), "lon %v != %v", lona, lonb)
}

func TestDirectLongitudeNormalized(t *testing.T) {
	var lon2 float64
	WGS84.Direct(10, 179.5, 90, 1e6, nil, &lon2, nil)
	require.True(t, lon2 > -180 && lon2 <= 180, "lon2 = %v", lon2)
	require.True(t, lon2 < 0, "crossing the antimeridian: lon2 = %v", lon2)
}

func TestInverseDirectRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50_000; i++ {
		lat1 := rng.Float64()*180 - 90
		lon1 := rng.Float64()*360 - 180
		lat2 := rng.Float64()*180 - 90
		lon2 := rng.Float64()*360 - 180

		var s12, azi1 float64
		WGS84.Inverse(lat1, lon1, lat2, lon2, &s12, &azi1, nil)

		var glat2, glon2 float64
		WGS84.Direct(lat1, lon1, azi1, s12, &glat2, &glon2, nil)

		// Compare by geodesic separation so that points near a pole, where
		// longitude is ill-conditioned, are judged by position.
		var sep float64
		WGS84.Inverse(lat2, lon2, glat2, glon2, &sep, nil, nil)
		if !(sep < 1e-4) {
			t.Fatalf("round trip failure (%v %v %v %v): sep=%v",
				lat1, lon1, lat2, lon2, sep)
		}
	}
}

func TestInverseSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50_000; i++ {
		lat1 := rng.Float64()*180 - 90
		lon1 := rng.Float64()*360 - 180
		lat2 := rng.Float64()*180 - 90
		lon2 := rng.Float64()*360 - 180

		var s12f, azi1f, azi2f float64
		WGS84.Inverse(lat1, lon1, lat2, lon2, &s12f, &azi1f, &azi2f)
		var s12r, azi1r, azi2r float64
		WGS84.Inverse(lat2, lon2, lat1, lon1, &s12r, &azi1r, &azi2r)

		if !eqish(s12f, s12r, 6) {
			t.Fatalf("s12 asymmetry (%v %v %v %v): %v != %v",
				lat1, lon1, lat2, lon2, s12f, s12r)
		}
		// Walking the geodesic backward reverses the azimuths.
		if !angClose(azi1r, azi2f+180, 1e-8) ||
			!angClose(azi2r, azi1f+180, 1e-8) {
			t.Fatalf("azimuth asymmetry (%v %v %v %v): %v %v / %v %v",
				lat1, lon1, lat2, lon2, azi1f, azi2f, azi1r, azi2r)
		}
	}
}

func TestInverseDeterminism(t *testing.T) {
	var s12a, azi1a, azi2a float64
	var s12b, azi1b, azi2b float64
	a12a := WGS84.Inverse(12.345, -67.89, -54.321, 98.76, &s12a, &azi1a, &azi2a)
	a12b := WGS84.Inverse(12.345, -67.89, -54.321, 98.76, &s12b, &azi1b, &azi2b)
	require.Equal(t, s12a, s12b)
	require.Equal(t, azi1a, azi1b)
	require.Equal(t, azi2a, azi2b)
	require.Equal(t, a12a, a12b)
}

func TestInverseInvalidLatitude(t *testing.T) {
	var s12 float64
	WGS84.Inverse(95, 0, 10, 10, &s12, nil, nil)
	require.True(t, math.IsNaN(s12))
}

func TestAngNormalize(t *testing.T) {
	assert.Equal(t, 179.0, angNormalize(-181))
	assert.Equal(t, -179.0, angNormalize(181))
	assert.Equal(t, 180.0, angNormalize(180))
	assert.Equal(t, 180.0, angNormalize(-180))
	assert.Equal(t, 0.0, angNormalize(720))
}

func TestSincosdExact(t *testing.T) {
	for _, x := range []float64{-720, -540, -360, -180, 0, 90, 180, 270, 360, 810} {
		s, c := sincosd(x)
		switch {
		case math.Mod(math.Abs(x), 180) == 90:
			assert.Equal(t, 0.0, c, "cos(%v)", x)
			assert.Equal(t, 1.0, math.Abs(s), "sin(%v)", x)
		default:
			assert.Equal(t, 0.0, math.Abs(s), "sin(%v)", x)
			assert.Equal(t, 1.0, math.Abs(c), "cos(%v)", x)
		}
	}
}

func TestVersionStrings(t *testing.T) {
	require.NotEmpty(t, EngineVersion())
	require.NotEmpty(t, ToolchainVersion())
	assert.Contains(t, EngineVersion(), Version)
}
