package geodesic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGnomonicCenter(t *testing.T) {
	g := NewGnomonic(WGS84)
	var x, y float64
	g.Forward(48.8, 2.3, 48.8, 2.3, &x, &y)
	require.Equal(t, 0.0, x)
	require.Equal(t, 0.0, y)

	var lat, lon float64
	g.Reverse(48.8, 2.3, 0, 0, &lat, &lon)
	require.InDelta(t, 48.8, lat, 1e-12)
	require.InDelta(t, 2.3, lon, 1e-12)
}

func TestGnomonicSmallOffset(t *testing.T) {
	// Near the center the projection is close to a local tangent plane:
	// x ~ s*sin(azi), y ~ s*cos(azi).
	g := NewGnomonic(WGS84)
	const s12 = 10e3
	for _, azi := range []float64{0, 30, 90, 135, 180, -45, -90} {
		var lat, lon float64
		WGS84.Direct(40, -75, azi, s12, &lat, &lon, nil)
		var x, y float64
		g.Forward(40, -75, lat, lon, &x, &y)
		sazi, cazi := sincosd(azi)
		assert.InDelta(t, s12*sazi, x, 0.05, "azi=%v", azi)
		assert.InDelta(t, s12*cazi, y, 0.05, "azi=%v", azi)
	}
}

func TestGnomonicRoundTrip(t *testing.T) {
	g := NewGnomonic(WGS84)
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 20_000; i++ {
		lat0 := rng.Float64()*160 - 80
		lon0 := rng.Float64()*360 - 180
		azi := rng.Float64()*360 - 180
		s12 := rng.Float64() * 8.9e6

		var lat, lon float64
		WGS84.Direct(lat0, lon0, azi, s12, &lat, &lon, nil)

		var x, y float64
		g.Forward(lat0, lon0, lat, lon, &x, &y)
		var rlat, rlon float64
		g.Reverse(lat0, lon0, x, y, &rlat, &rlon)

		var sep float64
		WGS84.Inverse(lat, lon, rlat, rlon, &sep, nil, nil)
		if !(sep < 0.01) {
			t.Fatalf("round trip failure center=(%v %v) azi=%v s12=%v: sep=%v",
				lat0, lon0, azi, s12, sep)
		}
	}
}

func TestGnomonicFarRoundTrip(t *testing.T) {
	// A point 80 degrees of arc from the center, near the edge of the
	// projection's useful envelope.
	g := NewGnomonic(WGS84)
	var lat, lon float64
	WGS84.Direct(20, 30, 40, 8.9e6, &lat, &lon, nil)

	var x, y float64
	g.Forward(20, 30, lat, lon, &x, &y)
	require.False(t, math.IsNaN(x))
	require.False(t, math.IsNaN(y))

	var rlat, rlon float64
	g.Reverse(20, 30, x, y, &rlat, &rlon)
	var sep float64
	WGS84.Inverse(lat, lon, rlat, rlon, &sep, nil, nil)
	require.Less(t, sep, 0.01)
}

func TestGnomonicBeyondHorizon(t *testing.T) {
	// Points at or past 90 degrees of arc from the center have no gnomonic
	// image.
	g := NewGnomonic(WGS84)
	var x, y float64
	g.Forward(0, 0, 0, 120, &x, &y)
	require.True(t, math.IsNaN(x))
	require.True(t, math.IsNaN(y))

	g.Forward(0, 0, 0, 90.001, &x, &y)
	require.True(t, math.IsNaN(x))
	require.True(t, math.IsNaN(y))
}

func TestGnomonicReverseFarPoint(t *testing.T) {
	// Reverse is defined for any finite x, y; large inputs map toward the
	// 90 degree horizon.
	g := NewGnomonic(WGS84)
	var lat, lon float64
	g.Reverse(0, 0, 1e9, 0, &lat, &lon)
	require.False(t, math.IsNaN(lat))
	require.False(t, math.IsNaN(lon))
	var s12 float64
	WGS84.Inverse(0, 0, lat, lon, &s12, nil, nil)
	// Under a quarter of the equator away.
	require.Less(t, s12, wgs84A*math.Pi/2+1)
}

func TestGnomonicInvalidLatitude(t *testing.T) {
	g := NewGnomonic(WGS84)
	var x, y float64
	g.Forward(95, 0, 10, 10, &x, &y)
	require.True(t, math.IsNaN(x))
	require.True(t, math.IsNaN(y))
}
