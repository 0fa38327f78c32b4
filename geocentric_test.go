package geodesic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wgs84B = 6356752.314245179

func TestGeocentricAxes(t *testing.T) {
	c := NewGeocentric(WGS84)
	var x, y, z float64

	c.Forward(0, 0, 0, &x, &y, &z)
	assert.InDelta(t, wgs84A, x, 1e-8)
	assert.InDelta(t, 0, y, 1e-8)
	assert.InDelta(t, 0, z, 1e-8)

	c.Forward(0, 90, 0, &x, &y, &z)
	assert.InDelta(t, 0, x, 1e-8)
	assert.InDelta(t, wgs84A, y, 1e-8)
	assert.InDelta(t, 0, z, 1e-8)

	c.Forward(90, 0, 0, &x, &y, &z)
	assert.InDelta(t, 0, x, 1e-8)
	assert.InDelta(t, 0, y, 1e-8)
	assert.InDelta(t, wgs84B, z, 1e-6)
}

func TestGeocentricHeight(t *testing.T) {
	// Height adds along the ellipsoid normal; on the equator the normal is
	// radial.
	c := NewGeocentric(WGS84)
	var x0, x1 float64
	c.Forward(0, 0, 0, &x0, nil, nil)
	c.Forward(0, 0, 1000, &x1, nil, nil)
	require.InDelta(t, 1000, x1-x0, 1e-8)
}

func TestGeocentricDeterministic(t *testing.T) {
	c := NewGeocentric(WGS84)
	var xa, ya, za, xb, yb, zb float64
	c.Forward(48.123456, -123.654321, 87.5, &xa, &ya, &za)
	c.Forward(48.123456, -123.654321, 87.5, &xb, &yb, &zb)
	require.Equal(t, xa, xb)
	require.Equal(t, ya, yb)
	require.Equal(t, za, zb)
}
