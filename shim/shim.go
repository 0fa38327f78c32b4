// Package shim is the boundary adapter for the geodesic engine.
//
// Every host surface (native callers, bridge-generated bindings, sandboxed
// modules) talks to the engine through this package, never directly, so the
// numerical path is identical everywhere.  The contract is uniform across
// operations:
//
//   - Every call returns an explicit success flag.  On failure the out
//     params are left untouched; callers must check the flag before reading
//     them.  No sentinel values are ever written.
//   - Failures never propagate as panics: invalid input (latitude outside
//     [-90,+90], including NaN) and any internal engine fault are converted
//     to a false flag, since a host may not share an unwinding model with
//     the engine.
//   - Non-convergence of an iterative solve is not a failure; the engine
//     returns the best available estimate and the flag stays true.
//
// Results are available both through caller-supplied out params (for hosts
// without structured returns) and as value objects (for hosts with them).
// Version strings have a zero-copy variant for same-memory hosts and a
// copy-into-buffer variant for hosts with isolated memory.
package shim

import (
	"math"

	"github.com/coursekit/geodesic"
)

// Shared read-only instances, constructed once at package initialization.
var (
	wgs84   = geodesic.WGS84
	gnom    = geodesic.NewGnomonic(geodesic.WGS84)
	geocent = geodesic.NewGeocentric(geodesic.WGS84)
)

// InverseSolution is a solution to the inverse geodesic problem.  The
// scalar fields are meaningful only when OK is true.
type InverseSolution struct {
	OK   bool
	S12  float64 // distance between the points (meters)
	Azi1 float64 // azimuth at point 1 (degrees)
	Azi2 float64 // forward azimuth at point 2 (degrees)
	A12  float64 // arc length on the auxiliary sphere (degrees)
}

// DirectSolution is a solution to the direct geodesic problem.  The scalar
// fields are meaningful only when OK is true.
type DirectSolution struct {
	OK   bool
	Lat2 float64 // latitude of the destination (degrees)
	Lon2 float64 // longitude of the destination (degrees)
	A12  float64 // arc length on the auxiliary sphere (degrees)
}

// PlanarPoint is a position in a gnomonic projection plane.  The scalar
// fields are meaningful only when OK is true.
type PlanarPoint struct {
	OK bool
	X  float64 // easting from the projection center (meters)
	Y  float64 // northing from the projection center (meters)
}

// GeoPoint is a geographic position.  The scalar fields are meaningful only
// when OK is true.
type GeoPoint struct {
	OK  bool
	Lat float64 // latitude (degrees)
	Lon float64 // longitude (degrees)
}

// GeocentricPoint is an Earth-centered Cartesian position.  The scalar
// fields are meaningful only when OK is true.
type GeocentricPoint struct {
	OK bool
	X  float64
	Y  float64
	Z  float64
}

// validLat reports whether lat is a usable latitude.  The comparison is
// written so that NaN fails it.
func validLat(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// run invokes fn with a recover guard, converting any engine panic into a
// false flag.
func run(fn func()) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	fn()
	return true
}

// GeodesicInverse solves the inverse geodesic problem from (lat1, lon1) to
// (lat2, lon2), writing the distance (meters), the azimuths at both points
// and the arc length (degrees) through the out params.  Reports false, with
// the out params untouched, for latitudes outside [-90,+90] or an engine
// fault.
func GeodesicInverse(lat1, lon1, lat2, lon2 float64,
	s12, azi1, azi2, a12 *float64) bool {
	if !validLat(lat1) || !validLat(lat2) {
		return false
	}
	var vs12, vazi1, vazi2, va12 float64
	if !run(func() {
		va12 = wgs84.Inverse(lat1, lon1, lat2, lon2, &vs12, &vazi1, &vazi2)
	}) {
		return false
	}
	setOut(s12, vs12)
	setOut(azi1, vazi1)
	setOut(azi2, vazi2)
	setOut(a12, va12)
	return true
}

// GeodesicDirect solves the direct geodesic problem from (lat1, lon1) with
// azimuth azi1 (degrees) and distance s12 (meters, negative travels
// backward), writing the destination and the arc length (degrees) through
// the out params.  Reports false, with the out params untouched, for a
// latitude outside [-90,+90] or an engine fault.
func GeodesicDirect(lat1, lon1, azi1, s12 float64,
	lat2, lon2, a12 *float64) bool {
	if !validLat(lat1) {
		return false
	}
	var vlat2, vlon2, va12 float64
	if !run(func() {
		va12 = wgs84.Direct(lat1, lon1, azi1, s12, &vlat2, &vlon2, nil)
	}) {
		return false
	}
	setOut(lat2, vlat2)
	setOut(lon2, vlon2)
	setOut(a12, va12)
	return true
}

// GnomonicForward projects (lat, lon) onto the gnomonic plane centered at
// (lat0, lon0), writing the planar offsets (meters) through the out params.
// Reports false, with the out params untouched, for latitudes outside
// [-90,+90] or an engine fault.  At and beyond 90 degrees of arc from the
// center the projection has no value and the offsets are NaN; this is a
// property of the projection, not a failure.
func GnomonicForward(lat0, lon0, lat, lon float64, x, y *float64) bool {
	if !validLat(lat0) || !validLat(lat) {
		return false
	}
	var vx, vy float64
	if !run(func() {
		gnom.Forward(lat0, lon0, lat, lon, &vx, &vy)
	}) {
		return false
	}
	setOut(x, vx)
	setOut(y, vy)
	return true
}

// GnomonicReverse maps planar offsets (x, y) (meters) in the gnomonic plane
// centered at (lat0, lon0) back to geographic coordinates, writing them
// through the out params.  Reports false, with the out params untouched,
// for a center latitude outside [-90,+90], an engine fault, or a non-finite
// result (offsets outside the projection's domain).  If the refinement does
// not fully converge the best available estimate is reported with a true
// flag.
func GnomonicReverse(lat0, lon0, x, y float64, lat, lon *float64) bool {
	if !validLat(lat0) {
		return false
	}
	var vlat, vlon float64
	if !run(func() {
		gnom.Reverse(lat0, lon0, x, y, &vlat, &vlon)
	}) {
		return false
	}
	if math.IsNaN(vlat) || math.IsNaN(vlon) {
		return false
	}
	setOut(lat, vlat)
	setOut(lon, vlon)
	return true
}

// GeocentricForward converts (lat, lon) at height h (meters) above the
// ellipsoid to Earth-centered Cartesian coordinates (meters), written
// through the out params.  Reports false, with the out params untouched,
// for a latitude outside [-90,+90] or an engine fault.
func GeocentricForward(lat, lon, h float64, x, y, z *float64) bool {
	if !validLat(lat) {
		return false
	}
	var vx, vy, vz float64
	if !run(func() {
		geocent.Forward(lat, lon, h, &vx, &vy, &vz)
	}) {
		return false
	}
	setOut(x, vx)
	setOut(y, vy)
	setOut(z, vz)
	return true
}

// Inverse is the value-object form of GeodesicInverse.
func Inverse(lat1, lon1, lat2, lon2 float64) InverseSolution {
	var sln InverseSolution
	sln.OK = GeodesicInverse(lat1, lon1, lat2, lon2,
		&sln.S12, &sln.Azi1, &sln.Azi2, &sln.A12)
	return sln
}

// Direct is the value-object form of GeodesicDirect.
func Direct(lat1, lon1, azi1, s12 float64) DirectSolution {
	var sln DirectSolution
	sln.OK = GeodesicDirect(lat1, lon1, azi1, s12,
		&sln.Lat2, &sln.Lon2, &sln.A12)
	return sln
}

// Project is the value-object form of GnomonicForward.
func Project(lat0, lon0, lat, lon float64) PlanarPoint {
	var pt PlanarPoint
	pt.OK = GnomonicForward(lat0, lon0, lat, lon, &pt.X, &pt.Y)
	return pt
}

// Unproject is the value-object form of GnomonicReverse.
func Unproject(lat0, lon0, x, y float64) GeoPoint {
	var pt GeoPoint
	pt.OK = GnomonicReverse(lat0, lon0, x, y, &pt.Lat, &pt.Lon)
	return pt
}

// ToGeocentric is the value-object form of GeocentricForward.
func ToGeocentric(lat, lon, h float64) GeocentricPoint {
	var pt GeocentricPoint
	pt.OK = GeocentricForward(lat, lon, h, &pt.X, &pt.Y, &pt.Z)
	return pt
}

// EngineVersion returns the engine identification string.  The returned
// string shares the engine's memory; hosts with isolated memory should use
// CopyEngineVersion.
func EngineVersion() string {
	return geodesic.EngineVersion()
}

// ToolchainVersion returns the toolchain identification string.  The
// returned string shares the engine's memory; hosts with isolated memory
// should use CopyToolchainVersion.
func ToolchainVersion() string {
	return geodesic.ToolchainVersion()
}

// CopyEngineVersion copies the engine identification string into dst,
// truncating if needed.  dst is always NUL terminated when its capacity is
// at least 1.  Returns the number of bytes copied, excluding the NUL.
func CopyEngineVersion(dst []byte) int {
	return copyString(dst, geodesic.EngineVersion())
}

// CopyToolchainVersion copies the toolchain identification string into dst,
// truncating if needed.  dst is always NUL terminated when its capacity is
// at least 1.  Returns the number of bytes copied, excluding the NUL.
func CopyToolchainVersion(dst []byte) int {
	return copyString(dst, geodesic.ToolchainVersion())
}

func copyString(dst []byte, s string) int {
	if len(dst) == 0 {
		return 0
	}
	n := copy(dst[:len(dst)-1], s)
	dst[n] = 0
	return n
}

func setOut(p *float64, v float64) {
	if p != nil {
		*p = v
	}
}
