package geodesic

import "math"

// Solver for the geodesic problems on an ellipsoid of revolution, using
// Karney's method: the problem is transferred to an auxiliary sphere and
// corrected with sixth-order series expansions in the third flattening.
// The inverse problem is solved by Newton's method on the spherical
// longitude equation, with a bracketed bisection fallback so the iteration
// count is bounded for any input.

const geodOrd = 6
const nA1 = geodOrd
const nC1 = geodOrd
const nC1p = geodOrd
const nA2 = geodOrd
const nC2 = geodOrd
const nA3 = geodOrd
const nA3x = nA3
const nC3 = geodOrd
const nC3x = (nC3 * (nC3 - 1)) / 2

const digits = 53
const maxit1 = 20
const maxit2 = maxit1 + digits + 10

const radians = math.Pi / 180
const degrees = 180 / math.Pi

var (
	epsilon = math.Pow(2, 1-digits)
	tiny    = math.Sqrt(math.Pow(2, -1022))
	tol0    = epsilon
	tol1    = 200 * tol0
	tol2    = math.Sqrt(epsilon)
	// Check on bisection interval.
	tolb    = tol0 * tol2
	xthresh = 1000 * tol2
)

type geodGeodesic struct {
	a     float64 // equatorial radius (meters)
	f     float64 // flattening
	f1    float64 // 1 - f
	e2    float64 // first eccentricity squared
	ep2   float64 // second eccentricity squared
	n     float64 // third flattening
	b     float64 // polar semi-axis (meters)
	etol2 float64 // sig12 threshold for "really short" lines

	a3x [nA3x]float64
	c3x [nC3x]float64
}

func geodInit(g *geodGeodesic, a, f float64) {
	g.a = a
	g.f = f
	g.f1 = 1 - f
	g.e2 = f * (2 - f)
	g.ep2 = g.e2 / sq(g.f1)
	g.n = f / (2 - f)
	g.b = a * g.f1
	if !(a > 0 && !math.IsInf(a, 0)) {
		panic("geodesic: equatorial radius is not positive")
	}
	if !(g.b > 0 && !math.IsInf(g.b, 0)) {
		panic("geodesic: polar semi-axis is not positive")
	}
	// The sig12 threshold for "really short".  The auxiliary sphere solution
	// with dnm computed at (bet1+bet2)/2 keeps the azimuth consistency error
	// below sig12^2 * abs(f) * min(1, 1-f/2) / 2; 0.1 is a safety factor and
	// max(0.001, abs(f)) stops etol2 getting too large in the nearly
	// spherical case.
	g.etol2 = 0.1 * tol2 /
		math.Sqrt(math.Max(0.001, math.Abs(f))*math.Min(1, 1-f/2)/2)
	a3coeff(g)
	c3coeff(g)
}

// The scale factor A3 = mean value of (d/dsigma)I3.
func a3coeff(g *geodGeodesic) {
	coeff := []float64{
		-3, 128, -2, -3, 64, -1, -3, -1, 16, 3, -1, -2, 8, 1, -1, 2, 1, 1,
	}
	o, k := 0, 0
	for j := nA3 - 1; j >= 0; j-- { // coeff of eps^j
		m := minInt(nA3-j-1, j) // order of polynomial in n
		g.a3x[k] = polyval(m, coeff, o, g.n) / coeff[o+m+1]
		k++
		o += m + 2
	}
}

// The coefficients C3[l] in the Fourier expansion of B3.
func c3coeff(g *geodGeodesic) {
	coeff := []float64{
		3, 128, 2, 5, 128, -1, 3, 3, 64, -1, 0, 1, 8, -1, 1, 4, 5, 256,
		1, 3, 128, -3, -2, 3, 64, 1, -3, 2, 32, 7, 512, -10, 9, 384,
		5, -9, 5, 192, 7, 512, -14, 7, 512, 21, 2560,
	}
	o, k := 0, 0
	for l := 1; l < nC3; l++ { // l is index of C3[l]
		for j := nC3 - 1; j >= l; j-- { // coeff of eps^j
			m := minInt(nC3-j-1, j) // order of polynomial in n
			g.c3x[k] = polyval(m, coeff, o, g.n) / coeff[o+m+1]
			k++
			o += m + 2
		}
	}
}

// Evaluate A3.
func (g *geodGeodesic) a3f(eps float64) float64 {
	return polyval(nA3-1, g.a3x[:], 0, eps)
}

// Evaluate C3 coeffs; elements c[1] thru c[nC3-1] are set.
func (g *geodGeodesic) c3f(eps float64, c []float64) {
	mult := 1.0
	o := 0
	for l := 1; l < nC3; l++ { // l is index of C3[l]
		m := nC3 - l - 1 // order of polynomial in eps
		mult *= eps
		c[l] = mult * polyval(m, g.c3x[:], o, eps)
		o += m + 1
	}
}

// The scale factor A1-1 = mean value of (d/dsigma)I1 - 1.
func a1m1f(eps float64) float64 {
	coeff := []float64{1, 4, 64, 0, 256}
	m := nA1 / 2
	t := polyval(m, coeff, 0, sq(eps)) / coeff[m+1]
	return (t + eps) / (1 - eps)
}

// The coefficients C1[l] in the Fourier expansion of B1.
func c1f(eps float64, c []float64) {
	coeff := []float64{
		-1, 6, -16, 32, -9, 64, -128, 2048, 9, -16, 768, 3, -5, 512,
		-7, 1280, -7, 2048,
	}
	eps2 := sq(eps)
	d := eps
	o := 0
	for l := 1; l <= nC1; l++ { // l is index of C1[l]
		m := (nC1 - l) / 2 // order of polynomial in eps^2
		c[l] = d * polyval(m, coeff, o, eps2) / coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// The coefficients C1'[l] in the inverted distance series.
func c1pf(eps float64, c []float64) {
	coeff := []float64{
		205, -432, 768, 1536, 4005, -4736, 3840, 12288, -225, 116, 384,
		-7173, 2695, 7680, 3467, 7680, 38081, 61440,
	}
	eps2 := sq(eps)
	d := eps
	o := 0
	for l := 1; l <= nC1p; l++ { // l is index of C1p[l]
		m := (nC1p - l) / 2 // order of polynomial in eps^2
		c[l] = d * polyval(m, coeff, o, eps2) / coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// The scale factor A2-1 = mean value of (d/dsigma)I2 - 1.
func a2m1f(eps float64) float64 {
	coeff := []float64{-11, -28, -192, 0, 256}
	m := nA2 / 2
	t := polyval(m, coeff, 0, sq(eps)) / coeff[m+1]
	return (t - eps) / (1 + eps)
}

// The coefficients C2[l] in the Fourier expansion of B2.
func c2f(eps float64, c []float64) {
	coeff := []float64{
		1, 2, 16, 32, 35, 64, 384, 2048, 15, 80, 768, 7, 35, 512,
		63, 1280, 77, 2048,
	}
	eps2 := sq(eps)
	d := eps
	o := 0
	for l := 1; l <= nC2; l++ { // l is index of C2[l]
		m := (nC2 - l) / 2 // order of polynomial in eps^2
		c[l] = d * polyval(m, coeff, o, eps2) / coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// lengths returns the distance, reduced length, and geodesic scales for the
// arc sig12, all relative to the polar semi-axis b:
// s12b = distance/b, m12b = (reduced length)/b, m0 = secular coefficient.
func lengths(g *geodGeodesic,
	eps, sig12, ssig1, csig1, dn1, ssig2, csig2, dn2, cbet1, cbet2 float64,
	C1a, C2a []float64,
) (s12b, m12b, m0, gM12, gM21 float64) {
	A1 := a1m1f(eps)
	c1f(eps, C1a)
	A2 := a2m1f(eps)
	c2f(eps, C2a)
	m0 = A1 - A2
	A1 = 1 + A1
	A2 = 1 + A2
	B1 := sinCosSeries(true, ssig2, csig2, C1a) -
		sinCosSeries(true, ssig1, csig1, C1a)
	s12b = A1 * (sig12 + B1)
	B2 := sinCosSeries(true, ssig2, csig2, C2a) -
		sinCosSeries(true, ssig1, csig1, C2a)
	J12 := m0*sig12 + (A1*B1 - A2*B2)
	// Parens around (csig1*ssig2) and (ssig1*csig2) ensure accurate
	// cancellation for coincident points.
	m12b = dn2*(csig1*ssig2) - dn1*(ssig1*csig2) - csig1*csig2*J12
	csig12 := csig1*csig2 + ssig1*ssig2
	t := g.ep2 * (cbet1 - cbet2) * (cbet1 + cbet2) / (dn1 + dn2)
	gM12 = csig12 + (t*ssig2-csig2*J12)*ssig1/dn1
	gM21 = csig12 - (t*ssig1-csig1*J12)*ssig2/dn2
	return s12b, m12b, m0, gM12, gM21
}

// astroid solves k^4+2*k^3-(x^2+y^2-1)*k^2-2*y^2*k-y^2 = 0 for the positive
// root k.
func astroid(x, y float64) float64 {
	p := sq(x)
	q := sq(y)
	r := (p + q - 1) / 6
	if q == 0 && r <= 0 {
		// y = 0 with |x| <= 1; the positive root is k = 0.
		return 0
	}
	// Multiply the equations for s and t by r^3 and r to avoid division
	// by zero at r = 0.
	S := p * q / 4 // S = r^3 * s
	r2 := sq(r)
	r3 := r * r2
	// The discriminant of the quadratic equation for T3.  Zero on the
	// evolute curve p^(1/3)+q^(1/3) = 1.
	disc := S * (S + 2*r3)
	u := r
	if disc >= 0 {
		T3 := S + r3
		// Pick the sign on the sqrt to maximize abs(T3) to minimize loss of
		// precision due to cancellation.
		if T3 < 0 {
			T3 -= math.Sqrt(disc)
		} else {
			T3 += math.Sqrt(disc)
		}
		T := math.Cbrt(T3) // T = r * t
		u += T
		if T != 0 {
			u += r2 / T
		}
	} else {
		// T is complex, but the way u is defined the result is real.
		ang := math.Atan2(math.Sqrt(-disc), -(S + r3))
		// There are three possible cube roots; choose the one which avoids
		// cancellation.  disc < 0 implies r < 0.
		u += 2 * r * math.Cos(ang/3)
	}
	v := math.Sqrt(sq(u) + q) // guaranteed positive
	var uv float64
	if u < 0 {
		uv = q / (v - u)
	} else {
		uv = u + v
	}
	w := (uv - q) / (2 * v)
	return uv / (math.Sqrt(uv+sq(w)) + w)
}

// inverseStart returns a starting point for Newton's method in salp1 and
// calp1 (with sig12 = -1).  If Newton's method is not needed it also returns
// salp2, calp2, dnm, and sig12 >= 0 (a short-line or near-antipodal direct
// estimate).
func inverseStart(g *geodGeodesic,
	sbet1, cbet1, dn1, sbet2, cbet2, dn2, lam12, slam12, clam12 float64,
	C1a, C2a []float64,
) (sig12, salp1, calp1, salp2, calp2, dnm float64) {
	sig12 = -1
	salp2 = math.NaN()
	calp2 = math.NaN()
	dnm = math.NaN()
	// bet12 = bet2 - bet1 in [0, pi); bet12a = bet2 + bet1 in (-pi, 0]
	sbet12 := sbet2*cbet1 - cbet2*sbet1
	cbet12 := cbet2*cbet1 + sbet2*sbet1
	sbet12a := sbet2 * cbet1
	sbet12a += cbet2 * sbet1

	var somg12, comg12 float64
	shortline := cbet12 >= 0 && sbet12 < 0.5 && cbet2*lam12 < 0.5
	if shortline {
		sbetm2 := sq(sbet1 + sbet2)
		// sin((bet1+bet2)/2)^2
		sbetm2 /= sbetm2 + sq(cbet1+cbet2)
		dnm = math.Sqrt(1 + g.ep2*sbetm2)
		omg12 := lam12 / (g.f1 * dnm)
		somg12 = math.Sin(omg12)
		comg12 = math.Cos(omg12)
	} else {
		somg12 = slam12
		comg12 = clam12
	}

	salp1 = cbet2 * somg12
	if comg12 >= 0 {
		calp1 = sbet12 + cbet2*sbet1*sq(somg12)/(1+comg12)
	} else {
		calp1 = sbet12a - cbet2*sbet1*sq(somg12)/(1-comg12)
	}
	ssig12 := math.Hypot(salp1, calp1)
	csig12 := sbet1*sbet2 + cbet1*cbet2*comg12

	if shortline && ssig12 < g.etol2 {
		// really short lines
		salp2 = cbet1 * somg12
		var mult float64
		if comg12 >= 0 {
			mult = sq(somg12) / (1 + comg12)
		} else {
			mult = 1 - comg12
		}
		calp2 = sbet12 - cbet1*sbet2*mult
		salp2, calp2 = norm2(salp2, calp2)
		sig12 = math.Atan2(ssig12, csig12)
	} else if math.Abs(g.n) > 0.1 || // skip astroid calc if too eccentric
		csig12 >= 0 ||
		ssig12 >= 6*math.Abs(g.n)*math.Pi*sq(cbet1) {
		// Nothing to do, zeroth order spherical approximation is OK.
	} else {
		// Scale lam12 and bet2 to x, y coordinate system where the antipodal
		// point is at the origin and the singular point is at y = 0, x = -1.
		var x, y, lamscale, betscale float64
		lam12x := math.Atan2(-slam12, -clam12)
		if g.f >= 0 { // x = dlong, y = dlat
			k2 := sq(sbet1) * g.ep2
			eps := k2 / (2*(1+math.Sqrt(1+k2)) + k2)
			lamscale = g.f * cbet1 * g.a3f(eps) * math.Pi
			betscale = lamscale * cbet1
			x = lam12x / lamscale
			y = sbet12a / betscale
		} else { // f < 0: x = dlat, y = dlong
			cbet12a := cbet2*cbet1 - sbet2*sbet1
			bet12a := math.Atan2(sbet12a, cbet12a)
			_, m12b, m0, _, _ := lengths(g,
				g.n, math.Pi+bet12a, sbet1, -cbet1, dn1, sbet2, cbet2, dn2,
				cbet1, cbet2, C1a, C2a)
			x = -1 + m12b/(cbet1*cbet2*m0*math.Pi)
			if x < -0.01 {
				betscale = sbet12a / x
			} else {
				betscale = -g.f * sq(cbet1) * math.Pi
			}
			lamscale = betscale / cbet1
			y = lam12x / lamscale
		}
		if y > -tol1 && x > -1-xthresh {
			// strip near cut
			if g.f >= 0 {
				salp1 = math.Min(1, -x)
				calp1 = -math.Sqrt(1 - sq(salp1))
			} else {
				if x > -tol1 {
					calp1 = math.Max(0, x)
				} else {
					calp1 = math.Max(-1, x)
				}
				salp1 = math.Sqrt(1 - sq(calp1))
			}
		} else {
			// Estimate omg12 by solving the astroid problem, then use the
			// spherical formula to compute alp1.  omg12 is near pi, so work
			// with omg12a = pi - omg12.
			k := astroid(x, y)
			var omg12a float64
			if g.f >= 0 {
				omg12a = lamscale * (-x * k / (1 + k))
			} else {
				omg12a = lamscale * (-y * (1 + k) / k)
			}
			somg12 = math.Sin(omg12a)
			comg12 = -math.Cos(omg12a)
			salp1 = cbet2 * somg12
			calp1 = sbet12a - cbet2*sbet1*sq(somg12)/(1-comg12)
		}
	}
	// Sanity check on the starting guess.  The backwards check lets NaN
	// through.
	if !(salp1 <= 0) {
		salp1, calp1 = norm2(salp1, calp1)
	} else {
		salp1 = 1
		calp1 = 0
	}
	return sig12, salp1, calp1, salp2, calp2, dnm
}

// lambda12 solves the hybrid problem: given alp1, compute the spherical
// longitude difference and (if diffp) its derivative with respect to alp1.
func lambda12(g *geodGeodesic,
	sbet1, cbet1, dn1, sbet2, cbet2, dn2, salp1, calp1,
	slam120, clam120 float64, diffp bool,
	C1a, C2a, C3a []float64,
) (lam12, salp2, calp2, sig12, ssig1, csig1, ssig2, csig2,
	eps, domg12, dlam12 float64) {
	if sbet1 == 0 && calp1 == 0 {
		// Break degeneracy of equatorial line.
		calp1 = -tiny
	}
	// sin(alp1) * cos(bet1) = sin(alp0)
	salp0 := salp1 * cbet1
	calp0 := math.Hypot(calp1, salp1*sbet1) // calp0 > 0

	// tan(bet1) = tan(sig1) * cos(alp1); tan(omg1) = sin(alp0) * tan(sig1)
	ssig1 = sbet1
	somg1 := salp0 * sbet1
	csig1 = calp1 * cbet1
	comg1 := csig1
	ssig1, csig1 = norm2(ssig1, csig1)
	// norm2(somg1, comg1) is not needed

	// Enforce symmetries in the case abs(bet2) = -bet1; this can yield
	// singularities in the Newton iteration otherwise.
	salp2 = salp1
	if cbet2 != cbet1 {
		salp2 = salp0 / cbet2
	}
	// calp2 = sqrt(sq(calp0) - sq(sbet2)) / cbet2, positive sqrt so that
	// alp2 is in [0, pi/2].
	if cbet2 != cbet1 || math.Abs(sbet2) != -sbet1 {
		if cbet1 < -sbet1 {
			calp2 = math.Sqrt(sq(calp1*cbet1)+
				(cbet2-cbet1)*(cbet1+cbet2)) / cbet2
		} else {
			calp2 = math.Sqrt(sq(calp1*cbet1)+
				(sbet1-sbet2)*(sbet1+sbet2)) / cbet2
		}
	} else {
		calp2 = math.Abs(calp1)
	}
	ssig2 = sbet2
	somg2 := salp0 * sbet2
	csig2 = calp2 * cbet2
	comg2 := csig2
	ssig2, csig2 = norm2(ssig2, csig2)

	// sig12 = sig2 - sig1, limit to [0, pi]
	sig12 = math.Atan2(math.Max(0, csig1*ssig2-ssig1*csig2),
		csig1*csig2+ssig1*ssig2)
	// omg12 = omg2 - omg1, limit to [0, pi]
	somg12 := math.Max(0, comg1*somg2-somg1*comg2)
	comg12 := comg1*comg2 + somg1*somg2
	// eta = omg12 - lam120
	eta := math.Atan2(somg12*clam120-comg12*slam120,
		comg12*clam120+somg12*slam120)
	k2 := sq(calp0) * g.ep2
	eps = k2 / (2*(1+math.Sqrt(1+k2)) + k2)
	g.c3f(eps, C3a)
	B312 := sinCosSeries(true, ssig2, csig2, C3a) -
		sinCosSeries(true, ssig1, csig1, C3a)
	domg12 = -g.f * g.a3f(eps) * salp0 * (sig12 + B312)
	lam12 = eta + domg12
	if diffp {
		if calp2 == 0 {
			dlam12 = -2 * g.f1 * dn1 / sbet1
		} else {
			_, dlam12, _, _, _ = lengths(g,
				eps, sig12, ssig1, csig1, dn1, ssig2, csig2, dn2,
				cbet1, cbet2, C1a, C2a)
			dlam12 *= g.f1 / (calp2 * cbet2)
		}
	} else {
		dlam12 = math.NaN()
	}
	return
}

// geodGenInverse solves the inverse problem, returning the arc length,
// distance, azimuth sines/cosines at both endpoints, the reduced length m12,
// and the geodesic scales M12, M21.
func geodGenInverse(g *geodGeodesic, lat1, lon1, lat2, lon2 float64) (
	a12, s12, salp1, calp1, salp2, calp2, m12, gM12, gM21 float64) {
	// Compute longitude difference carefully; result is in [-180, 180] with
	// -180 only for west-going geodesics.
	lon12, lon12s := angDiff(lon1, lon2)
	lonsign := 1.0
	if lon12 < 0 {
		lonsign = -1
	}
	// If very close to being on the same half-meridian, then make it so.
	lon12 = lonsign * angRound(lon12)
	lon12s = angRound((180 - lon12) - lonsign*lon12s)
	lam12 := lon12 * radians
	var slam12, clam12 float64
	if lon12 > 90 {
		slam12, clam12 = sincosd(lon12s)
		clam12 = -clam12
	} else {
		slam12, clam12 = sincosd(lon12)
	}

	// If really close to the equator, treat as on equator.
	lat1 = angRound(latFix(lat1))
	lat2 = angRound(latFix(lat2))
	// Swap points so that the point with the higher (abs) latitude is point
	// 1.  If one latitude is a NaN it becomes lat1.
	swapp := -1.0
	if math.Abs(lat1) >= math.Abs(lat2) {
		swapp = 1
	}
	if swapp < 0 {
		lonsign *= -1
		lat1, lat2 = lat2, lat1
	}
	// Make lat1 <= 0.
	latsign := 1.0
	if lat1 >= 0 {
		latsign = -1
	}
	lat1 *= latsign
	lat2 *= latsign
	// Now 0 <= lon12 <= 180, -90 <= lat1 <= 0 and lat1 <= lat2 <= -lat1;
	// lonsign, swapp, latsign register the canonicalizing transformation.

	sbet1, cbet1 := sincosd(lat1)
	sbet1 *= g.f1
	sbet1, cbet1 = norm2(sbet1, cbet1)
	cbet1 = math.Max(tiny, cbet1) // +epsilon at poles
	sbet2, cbet2 := sincosd(lat2)
	sbet2 *= g.f1
	sbet2, cbet2 = norm2(sbet2, cbet2)
	cbet2 = math.Max(tiny, cbet2)

	// When cbet1 < -sbet1, cbet2 - cbet1 is a sensitive measure of
	// |bet1| - |bet2|; otherwise abs(sbet2) + sbet1 is.  These quantities
	// can vanish, in which case force bet2 = +/- bet1 exactly.
	if cbet1 < -sbet1 {
		if cbet2 == cbet1 {
			if sbet2 < 0 {
				sbet2 = sbet1
			} else {
				sbet2 = -sbet1
			}
		}
	} else {
		if math.Abs(sbet2) == -sbet1 {
			cbet2 = cbet1
		}
	}

	dn1 := math.Sqrt(1 + g.ep2*sq(sbet1))
	dn2 := math.Sqrt(1 + g.ep2*sq(sbet2))

	var C1a [nC1 + 1]float64
	var C2a [nC2 + 1]float64
	var C3a [nC3]float64

	var sig12, s12x, m12x float64
	meridian := lat1 == -90 || slam12 == 0
	if meridian {
		// The geodesic might lie on a meridian.
		calp1 = clam12
		salp1 = slam12 // head to the target longitude
		calp2 = 1
		salp2 = 0 // at the target we're heading north
		// tan(bet) = tan(sig) * cos(alp)
		ssig1, csig1 := sbet1, calp1*cbet1
		ssig2, csig2 := sbet2, calp2*cbet2
		sig12 = math.Atan2(math.Max(0, csig1*ssig2-ssig1*csig2),
			csig1*csig2+ssig1*ssig2)
		s12x, m12x, _, gM12, gM21 = lengths(g,
			g.n, sig12, ssig1, csig1, dn1, ssig2, csig2, dn2,
			cbet1, cbet2, C1a[:], C2a[:])
		// Zero-length geodesics can yield m12 < 0; sig12 > pi/2 means the
		// meridional geodesic is not the shortest path.
		if sig12 < 1 || m12x >= 0 {
			if sig12 < 3*tiny {
				sig12 = 0
				m12x = 0
				s12x = 0
			}
			m12x *= g.b
			s12x *= g.b
			a12 = sig12 * degrees
		} else {
			// m12 < 0: prolate and too close to antipodal.
			meridian = false
		}
	}
	if !meridian && sbet1 == 0 && (g.f <= 0 || lon12s >= g.f*180) {
		// Geodesic runs along the equator.
		calp1 = 0
		calp2 = 0
		salp1 = 1
		salp2 = 1
		s12x = g.a * lam12
		sig12 = lam12 / g.f1
		m12x = g.b * math.Sin(sig12)
		gM12 = math.Cos(sig12)
		gM21 = gM12
		a12 = lon12 / g.f1
	} else if !meridian {
		// Both points belong to a hemisphere bounded by a meridian and the
		// geodesic is neither meridional nor equatorial.
		var dnm float64
		sig12, salp1, calp1, salp2, calp2, dnm = inverseStart(g,
			sbet1, cbet1, dn1, sbet2, cbet2, dn2, lam12, slam12, clam12,
			C1a[:], C2a[:])
		if sig12 >= 0 {
			// Short lines (inverseStart sets salp2, calp2, dnm).
			s12x = sig12 * g.b * dnm
			m12x = sq(dnm) * g.b * math.Sin(sig12/dnm)
			gM12 = math.Cos(sig12 / dnm)
			gM21 = gM12
			a12 = sig12 * degrees
		} else {
			// Newton's method on f(alp1) = lambda12(alp1) - lam12.  f has
			// exactly one root in (0, pi) with a positive derivative there,
			// so a bracket (alp1a, alp1b) is maintained and Newton is
			// restarted from the midpoint whenever the step leaves the
			// bracket or the derivative goes negative.
			numit := 0
			tripn := false
			tripb := false
			salp1a, calp1a := tiny, 1.0
			salp1b, calp1b := tiny, -1.0
			var v, ssig1, csig1, ssig2, csig2, eps, dv float64
			for numit < maxit2 {
				v, salp2, calp2, sig12, ssig1, csig1, ssig2, csig2,
					eps, _, dv = lambda12(g,
					sbet1, cbet1, dn1, sbet2, cbet2, dn2,
					salp1, calp1, slam12, clam12, numit < maxit1,
					C1a[:], C2a[:], C3a[:])
				// 2*tol0 is approximately 1 ulp for a number in [0, pi].
				// Reversed test to allow escape with NaNs.
				mult := 1.0
				if tripn {
					mult = 8
				}
				if tripb || !(math.Abs(v) >= mult*tol0) {
					break
				}
				// Update bracketing values.
				if v > 0 && (numit > maxit1 || calp1/salp1 > calp1b/salp1b) {
					salp1b, calp1b = salp1, calp1
				} else if v < 0 &&
					(numit > maxit1 || calp1/salp1 < calp1a/salp1a) {
					salp1a, calp1a = salp1, calp1
				}
				numit++
				if numit < maxit1 && dv > 0 {
					dalp1 := -v / dv
					sdalp1, cdalp1 := math.Sin(dalp1), math.Cos(dalp1)
					nsalp1 := salp1*cdalp1 + calp1*sdalp1
					if nsalp1 > 0 && math.Abs(dalp1) < math.Pi {
						calp1 = calp1*cdalp1 - salp1*sdalp1
						salp1 = nsalp1
						salp1, calp1 = norm2(salp1, calp1)
						// In some regimes the slope -> 0 and quadratic
						// convergence is lost, so the trip condition is
						// based on epsilon instead of sqrt(epsilon).
						tripn = math.Abs(v) <= 16*tol0
						continue
					}
				}
				// Either dv was not positive or the updated value was
				// outside the legal range; use the midpoint of the bracket.
				salp1 = (salp1a + salp1b) / 2
				calp1 = (calp1a + calp1b) / 2
				salp1, calp1 = norm2(salp1, calp1)
				tripn = false
				tripb = math.Abs(salp1a-salp1)+(calp1a-calp1) < tolb ||
					math.Abs(salp1-salp1b)+(calp1-calp1b) < tolb
			}
			s12x, m12x, _, gM12, gM21 = lengths(g,
				eps, sig12, ssig1, csig1, dn1, ssig2, csig2, dn2,
				cbet1, cbet2, C1a[:], C2a[:])
			m12x *= g.b
			s12x *= g.b
			a12 = sig12 * degrees
		}
	}

	s12 = 0 + s12x // convert -0 to 0
	m12 = 0 + m12x

	// Convert calp, salp to azimuths accounting for lonsign, swapp, latsign.
	if swapp < 0 {
		salp1, salp2 = salp2, salp1
		calp1, calp2 = calp2, calp1
		gM12, gM21 = gM21, gM12
	}
	salp1 *= swapp * lonsign
	calp1 *= swapp * latsign
	salp2 *= swapp * lonsign
	calp2 *= swapp * latsign
	return a12, s12, salp1, calp1, salp2, calp2, m12, gM12, gM21
}

func geodInverse(g *geodGeodesic, lat1, lon1, lat2, lon2 float64,
	ps12, pazi1, pazi2 *float64) (a12 float64) {
	a12, s12, salp1, calp1, salp2, calp2, _, _, _ :=
		geodGenInverse(g, lat1, lon1, lat2, lon2)
	if ps12 != nil {
		*ps12 = s12
	}
	if pazi1 != nil {
		*pazi1 = atan2d(salp1, calp1)
	}
	if pazi2 != nil {
		*pazi2 = atan2d(salp2, calp2)
	}
	return a12
}

// geodGeodesicLine is a geodesic through a point with a fixed azimuth,
// positioned by distance from that point.  Immutable after geodLineInit.
type geodGeodesicLine struct {
	g            *geodGeodesic
	lat1, lon1   float64
	azi1         float64
	salp1, calp1 float64
	salp0, calp0 float64
	ssig1, csig1 float64
	somg1, comg1 float64
	stau1, ctau1 float64
	dn1          float64
	k2           float64
	a1m1, a2m1   float64
	a3c          float64
	b11, b21     float64
	b31          float64
	c1a          [nC1 + 1]float64
	c1pa         [nC1p + 1]float64
	c2a          [nC2 + 1]float64
	c3a          [nC3]float64
}

func geodLineInit(l *geodGeodesicLine, g *geodGeodesic,
	lat1, lon1, azi1 float64) {
	l.g = g
	l.lat1 = latFix(lat1)
	l.lon1 = lon1
	l.azi1 = angNormalize(azi1)
	// Guard against underflow in salp0.
	l.salp1, l.calp1 = sincosd(angRound(l.azi1))

	sbet1, cbet1 := sincosd(angRound(l.lat1))
	sbet1 *= g.f1
	sbet1, cbet1 = norm2(sbet1, cbet1)
	cbet1 = math.Max(tiny, cbet1)
	l.dn1 = math.Sqrt(1 + g.ep2*sq(sbet1))

	// Evaluate alp0 from sin(alp1) * cos(bet1) = sin(alp0).
	l.salp0 = l.salp1 * cbet1
	l.calp0 = math.Hypot(l.calp1, l.salp1*sbet1) // calp0 > 0
	// Evaluate sig with tan(bet1) = tan(sig1) * cos(alp1); with bet1 = +/-90
	// the sign of sig1 matches that of the half-meridian containing the
	// point, determined by alp1.
	l.ssig1 = sbet1
	l.somg1 = l.salp0 * sbet1
	if sbet1 != 0 || l.calp1 != 0 {
		l.csig1 = cbet1 * l.calp1
	} else {
		l.csig1 = 1
	}
	l.comg1 = l.csig1
	l.ssig1, l.csig1 = norm2(l.ssig1, l.csig1)
	// norm2(somg1, comg1) is not needed

	l.k2 = sq(l.calp0) * g.ep2
	eps := l.k2 / (2*(1+math.Sqrt(1+l.k2)) + l.k2)

	l.a1m1 = a1m1f(eps)
	c1f(eps, l.c1a[:])
	l.b11 = sinCosSeries(true, l.ssig1, l.csig1, l.c1a[:])
	s, c := math.Sin(l.b11), math.Cos(l.b11)
	// tau1 = sig1 + B11
	l.stau1 = l.ssig1*c + l.csig1*s
	l.ctau1 = l.csig1*c - l.ssig1*s
	// No need for comg1 = max(tiny, comg1); the limit case is handled by
	// the series directly.
	c1pf(eps, l.c1pa[:])

	l.a2m1 = a2m1f(eps)
	c2f(eps, l.c2a[:])
	l.b21 = sinCosSeries(true, l.ssig1, l.csig1, l.c2a[:])

	g.c3f(eps, l.c3a[:])
	l.a3c = -g.f * l.salp0 * g.a3f(eps)
	l.b31 = sinCosSeries(true, l.ssig1, l.csig1, l.c3a[:])
}

// position computes the point a distance s12 along the line, returning the
// point, forward azimuth, reduced length, geodesic scales, and arc length.
func (l *geodGeodesicLine) position(s12 float64) (
	lat2, lon2, azi2, m12, gM12, gM21, a12 float64) {
	g := l.g
	// Invert the distance series to find sig12: tau12 is the approximate
	// arc, corrected through the inverted series C1'.
	tau12 := s12 / (g.b * (1 + l.a1m1))
	s, c := math.Sin(tau12), math.Cos(tau12)
	b12 := -sinCosSeries(true,
		l.stau1*c+l.ctau1*s, l.ctau1*c-l.stau1*s, l.c1pa[:])
	sig12 := tau12 - (b12 - l.b11)
	ssig12, csig12 := math.Sin(sig12), math.Cos(sig12)

	// sig2 = sig1 + sig12
	ssig2 := l.ssig1*csig12 + l.csig1*ssig12
	csig2 := l.csig1*csig12 - l.ssig1*ssig12
	dn2 := math.Sqrt(1 + l.k2*sq(ssig2))
	b12 = sinCosSeries(true, ssig2, csig2, l.c1a[:])
	ab1 := (1 + l.a1m1) * (b12 - l.b11)

	// sin(bet2) = cos(alp0) * sin(sig2)
	sbet2 := l.calp0 * ssig2
	// cos(bet2) = hypot(sin(alp0), cos(alp0) * cos(sig2))
	cbet2 := math.Hypot(l.salp0, l.calp0*csig2)
	if cbet2 == 0 {
		// At a pole.
		cbet2 = tiny
		csig2 = tiny
	}
	// tan(alp0) = cos(sig2)*tan(alp2)
	salp2 := l.salp0
	calp2 := l.calp0 * csig2 // no need to normalize

	lat2 = atan2d(sbet2, g.f1*cbet2)
	// tan(omg2) = sin(alp0) * tan(sig2)
	somg2 := l.salp0 * ssig2
	comg2 := csig2 // no need to normalize
	// omg12 = omg2 - omg1
	omg12 := math.Atan2(somg2*l.comg1-comg2*l.somg1,
		comg2*l.comg1+somg2*l.somg1)
	lam12 := omg12 + l.a3c*
		(sig12+(sinCosSeries(true, ssig2, csig2, l.c3a[:])-l.b31))
	lon12 := lam12 * degrees
	lon2 = angNormalize(angNormalize(l.lon1) + angNormalize(lon12))
	azi2 = atan2d(salp2, calp2)

	b22 := sinCosSeries(true, ssig2, csig2, l.c2a[:])
	ab2 := (1 + l.a2m1) * (b22 - l.b21)
	j12 := (l.a1m1-l.a2m1)*sig12 + (ab1 - ab2)
	// Parens ensure accurate cancellation for coincident points.
	m12 = g.b * ((dn2*(l.csig1*ssig2) - l.dn1*(l.ssig1*csig2)) -
		l.csig1*csig2*j12)
	csig12p := l.csig1*csig2 + l.ssig1*ssig2
	t := l.k2 * (ssig2 - l.ssig1) * (ssig2 + l.ssig1) / (l.dn1 + dn2)
	gM12 = csig12p + (t*ssig2-csig2*j12)*l.ssig1/l.dn1
	gM21 = csig12p - (t*l.ssig1-l.csig1*j12)*ssig2/dn2

	a12 = sig12 * degrees
	return lat2, lon2, azi2, m12, gM12, gM21, a12
}

func geodDirect(g *geodGeodesic, lat1, lon1, azi1, s12 float64,
	plat2, plon2, pazi2 *float64) (a12 float64) {
	var l geodGeodesicLine
	geodLineInit(&l, g, lat1, lon1, azi1)
	lat2, lon2, azi2, _, _, _, a12 := l.position(s12)
	if plat2 != nil {
		*plat2 = lat2
	}
	if plon2 != nil {
		*plon2 = lon2
	}
	if pazi2 != nil {
		*pazi2 = azi2
	}
	return a12
}

// sinCosSeries evaluates a trig series using Clenshaw summation:
// y = sinp ? sum(c[i] * sin( 2*i    * x), i, 1, n) :
//            sum(c[i] * cos((2*i+1) * x), i, 0, n-1)
// c[0] is unused for the sin series.
func sinCosSeries(sinp bool, sinx, cosx float64, c []float64) float64 {
	k := len(c) // one beyond last element
	n := k
	if sinp {
		n--
	}
	ar := 2 * (cosx - sinx) * (cosx + sinx) // 2 * cos(2*x)
	y0, y1 := 0.0, 0.0
	if n&1 != 0 {
		k--
		y0 = c[k]
	}
	n /= 2
	for n > 0 {
		n--
		// Unroll loop x 2, so accumulators return to their original role.
		k--
		y1 = ar*y0 - y1 + c[k]
		k--
		y0 = ar*y1 - y0 + c[k]
	}
	if sinp {
		return 2 * sinx * cosx * y0 // sin(2*x) * y0
	}
	return cosx * (y0 - y1) // cos(x) * (y0 - y1)
}

func sq(x float64) float64 { return x * x }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// norm2 normalizes (x, y) to a unit vector.
func norm2(x, y float64) (float64, float64) {
	h := math.Hypot(x, y)
	return x / h, y / h
}

// sumx returns the error-free sum s = round(u+v) and t = u+v-s.
func sumx(u, v float64) (s, t float64) {
	s = u + v
	up := s - v
	vpp := s - up
	up -= u
	vpp -= v
	t = -(up + vpp)
	return s, t
}

// polyval evaluates the polynomial sum(p[s+i] * x^(n-i), i, 0, n) by
// Horner's method.
func polyval(n int, p []float64, s int, x float64) float64 {
	var y float64
	if n >= 0 {
		y = p[s]
	}
	for ; n > 0; n-- {
		s++
		y = y*x + p[s]
	}
	return y
}

// angNormalize reduces an angle in degrees to (-180, 180].
func angNormalize(x float64) float64 {
	y := math.Remainder(x, 360)
	if y == -180 {
		return 180
	}
	return y
}

// latFix replaces latitudes outside [-90, 90] with NaN.
func latFix(x float64) float64 {
	if math.Abs(x) > 90 {
		return math.NaN()
	}
	return x
}

// angDiff computes y - x in degrees, reduced to [-180, 180], with the
// rounding error returned in e so near-180 differences stay exact.
func angDiff(x, y float64) (d, e float64) {
	d, t := sumx(math.Remainder(-x, 360), math.Remainder(y, 360))
	d, t = sumx(math.Remainder(d, 360), t)
	if d == 0 || math.Abs(d) == 180 {
		if t == 0 {
			d = math.Copysign(d, y-x)
		} else {
			d = math.Copysign(d, -t)
		}
	}
	return d, t
}

// angRound rounds underflowing angles (< 1/16 deg) so that values within
// about 1e-15 of a target direction collapse onto it exactly.
func angRound(x float64) float64 {
	const z = 1.0 / 16.0
	if x == 0 {
		return 0
	}
	y := math.Abs(x)
	if y < z {
		y = z - (z - y)
	}
	if x < 0 {
		return -y
	}
	return y
}

// sincosd computes sin and cos of an angle in degrees, exactly at multiples
// of 90.
func sincosd(x float64) (sinx, cosx float64) {
	if math.IsNaN(x) {
		return x, x
	}
	r := math.Mod(x, 360)
	q := int(math.Round(r / 90))
	r -= 90 * float64(q)
	r *= radians
	s, c := math.Sin(r), math.Cos(r)
	switch ((q % 4) + 4) % 4 {
	case 1:
		s, c = c, -s
	case 2:
		s, c = -s, -c
	case 3:
		s, c = -c, s
	}
	if x != 0 {
		s, c = 0+s, 0+c // remove the minus sign on -0.0
	}
	return s, c
}

// atan2d computes atan2 in degrees with the result exactly 0, 90, 180 or
// -90 when the arguments warrant it.
func atan2d(y, x float64) float64 {
	q := 0
	if math.Abs(y) > math.Abs(x) {
		x, y = y, x
		q = 2
	}
	if x < 0 {
		x = -x
		q++
	}
	ang := math.Atan2(y, x) * degrees
	switch q {
	case 1:
		if y >= 0 {
			ang = 180 - ang
		} else {
			ang = -180 - ang
		}
	case 2:
		ang = 90 - ang
	case 3:
		ang = -90 + ang
	}
	return ang
}
