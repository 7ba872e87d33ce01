// Package astro computes the sun's position for the realistic lighting
// mode: the subsolar point is the surface coordinate where the sun is
// directly overhead, and the day/night terminator follows from it.
package astro

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/atomview/internal/geo"
)

// SubsolarPoint returns the latitude/longitude (degrees) directly beneath
// the sun at the given time. Uses a simplified solar ephemeris based on the
// Astronomical Almanac; accuracy is a small fraction of a degree, far finer
// than the soft terminator needs.
func SubsolarPoint(t time.Time) (latDeg, lonDeg float64) {
	jd := julianDate(t)
	T := (jd - 2451545.0) / 36525.0

	// Mean longitude and mean anomaly of the Sun (degrees).
	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Equation of center.
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	// Apparent longitude, corrected for aberration and nutation.
	omega := 125.04 - 1934.136*T
	sunLonApp := L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	// Obliquity of the ecliptic.
	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	eps := eps0 + 0.00256*math.Cos(degToRad(omega))

	sunLonRad := degToRad(sunLonApp)
	epsRad := degToRad(eps)

	// Equatorial coordinates.
	ra := math.Atan2(math.Cos(epsRad)*math.Sin(sunLonRad), math.Cos(sunLonRad))
	raDeg := radToDeg(ra)
	if raDeg < 0 {
		raDeg += 360
	}
	decDeg := radToDeg(math.Asin(math.Sin(epsRad) * math.Sin(sunLonRad)))

	// The subsolar latitude is the declination; the subsolar longitude is
	// where the local sidereal time equals the right ascension.
	lonDeg = geo.NormalizeLon(raDeg - greenwichMeanSiderealTime(t))
	return decDeg, lonDeg
}

// SunDirection returns the unit vector from the globe center toward the sun
// at the given time, in the same frame the projector uses.
func SunDirection(t time.Time) mgl64.Vec3 {
	lat, lon := SubsolarPoint(t)
	return geo.LatLonToPoint(lat, lon, 1)
}

// greenwichMeanSiderealTime calculates GMST in degrees for a given UTC time
// using the IAU 1982 formula.
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := julianDate(t)
	T := (jd - 2451545.0) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*T*T -
		T*T*T/38710000.0

	gmst = math.Mod(gmst, 360)
	if gmst < 0 {
		gmst += 360
	}
	return gmst
}

// julianDate calculates the Julian Date for a given time.
func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
