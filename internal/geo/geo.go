// Package geo provides spherical coordinate math for the globe view:
// latitude/longitude to 3D projection, camera-relative screen projection,
// and the capacity-driven marker scale.
package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TextureRotationOffsetDeg rotates the projection about the polar axis so
// longitude 0 lines up with the prime meridian of the rendered surface map.
const TextureRotationOffsetDeg = -90.0

// LatLonToPoint maps a latitude/longitude pair (degrees) to a point on the
// surface of a sphere of the given radius. Latitude is clamped to [-90, 90];
// the result is stable at the poles and across the ±180° seam.
func LatLonToPoint(latDeg, lonDeg, radius float64) mgl64.Vec3 {
	if latDeg > 90 {
		latDeg = 90
	} else if latDeg < -90 {
		latDeg = -90
	}

	lat := mgl64.DegToRad(latDeg)
	lon := mgl64.DegToRad(lonDeg + TextureRotationOffsetDeg)

	cosLat := math.Cos(lat)
	return mgl64.Vec3{
		radius * cosLat * math.Cos(lon),
		radius * math.Sin(lat),
		-radius * cosLat * math.Sin(lon),
	}
}

// PointToLatLon inverts LatLonToPoint for a point on (or near) the sphere
// surface. Returns latitude and longitude in degrees, longitude normalized
// to [-180, 180].
func PointToLatLon(p mgl64.Vec3) (latDeg, lonDeg float64) {
	r := p.Len()
	if r == 0 {
		return 0, 0
	}

	sinLat := p.Y() / r
	if sinLat > 1 {
		sinLat = 1
	} else if sinLat < -1 {
		sinLat = -1
	}
	latDeg = mgl64.RadToDeg(math.Asin(sinLat))

	lonDeg = mgl64.RadToDeg(math.Atan2(-p.Z(), p.X())) - TextureRotationOffsetDeg
	lonDeg = NormalizeLon(lonDeg)
	return latDeg, lonDeg
}

// SurfaceOffset nudges a surface point outward along its own normal by
// height. Marker styles sit at different visual heights above the sphere;
// the offset keeps them from fighting the surface for the same cell depth.
func SurfaceOffset(p mgl64.Vec3, height float64) mgl64.Vec3 {
	r := p.Len()
	if r == 0 {
		return p
	}
	return p.Mul((r + height) / r)
}

// NormalizeLon wraps a longitude in degrees to [-180, 180].
func NormalizeLon(lonDeg float64) float64 {
	lonDeg = math.Mod(lonDeg+180, 360)
	if lonDeg < 0 {
		lonDeg += 360
	}
	return lonDeg - 180
}

// LerpAngle interpolates between two angles in degrees along the shortest
// arc, so a fly-to from 170° to -170° crosses the seam instead of circling
// the long way around.
func LerpAngle(a, b, t float64) float64 {
	return a + NormalizeLon(b-a)*t
}

// Lerp is plain linear interpolation.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the classic Hermite threshold: 0 below e0, 1 above e1, and
// a smooth cubic ramp in between. Used for the day/night terminator and the
// marker edge fade.
func Smoothstep(e0, e1, x float64) float64 {
	if e0 == e1 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := (x - e0) / (e1 - e0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
