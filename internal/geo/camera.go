package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera zoom limits. DefaultZoom leaves a little margin around the disc.
const (
	DefaultZoom = 0.9
	MinZoom     = 0.4
	MaxZoom     = 4.0
	ZoomStep    = 1.25
)

// EdgeFadeThreshold is the camera-facing dot product below which a surface
// point is considered hidden. It is slightly negative so markers fade out
// softly past the horizon instead of popping off at the silhouette.
const EdgeFadeThreshold = -0.15

// edgeFadeFull is the facing value at which a marker is fully opaque.
const edgeFadeFull = 0.1

// Camera is the orbiting view over the globe: the surface coordinate at the
// center of the screen plus a zoom factor. The scene controller is the only
// writer; everything else reads it per frame.
type Camera struct {
	CenterLat float64
	CenterLon float64
	Zoom      float64
}

// NewCamera returns a camera framing the whole globe.
func NewCamera() Camera {
	return Camera{Zoom: DefaultZoom}
}

// basis returns the camera-space basis vectors: right, up, and forward,
// where forward points from the globe center toward the viewer through the
// screen center. The up reference is the polar axis, so the poles stay
// vertically aligned; the center latitude is clamped just short of ±90 to
// keep the basis well defined.
func (c Camera) basis() (right, up, forward mgl64.Vec3) {
	lat := c.CenterLat
	if lat > 89.9 {
		lat = 89.9
	} else if lat < -89.9 {
		lat = -89.9
	}

	forward = LatLonToPoint(lat, c.CenterLon, 1)
	right = mgl64.Vec3{0, 1, 0}.Cross(forward).Normalize()
	up = forward.Cross(right)
	return right, up, forward
}

// RadiusCells returns the globe radius in canvas rows for a canvas of the
// given size. Terminal cells are roughly twice as tall as wide, so the
// horizontal extent uses two columns per unit.
func (c Camera) RadiusCells(width, height int) float64 {
	r := math.Min(float64(width)/4, float64(height)/2)
	zoom := c.Zoom
	if zoom == 0 {
		zoom = DefaultZoom
	}
	return r * zoom
}

// Project maps a surface coordinate to canvas cell coordinates. The facing
// result is the dot product between the surface normal and the camera
// direction: positive on the near side, negative past the horizon. ok is
// false when the point projects outside the canvas.
func (c Camera) Project(latDeg, lonDeg float64, width, height int) (x, y int, facing float64, ok bool) {
	return c.ProjectPoint(LatLonToPoint(latDeg, lonDeg, 1), width, height)
}

// ProjectPoint maps an arbitrary point in globe space to canvas cell
// coordinates. A point lifted above the surface lands proportionally
// further from the disc center; facing uses the radial direction, so a
// lifted point crosses the horizon together with the surface beneath it.
func (c Camera) ProjectPoint(p mgl64.Vec3, width, height int) (x, y int, facing float64, ok bool) {
	right, up, forward := c.basis()

	px := p.Dot(right)
	py := p.Dot(up)
	if r := p.Len(); r > 0 {
		facing = p.Dot(forward) / r
	}

	rc := c.RadiusCells(width, height)
	x = width/2 + int(math.Round(px*rc*2))
	y = height/2 - int(math.Round(py*rc))

	ok = x >= 0 && x < width && y >= 0 && y < height
	return x, y, facing, ok
}

// Unproject maps a canvas cell back to the surface coordinate visible at
// that cell, or ok=false when the cell lies off the globe disc.
func (c Camera) Unproject(x, y, width, height int) (latDeg, lonDeg float64, ok bool) {
	r := c.RadiusCells(width, height)
	if r <= 0 {
		return 0, 0, false
	}

	px := (float64(x) - float64(width)/2) / (r * 2)
	py := (float64(height)/2 - float64(y)) / r

	d2 := px*px + py*py
	if d2 > 1 {
		return 0, 0, false
	}
	pz := math.Sqrt(1 - d2)

	right, up, forward := c.basis()
	p := right.Mul(px).Add(up.Mul(py)).Add(forward.Mul(pz))

	latDeg, lonDeg = PointToLatLon(p)
	return latDeg, lonDeg, true
}

// LimbDistance returns the normalized distance of a cell from the globe
// center in disc units: 1.0 on the silhouette edge. Cells slightly past 1
// fall in the atmosphere rim band.
func (c Camera) LimbDistance(x, y, width, height int) float64 {
	r := c.RadiusCells(width, height)
	if r <= 0 {
		return math.Inf(1)
	}
	px := (float64(x) - float64(width)/2) / (r * 2)
	py := (float64(height)/2 - float64(y)) / r
	return math.Sqrt(px*px + py*py)
}

// EdgeFade converts a camera-facing value into an opacity in [0, 1] with a
// soft ramp near the horizon.
func EdgeFade(facing float64) float64 {
	return Smoothstep(EdgeFadeThreshold, edgeFadeFull, facing)
}
