// Package globe rasterizes the planet into a canvas: a day/night shaded
// surface with derived city lights, a drifting cloud layer, an atmosphere
// rim, and a starfield backdrop.
package globe

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/atomview/internal/astro"
	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/geo"
)

// Surface glyph ramp, darkest to brightest. The shaded color carries the
// hue; the glyph carries luminance so the sphere still reads on terminals
// with poor color support.
var surfaceGlyphs = []rune{'.', '░', '▒', '▓', '█'}

// Renderer owns the surface textures and the cloud layer and draws one
// frame at a time into a caller-supplied canvas.
type Renderer struct {
	textures *Textures
	clouds   *CloudLayer
	mode     LightingMode
}

// New returns a renderer over the given textures. A nil textures value is
// allowed and selects the placeholder material.
func New(textures *Textures) *Renderer {
	return &Renderer{
		textures: textures,
		clouds:   NewCloudLayer(),
		mode:     LightingRealistic,
	}
}

// Clouds exposes the cloud layer for visibility toggles.
func (r *Renderer) Clouds() *CloudLayer { return r.clouds }

// Mode returns the active lighting mode.
func (r *Renderer) Mode() LightingMode { return r.mode }

// SetMode switches the lighting mode; unknown values are ignored.
func (r *Renderer) SetMode(m LightingMode) {
	if m.Valid() {
		r.mode = m
	}
}

// CycleMode steps realistic -> day -> night -> realistic.
func (r *Renderer) CycleMode() {
	switch r.mode {
	case LightingRealistic:
		r.mode = LightingDay
	case LightingDay:
		r.mode = LightingNight
	default:
		r.mode = LightingRealistic
	}
}

// Textured reports whether the surface textures loaded.
func (r *Renderer) Textured() bool {
	return r.textures != nil && r.textures.Day != nil
}

// Advance moves the animated parts of the globe by dt.
func (r *Renderer) Advance(dt time.Duration) {
	r.clouds.Advance(dt)
}

// Draw rasterizes the globe for the camera at time now: background first,
// then every cell inside the disc is unprojected to its surface coordinate
// and shaded.
func (r *Renderer) Draw(cv *canvas.Canvas, cam geo.Camera, now time.Time) {
	sunDir := astro.SunDirection(now)

	DrawBackground(cv, cam, sunDir)

	w, h := cv.Width(), cv.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lat, lon, ok := cam.Unproject(x, y, w, h)
			if !ok {
				continue
			}
			glyph, color := r.ShadeCell(lat, lon, sunDir, cam.LimbDistance(x, y, w, h))
			cv.Set(x, y, glyph, color.Lipgloss())
		}
	}
}

// ShadeCell samples the textures and clouds at a surface coordinate and
// runs the shader, returning the glyph and color for that cell.
func (r *Renderer) ShadeCell(lat, lon float64, sunDir mgl64.Vec3, limbDistance float64) (rune, RGB) {
	normal := geo.LatLonToPoint(lat, lon, 1)
	sunFacing := normal.Dot(sunDir)
	blend := DayNightBlend(normal, sunDir, r.mode)

	in := ShadeInput{
		Blend:     blend,
		Rim:       RimFactor(limbDistance),
		CloudCov:  r.clouds.Sample(lat, lon),
		SunFacing: sunFacing,
	}
	if r.Textured() {
		in.Textured = true
		in.Land = r.textures.Day.Sample(lat, lon)
		in.Lights = r.textures.Night.Sample(lat, lon)
	}

	return r.glyphFor(in), ShadeSurface(in)
}

// glyphFor picks a luminance glyph: daylight land is densest, night ocean
// faintest, with clouds and city lights pushing cells brighter.
func (r *Renderer) glyphFor(in ShadeInput) rune {
	lum := 0.15 + 0.5*in.Blend
	if in.Textured {
		lum += 0.2 * in.Land
		lum += 0.3 * in.Lights * (1 - in.Blend)
	}
	lum += 0.4 * in.CloudCov

	idx := int(lum * float64(len(surfaceGlyphs)))
	if idx < 0 {
		idx = 0
	} else if idx >= len(surfaceGlyphs) {
		idx = len(surfaceGlyphs) - 1
	}
	return surfaceGlyphs[idx]
}
