package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/geo"
)

// Star glyph ramp from faint to bright.
var starGlyphs = []rune{'·', '.', '+', '✦'}

var starColor = RGB{R: 0.62, G: 0.66, B: 0.78}

// starDensity is the fraction of background cells carrying a star.
const starDensity = 0.04

// DrawBackground fills every cell outside the globe disc with a
// deterministic starfield plus a soft glow around the sun's screen
// position. The field is keyed on cell coordinates only, so it holds still
// while the globe rotates under it.
func DrawBackground(cv *canvas.Canvas, cam geo.Camera, sunDir mgl64.Vec3) {
	w, h := cv.Width(), cv.Height()
	sunX, sunY, sunVisible := sunScreenPosition(cam, sunDir, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			limb := cam.LimbDistance(x, y, w, h)
			if limb <= 1 {
				continue
			}

			if halo := AtmosphereHalo(limb); halo > 0 {
				cv.Set(x, y, '░', rimColor.Scale(0.3+0.7*halo).Lipgloss())
				continue
			}

			if sunVisible {
				dx := float64(x-sunX) / 2 // cells are twice as tall as wide
				dy := float64(y - sunY)
				d := dx*dx + dy*dy
				if d < 1 {
					cv.Set(x, y, '☀', RGB{R: 1, G: 0.9, B: 0.6}.Lipgloss())
					continue
				}
				if d < 9 {
					glow := 1 - geo.Smoothstep(1, 9, d)
					cv.Set(x, y, '▒', RGB{R: 0.9, G: 0.8, B: 0.5}.Scale(0.3 + 0.7*glow).Lipgloss())
					continue
				}
			}

			hv := hash01(x, y)
			if hv < starDensity {
				glyph := starGlyphs[int(hv/starDensity*float64(len(starGlyphs)))]
				bright := 0.5 + 0.5*hash01(y, x)
				cv.Set(x, y, glyph, starColor.Scale(bright).Lipgloss())
			}
		}
	}
}

// sunScreenPosition puts the sun glow on the screen by projecting the
// subsolar point and pushing it out past the globe disc, so the glow reads
// as a distant light source behind the silhouette.
func sunScreenPosition(cam geo.Camera, sunDir mgl64.Vec3, width, height int) (int, int, bool) {
	lat, lon := geo.PointToLatLon(sunDir)
	x, y, facing, _ := cam.Project(lat, lon, width, height)
	if facing <= 0.2 {
		return 0, 0, false
	}

	cx, cy := float64(width)/2, float64(height)/2
	const push = 1.7
	px := int(math.Round(cx + (float64(x)-cx)*push))
	py := int(math.Round(cy + (float64(y)-cy)*push))
	if px < 0 || px >= width || py < 0 || py >= height {
		return 0, 0, false
	}
	return px, py, true
}
