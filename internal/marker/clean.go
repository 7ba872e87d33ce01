package marker

import (
	"math"

	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/cluster"
)

// cleanStyle draws one uniform flat dot per cluster with no continuous
// animation. Size follows the square root of the member count, so a
// ten-unit site reads larger without drowning its neighbors.
type cleanStyle struct {
	assets *Assets
}

func (s *cleanStyle) Name() string           { return StyleClean }
func (s *cleanStyle) SurfaceHeight() float64 { return 0.005 }

func (s *cleanStyle) UpdateFrame(st *VisualState, dt float64) {
	// No continuous animation.
}

func (s *cleanStyle) Render(cv *canvas.Canvas, st *VisualState, cl *cluster.Cluster) {
	if !st.Visible {
		return
	}
	color := fadeColor(cl.Representative.Status.Color(), st)

	size := math.Sqrt(float64(cl.Count())) / 3
	cv.Set(st.ScreenX, st.ScreenY, ramp(s.assets.Dot, 0.3+size), color)

	// Multi-unit sites grow horizontal flanks instead of a bigger glyph.
	if cl.Count() >= 4 {
		cv.Set(st.ScreenX-1, st.ScreenY, s.assets.Dot[0], color)
		cv.Set(st.ScreenX+1, st.ScreenY, s.assets.Dot[0], color)
	}

	if st.Selected {
		cv.Set(st.ScreenX-2, st.ScreenY, '(', color)
		cv.Set(st.ScreenX+2, st.ScreenY, ')', color)
	}
}

func (s *cleanStyle) HitTest(st *VisualState, x, y int) bool {
	return hitWithin(st, x, y, 1)
}
