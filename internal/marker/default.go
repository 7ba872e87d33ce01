package marker

import (
	"math"

	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/cluster"
)

// defaultStyle draws a pulsing glow sprite. Active statuses additionally
// emit an expanding ring that restarts each pulse cycle.
type defaultStyle struct {
	assets *Assets
}

func (s *defaultStyle) Name() string           { return StyleDefault }
func (s *defaultStyle) SurfaceHeight() float64 { return 0.01 }

func (s *defaultStyle) UpdateFrame(st *VisualState, dt float64) {
	// Bigger facilities pulse slower; the scale divisor keeps the beat
	// readable across the capacity range.
	st.Phase += dt * (1.2 / math.Max(st.Scale, 0.1))
}

func (s *defaultStyle) Render(cv *canvas.Canvas, st *VisualState, cl *cluster.Cluster) {
	if !st.Visible {
		return
	}
	rep := cl.Representative
	color := fadeColor(rep.Status.Color(), st)

	pulse := 0.5 + 0.5*math.Sin(st.Phase*2*math.Pi)
	glow := ramp(s.assets.Glow, (0.3+0.5*pulse)*st.Scale*st.Opacity)
	cv.Set(st.ScreenX, st.ScreenY, glow, color)

	if st.Selected || st.Hovered {
		cv.Set(st.ScreenX-2, st.ScreenY, '[', color)
		cv.Set(st.ScreenX+2, st.ScreenY, ']', color)
	}

	// Expanding ring for active statuses: radius grows over the cycle and
	// the glyph thins out as it expands.
	if rep.Status.Active() {
		cycle := st.Phase - math.Floor(st.Phase)
		radius := 1 + int(cycle*2)
		ring := ramp(s.assets.Ring, 1-cycle)
		cv.Set(st.ScreenX-radius*2, st.ScreenY, ring, color)
		cv.Set(st.ScreenX+radius*2, st.ScreenY, ring, color)
	}
}

func (s *defaultStyle) HitTest(st *VisualState, x, y int) bool {
	return hitWithin(st, x, y, 1)
}
