package marker

import (
	"math"

	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/cluster"
)

// dotStyle draws a flat sprite with a drop shadow beneath it and a slow
// breathing glow. Deliberately quiet for a data-viz reading of the map.
type dotStyle struct {
	assets *Assets
}

func (s *dotStyle) Name() string           { return StyleDots }
func (s *dotStyle) SurfaceHeight() float64 { return 0.005 }

func (s *dotStyle) UpdateFrame(st *VisualState, dt float64) {
	// Slow breathing; the cycle is long enough that individual frames
	// barely differ.
	st.Phase += dt * 0.35
}

func (s *dotStyle) Render(cv *canvas.Canvas, st *VisualState, cl *cluster.Cluster) {
	if !st.Visible {
		return
	}
	rep := cl.Representative
	color := fadeColor(rep.Status.Color(), st)

	breath := 0.85 + 0.15*math.Sin(st.Phase*2*math.Pi)
	dot := ramp(s.assets.Dot, 0.4*st.Scale*breath*st.Opacity+0.3)

	cv.Set(st.ScreenX, st.ScreenY+1, s.assets.Shadow, fadeColor("#1F2430", st))
	cv.Set(st.ScreenX, st.ScreenY, dot, color)

	if st.Selected {
		cv.Set(st.ScreenX-2, st.ScreenY, '(', color)
		cv.Set(st.ScreenX+2, st.ScreenY, ')', color)
	}
}

func (s *dotStyle) HitTest(st *VisualState, x, y int) bool {
	return hitWithin(st, x, y, 1)
}
