package marker

import (
	"math"

	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/cluster"
)

// plumeStyle draws a static base glow plus up to three sprites that rise
// from the surface and dissipate over a cycle, each on its own phase
// offset. Only operating and constructing sites emit plumes.
type plumeStyle struct {
	assets *Assets
}

const (
	plumeCount       = 3
	plumeCycleSec    = 2.4
	plumePhaseOffset = plumeCycleSec / plumeCount
	plumeRiseCells   = 3
)

func (s *plumeStyle) Name() string           { return StylePlumes }
func (s *plumeStyle) SurfaceHeight() float64 { return 0.02 }

func (s *plumeStyle) UpdateFrame(st *VisualState, dt float64) {
	st.Phase += dt
}

func (s *plumeStyle) Render(cv *canvas.Canvas, st *VisualState, cl *cluster.Cluster) {
	if !st.Visible {
		return
	}
	rep := cl.Representative
	color := fadeColor(rep.Status.Color(), st)

	base := ramp(s.assets.Glow, 0.6*st.Scale*st.Opacity)
	cv.Set(st.ScreenX, st.ScreenY, base, color)

	if st.Selected || st.Hovered {
		cv.Set(st.ScreenX-2, st.ScreenY, '[', color)
		cv.Set(st.ScreenX+2, st.ScreenY, ']', color)
	}

	if !rep.Status.Active() {
		return
	}

	for i := 0; i < plumeCount; i++ {
		t := math.Mod(st.Phase+float64(i)*plumePhaseOffset, plumeCycleSec) / plumeCycleSec
		rise := int(t * plumeRiseCells)
		if rise == 0 {
			continue // still inside the base glow
		}
		glyph := ramp(s.assets.Plume, t)
		cv.Set(st.ScreenX, st.ScreenY-rise, glyph, color)
	}
}

func (s *plumeStyle) HitTest(st *VisualState, x, y int) bool {
	if !st.Visible {
		return false
	}
	if x == st.ScreenX && y <= st.ScreenY && y >= st.ScreenY-plumeRiseCells {
		return true
	}
	return hitWithin(st, x, y, 1)
}
