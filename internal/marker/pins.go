package marker

import (
	"math"

	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/cluster"
)

// pinStyle draws a stem rising from the surface with a head on top. The
// head pulses for active statuses; selection adds a flat ring at the base.
type pinStyle struct {
	assets *Assets
}

func (s *pinStyle) Name() string { return StylePins }

// Pins stand off the surface; they need the most clearance of any style.
func (s *pinStyle) SurfaceHeight() float64 { return 0.04 }

func (s *pinStyle) UpdateFrame(st *VisualState, dt float64) {
	st.Phase += dt * 1.5
}

func (s *pinStyle) Render(cv *canvas.Canvas, st *VisualState, cl *cluster.Cluster) {
	if !st.Visible {
		return
	}
	rep := cl.Representative
	color := fadeColor(rep.Status.Color(), st)

	// Stem length tracks capacity. The head sits above the anchor cell so
	// the pin appears to stand on the surface.
	stemLen := 1
	if st.Scale > 1.1 {
		stemLen = 2
	}
	for i := 0; i < stemLen; i++ {
		cv.Set(st.ScreenX, st.ScreenY-i, s.assets.PinStem, color)
	}

	head := s.assets.PinHead
	if rep.Status.Active() {
		// Head pulse alternates the solid head with a glow frame.
		if math.Sin(st.Phase*2*math.Pi) > 0 {
			head = ramp(s.assets.Glow, 0.9)
		}
	}
	cv.Set(st.ScreenX, st.ScreenY-stemLen, head, color)

	if st.Selected {
		ring := s.assets.Ring[len(s.assets.Ring)-1]
		cv.Set(st.ScreenX-2, st.ScreenY, ring, color)
		cv.Set(st.ScreenX+2, st.ScreenY, ring, color)
	}
}

func (s *pinStyle) HitTest(st *VisualState, x, y int) bool {
	if !st.Visible {
		return false
	}
	// The pin occupies the anchor cell and the cells above it.
	if x == st.ScreenX && y <= st.ScreenY && y >= st.ScreenY-2 {
		return true
	}
	return hitWithin(st, x, y, 1)
}
