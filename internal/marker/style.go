package marker

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/cluster"
)

// VisualState is the live per-cluster animation state. The scene's frame
// loop is its only owner: projection fields are refreshed from the current
// camera each frame before UpdateFrame runs, and the whole set is rebuilt
// whenever the record list or status filter changes.
type VisualState struct {
	ScreenX int
	ScreenY int
	Facing  float64 // surface normal · camera direction
	Opacity float64 // edge fade, 0 hidden .. 1 fully visible
	Visible bool

	Phase    float64 // animation clock in seconds, phase-offset per marker
	Scale    float64 // capacity-driven size multiplier
	Selected bool
	Hovered  bool
}

// Style is the rendering contract every visual style implements. One style
// is selected at scene construction; the scene never branches on the
// concrete type per frame.
type Style interface {
	// Name identifies the style in config and the UI.
	Name() string
	// SurfaceHeight is how far above the surface this style's primitives
	// sit, in globe radii. Taller geometry needs more clearance.
	SurfaceHeight() float64
	// UpdateFrame advances the marker's animation by dt seconds. It only
	// writes animation fields; projection fields belong to the scene.
	UpdateFrame(st *VisualState, dt float64)
	// Render draws the marker for one cluster into the canvas.
	Render(cv *canvas.Canvas, st *VisualState, cl *cluster.Cluster)
	// HitTest reports whether a pointer cell hits this marker.
	HitTest(st *VisualState, x, y int) bool
}

// Style names accepted in config.
const (
	StyleDefault = "default"
	StylePins    = "pins"
	StylePlumes  = "plumes"
	StyleDots    = "dots"
	StyleClean   = "clean"
)

// StyleNames lists the selectable styles in presentation order.
var StyleNames = []string{StyleDefault, StylePins, StylePlumes, StyleDots, StyleClean}

// ForName builds the named style over a shared asset arena.
func ForName(name string, assets *Assets) (Style, error) {
	switch name {
	case StyleDefault, "":
		return &defaultStyle{assets: assets}, nil
	case StylePins:
		return &pinStyle{assets: assets}, nil
	case StylePlumes:
		return &plumeStyle{assets: assets}, nil
	case StyleDots:
		return &dotStyle{assets: assets}, nil
	case StyleClean:
		return &cleanStyle{assets: assets}, nil
	default:
		return nil, fmt.Errorf("unknown marker style %q", name)
	}
}

// hitWithin is the shared box hit test. Terminal cells are taller than
// wide, so the horizontal tolerance is doubled.
func hitWithin(st *VisualState, x, y, radius int) bool {
	if !st.Visible {
		return false
	}
	dx := x - st.ScreenX
	dy := y - st.ScreenY
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= radius*2 && dy <= radius
}

// fadeColor scales a #RRGGBB color toward black by the marker opacity, and
// brightens it slightly while hovered.
func fadeColor(hex string, st *VisualState) lipgloss.Color {
	f := st.Opacity
	if st.Hovered {
		f = math.Min(1, f*1.3)
	}
	if len(hex) != 7 || f >= 0.999 {
		return lipgloss.Color(hex)
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X",
		int(float64(r)*f), int(float64(g)*f), int(float64(b)*f)))
}
