package globe

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// RGB is a working color with float channels in [0, 1]; the renderer does
// all blending in this space and converts to a terminal color at the end.
type RGB struct {
	R, G, B float64
}

// Hex renders the color as a #RRGGBB string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

// Lipgloss converts the color for canvas writes.
func (c RGB) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

func channel(v float64) int {
	i := int(v*255 + 0.5)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return i
}

// Mix blends toward other by t.
func (c RGB) Mix(other RGB, t float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// Scale multiplies all channels.
func (c RGB) Scale(f float64) RGB {
	return RGB{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Add sums channels without clamping; Hex clamps at conversion time.
func (c RGB) Add(other RGB) RGB {
	return RGB{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}

// Desaturate pulls the color toward its own luminance by amount; the final
// grading pass uses a light touch so the globe doesn't look neon.
func (c RGB) Desaturate(amount float64) RGB {
	lum := 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
	grey := RGB{R: lum, G: lum, B: lum}
	return c.Mix(grey, amount)
}
