package globe

import (
	"math"
	"time"

	"github.com/litescript/atomview/internal/geo"
)

// Cloud layer tuning.
const (
	// cloudFadeDuration is how long the layer takes to fade in after being
	// enabled. Toggling the layer off and back on restarts the fade.
	cloudFadeDuration = 2 * time.Second

	// cloudDriftDegPerSec moves the cloud field independently of the globe
	// rotation.
	cloudDriftDegPerSec = 1.5

	cloudCoverageLow  = 0.48
	cloudCoverageHigh = 0.72
	cloudMaxOpacity   = 0.55
)

// CloudLayer is a procedural cloud field drifting over the surface. Opacity
// fades in over cloudFadeDuration whenever the layer is (re)enabled.
type CloudLayer struct {
	visible bool
	faded   time.Duration
	driftLo float64 // longitude offset in degrees
}

// NewCloudLayer returns a visible layer at the start of its fade-in.
func NewCloudLayer() *CloudLayer {
	return &CloudLayer{visible: true}
}

// Visible reports whether the layer is drawn at all.
func (l *CloudLayer) Visible() bool { return l.visible }

// SetVisible shows or hides the layer. Re-enabling resets the fade so the
// clouds always ease back in rather than popping.
func (l *CloudLayer) SetVisible(v bool) {
	if v && !l.visible {
		l.faded = 0
	}
	l.visible = v
}

// Advance moves the drift and the fade clock by dt.
func (l *CloudLayer) Advance(dt time.Duration) {
	if !l.visible {
		return
	}
	l.driftLo = geo.NormalizeLon(l.driftLo + cloudDriftDegPerSec*dt.Seconds())
	if l.faded < cloudFadeDuration {
		l.faded += dt
		if l.faded > cloudFadeDuration {
			l.faded = cloudFadeDuration
		}
	}
}

// Opacity returns the current global cloud opacity in [0, cloudMaxOpacity].
func (l *CloudLayer) Opacity() float64 {
	if !l.visible {
		return 0
	}
	t := float64(l.faded) / float64(cloudFadeDuration)
	return geo.Smoothstep(0, 1, t) * cloudMaxOpacity
}

// Sample returns the cloud coverage at a coordinate, already scaled by the
// layer opacity. The field is value noise thresholded into broken cover.
func (l *CloudLayer) Sample(latDeg, lonDeg float64) float64 {
	op := l.Opacity()
	if op == 0 {
		return 0
	}
	lon := geo.NormalizeLon(lonDeg + l.driftLo)
	n := valueNoise(lon/22, latDeg/14)
	n = 0.65*n + 0.35*valueNoise(lon/7+31.7, latDeg/5-12.3)
	return geo.Smoothstep(cloudCoverageLow, cloudCoverageHigh, n) * op
}

// valueNoise is smooth deterministic 2D noise in [0, 1]: lattice hashes with
// smoothstep-weighted bilinear interpolation.
func valueNoise(x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	tx := geo.Smoothstep(0, 1, x-x0)
	ty := geo.Smoothstep(0, 1, y-y0)

	ix := int(x0)
	iy := int(y0)
	v00 := hash01(ix, iy)
	v10 := hash01(ix+1, iy)
	v01 := hash01(ix, iy+1)
	v11 := hash01(ix+1, iy+1)

	top := v00 + (v10-v00)*tx
	bot := v01 + (v11-v01)*tx
	return top + (bot-top)*ty
}
