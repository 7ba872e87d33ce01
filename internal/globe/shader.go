package globe

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/atomview/internal/geo"
)

// LightingMode selects how the day/night blend factor is computed.
type LightingMode string

const (
	// LightingRealistic blends day and night across a soft terminator
	// derived from the sun direction.
	LightingRealistic LightingMode = "realistic"
	// LightingDay pins the blend to full daylight.
	LightingDay LightingMode = "day"
	// LightingNight pins the blend to full night.
	LightingNight LightingMode = "night"
)

// Valid reports whether m is a known lighting mode.
func (m LightingMode) Valid() bool {
	return m == LightingRealistic || m == LightingDay || m == LightingNight
}

// Terminator softness: the blend ramps from night to day as the surface
// normal swings across the sun direction.
const (
	terminatorLow  = -0.1
	terminatorHigh = 0.25
)

// Surface palette.
var (
	oceanDay   = RGB{R: 0.09, G: 0.26, B: 0.45}
	landDay    = RGB{R: 0.28, G: 0.46, B: 0.24}
	oceanNight = RGB{R: 0.02, G: 0.04, B: 0.10}
	landNight  = RGB{R: 0.04, G: 0.05, B: 0.09}
	lightTint  = RGB{R: 1.0, G: 0.72, B: 0.42} // warm city-light amber
	rimColor   = RGB{R: 0.35, G: 0.55, B: 0.95}
	cloudColor = RGB{R: 0.92, G: 0.94, B: 0.97}

	// Placeholder material when textures failed to load: a flat slate
	// sphere that still shades day/night.
	placeholderDay   = RGB{R: 0.35, G: 0.38, B: 0.44}
	placeholderNight = RGB{R: 0.05, G: 0.06, B: 0.08}
)

// nightLightGain amplifies the city-light field; native intensity reads too
// dim once the tint is applied.
const nightLightGain = 1.8

// finalDesaturation is the last grading pass over every shaded cell.
const finalDesaturation = 0.15

// DayNightBlend returns the day fraction for a surface normal: 1 is full
// day, 0 is full night. In realistic mode it is a smooth threshold of
// normal·sun; forced modes pin it.
func DayNightBlend(normal, sunDir mgl64.Vec3, mode LightingMode) float64 {
	switch mode {
	case LightingDay:
		return 1
	case LightingNight:
		return 0
	default:
		return geo.Smoothstep(terminatorLow, terminatorHigh, normal.Dot(sunDir))
	}
}

// ShadeInput carries everything the surface shader needs for one cell.
type ShadeInput struct {
	Land      float64 // landmass coverage sample, 0 ocean .. 1 land
	Lights    float64 // night-light intensity sample
	Blend     float64 // day fraction from DayNightBlend
	Rim       float64 // silhouette rim factor, 0 center .. 1 limb
	CloudCov  float64 // cloud coverage sample, already faded
	Textured  bool    // false selects the placeholder material
	SunFacing float64 // normal·sun, used to keep relief on the day side
}

// ShadeSurface computes the final cell color: day and night surface colors
// blended across the terminator, tinted and amplified night lights, an
// additive rim for the atmosphere, clouds on top, and a final desaturation
// grade.
func ShadeSurface(in ShadeInput) RGB {
	var day, night RGB
	if in.Textured {
		day = oceanDay.Mix(landDay, in.Land)
		night = oceanNight.Mix(landNight, in.Land)
	} else {
		day = placeholderDay
		night = placeholderNight
	}

	// Gentle relief on the lit side so the sphere reads as curved.
	if in.SunFacing > 0 {
		day = day.Scale(0.75 + 0.25*in.SunFacing)
	}

	c := night.Mix(day, in.Blend)

	// City lights belong to the night side only; tint warm and amplify
	// rather than showing the field at native brightness.
	if in.Textured && in.Blend < 1 {
		glow := in.Lights * nightLightGain * (1 - in.Blend)
		c = c.Add(lightTint.Scale(glow * 0.35))
	}

	// Clouds sit above the surface and catch the same terminator light.
	if in.CloudCov > 0 {
		lit := cloudColor.Scale(0.15 + 0.85*in.Blend)
		c = c.Mix(lit, in.CloudCov)
	}

	// Thin additive rim at the silhouette for the atmospheric look.
	c = c.Add(rimColor.Scale(in.Rim * 0.5))

	return c.Desaturate(finalDesaturation)
}

// RimFactor converts a normalized limb distance (0 center, 1 edge) into
// the additive rim-light weight; only the outer shell of the disc glows.
func RimFactor(limbDistance float64) float64 {
	return geo.Smoothstep(0.82, 1.0, limbDistance)
}

// AtmosphereHalo returns the glow strength for cells just outside the
// disc, fading out across a thin shell.
func AtmosphereHalo(limbDistance float64) float64 {
	if limbDistance <= 1 {
		return 0
	}
	return 1 - geo.Smoothstep(1.0, 1.08, limbDistance)
}
