package globe

import (
	"embed"
	"fmt"
	"math"
	"strings"

	"github.com/litescript/atomview/internal/geo"
)

//go:embed data/earthmap.txt
var embeddedAssets embed.FS

// Texture is a coarse equirectangular scalar field sampled by lat/lon.
// Row 0 is +90° latitude; column 0 is -180° longitude.
type Texture struct {
	width  int
	height int
	cells  []float64
}

// Sample returns the bilinearly interpolated value at a coordinate.
func (t *Texture) Sample(latDeg, lonDeg float64) float64 {
	if t == nil || t.width == 0 || t.height == 0 {
		return 0
	}

	fx := (geo.NormalizeLon(lonDeg) + 180) / 360 * float64(t.width)
	fy := (90 - latDeg) / 180 * float64(t.height)

	x0 := int(fx)
	y0 := int(fy)
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	v00 := t.at(x0, y0)
	v10 := t.at(x0+1, y0)
	v01 := t.at(x0, y0+1)
	v11 := t.at(x0+1, y0+1)

	top := v00 + (v10-v00)*tx
	bot := v01 + (v11-v01)*tx
	return top + (bot-top)*ty
}

// at reads a texel with longitude wrap and latitude clamp.
func (t *Texture) at(x, y int) float64 {
	x = ((x % t.width) + t.width) % t.width
	if y < 0 {
		y = 0
	} else if y >= t.height {
		y = t.height - 1
	}
	return t.cells[y*t.width+x]
}

// Textures bundles the render-critical surface data: the day-side landmass
// field and the night-side city-light field. Nil fields mean the load
// failed and the placeholder material applies.
type Textures struct {
	Day   *Texture
	Night *Texture
}

// LoadTextures parses the embedded surface map into the day texture and
// derives the night-light field from it. Day and night are render-critical
// and load together; the cloud texture is generated separately, off the
// first-paint path.
func LoadTextures() (*Textures, error) {
	raw, err := embeddedAssets.ReadFile("data/earthmap.txt")
	if err != nil {
		return nil, fmt.Errorf("read surface map: %w", err)
	}

	day, err := parseSurfaceMap(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse surface map: %w", err)
	}

	return &Textures{Day: day, Night: deriveNightLights(day)}, nil
}

// parseSurfaceMap reads the ASCII landmass map: '#' is land, everything
// else is ocean.
func parseSurfaceMap(raw string) (*Texture, error) {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty surface map")
	}
	width := len(lines[0])
	if width == 0 {
		return nil, fmt.Errorf("empty surface map row")
	}

	tex := &Texture{width: width, height: len(lines)}
	tex.cells = make([]float64, width*len(lines))
	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("ragged surface map: row %d is %d cells, want %d", y, len(line), width)
		}
		for x, ch := range line {
			if ch == '#' {
				tex.cells[y*width+x] = 1
			}
		}
	}
	return tex, nil
}

// deriveNightLights builds the city-light intensity field: land glows with
// a deterministic per-texel variation, strongest in the mid-latitudes where
// most of the built environment is, and coastal texels glow a little more.
func deriveNightLights(day *Texture) *Texture {
	night := &Texture{width: day.width, height: day.height}
	night.cells = make([]float64, len(day.cells))

	for y := 0; y < day.height; y++ {
		lat := 90 - (float64(y)+0.5)/float64(day.height)*180
		band := geo.Smoothstep(70, 55, math.Abs(lat)) // dark poles, lit mid-latitudes
		for x := 0; x < day.width; x++ {
			if day.cells[y*day.width+x] == 0 {
				continue
			}
			coastal := 0.0
			if day.at(x-1, y) == 0 || day.at(x+1, y) == 0 || day.at(x, y-1) == 0 || day.at(x, y+1) == 0 {
				coastal = 0.25
			}
			night.cells[y*night.width+x] = band * (0.35 + 0.5*hash01(x, y) + coastal)
		}
	}
	return night
}

// hash01 is a cheap deterministic per-texel value in [0, 1).
func hash01(x, y int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h%10000) / 10000
}
