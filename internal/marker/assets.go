// Package marker draws one interactive primitive per displayed cluster:
// five interchangeable visual styles behind a single Style contract, all
// animated from the scene's frame clock and faded near the horizon.
package marker

// Assets is the shared glyph arena: every ramp is generated once at scene
// construction and handed to each style by reference. Ramps are immutable
// after creation.
type Assets struct {
	// Glow runs faint to bright; pulsing styles index into it by phase.
	Glow []rune
	// Ring is the expanding selection/active ring by radius step.
	Ring []rune
	// Plume runs dense to dissipated; rising sprites walk it as they fade.
	Plume []rune
	// Dot is the flat sprite ramp by size.
	Dot []rune
	// Shadow is drawn one row beneath grounded dots.
	Shadow rune
	// PinStem and PinHead build the stem+head geometry.
	PinStem rune
	PinHead rune
}

// NewAssets builds the arena. Generation is procedural so the binary ships
// no sprite files.
func NewAssets() *Assets {
	return &Assets{
		Glow:    []rune{'·', '∘', '○', '◎', '◉'},
		Ring:    []rune{'◌', '○', '◯', '⬡'},
		Plume:   []rune{'▲', '△', '˄', '˚', '·'},
		Dot:     []rune{'·', '•', '●', '⬤'},
		Shadow:  '▁',
		PinStem: '│',
		PinHead: '◆',
	}
}

// ramp indexes a glyph ramp by a [0, 1] parameter, clamping at the ends.
func ramp(glyphs []rune, t float64) rune {
	idx := int(t * float64(len(glyphs)))
	if idx < 0 {
		idx = 0
	} else if idx >= len(glyphs) {
		idx = len(glyphs) - 1
	}
	return glyphs[idx]
}
