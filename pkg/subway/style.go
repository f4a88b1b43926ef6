package subway

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HAlign is the horizontal text alignment relative to the anchor.
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

// VAlign is the vertical text alignment relative to the anchor.
type VAlign int

const (
	VAlignCenter VAlign = iota
	VAlignTop
	VAlignBottom
	VAlignBaseline
)

// FontWeight selects regular or bold glyphs.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

// FontSlant selects upright or italic glyphs.
type FontSlant int

const (
	SlantNormal FontSlant = iota
	SlantItalic
)

// LineStyle is the dash pattern of a line.
type LineStyle int

const (
	StyleSolid LineStyle = iota
	StyleDashed
	StyleDotted
	StyleDashDot
)

// ParseLineStyle accepts the short plotting notation ("-", "--", ":", "-.")
// as well as the long names.
func ParseLineStyle(s string) (LineStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-", "solid":
		return StyleSolid, nil
	case "--", "dashed":
		return StyleDashed, nil
	case ":", "dotted":
		return StyleDotted, nil
	case "-.", "dashdot":
		return StyleDashDot, nil
	}
	return StyleSolid, fmt.Errorf("unknown line style %q", s)
}

func (s LineStyle) String() string {
	switch s {
	case StyleDashed:
		return "dashed"
	case StyleDotted:
		return "dotted"
	case StyleDashDot:
		return "dashdot"
	}
	return "solid"
}

// CapStyle is how open line ends are drawn.
type CapStyle int

const (
	CapRound CapStyle = iota
	CapProjecting
	CapButt
)

var namedColors = map[string]color.NRGBA{
	"white": {255, 255, 255, 255},
	"black": {0, 0, 0, 255},
	"gray":  {128, 128, 128, 255},
	"grey":  {128, 128, 128, 255},
}

// ParseColor parses a color name (white, black, gray) or a "#rrggbb" hex
// string.
func ParseColor(s string) (color.NRGBA, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[key]; ok {
		return c, nil
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustColor is like ParseColor but panics on error. Use for literals only.
func MustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha replaced by a (0..1).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a*255 + 0.5)
	return c
}

// Hex formats c as "#rrggbb", ignoring alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
