package plate

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a well fill color: a CSS-style name or a "#rrggbb" hex value.
type Color string

const (
	// White is the fill of a well that has never been assigned anything.
	White Color = "white"
	// DefaultFill is the pastel pink offered by the color picker.
	DefaultFill Color = "#F2D5DA"
)

// ErrInvalidColor is returned when a stored color cannot be resolved.
var ErrInvalidColor = errors.New("invalid color")

// NRGBA resolves the color. Accepted forms are an SVG/CSS color name,
// "#rgb" and "#rrggbb".
func (c Color) NRGBA() (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	if named, ok := colornames.Map[s]; ok {
		return color.NRGBAModel.Convert(named).(color.NRGBA), nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q", string(c))
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q", string(c))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q: %w", string(c), err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustNRGBA resolves the color, falling back to white for unparseable values.
func (c Color) MustNRGBA() color.NRGBA {
	v, err := c.NRGBA()
	if err != nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return v
}

// ColorOf converts any color to its "#RRGGBB" form. Alpha is dropped.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color(fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B))
}
