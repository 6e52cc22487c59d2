// Package render turns a plate into a drawable scene and writes that scene
// as SVG or PNG. The scene is a pure function of the plate.
package render

import (
	"math"
	"strings"

	"github.com/PixPMusic/platemapper/internal/plate"
)

const (
	// WellPadding is trimmed from each side of a unit cell before the
	// circle is inscribed, so neighbouring wells never touch.
	WellPadding = 0.15

	// DefaultWidth is the canvas width in pixels; height follows rows/cols.
	DefaultWidth = 800

	// LabelSeparator joins compound names into a multi-line label.
	LabelSeparator = "\n"
)

// Fixed palette
const (
	Background plate.Color = "#b8c1a1"
	Outline    plate.Color = "black"
	Ink        plate.Color = "black"
)

// Font sizes by label line count, in pixels at DefaultWidth.
const (
	FontLarge  = 10.0
	FontMedium = 8.0
	FontSmall  = 6.0
)

// FontSize picks the label size: one line is largest, two or three lines
// medium, four or more smallest. An empty label reports the medium size.
func FontSize(lines int) float64 {
	switch {
	case lines <= 0:
		return FontMedium
	case lines == 1:
		return FontLarge
	case lines <= 3:
		return FontMedium
	default:
		return FontSmall
	}
}

// WellShape is one circle of the scene in plot units (y grows upwards).
type WellShape struct {
	Well     plate.Well
	CX, CY   float64
	Radius   float64
	Fill     plate.Color
	Outline  plate.Color
	Lines    []string
	FontSize float64
}

// Label returns the lines joined by LabelSeparator.
func (s WellShape) Label() string {
	return strings.Join(s.Lines, LabelSeparator)
}

// Scene is everything needed to draw a plate.
type Scene struct {
	Rows, Cols int
	Width      int
	Height     int
	Background plate.Color
	Wells      []WellShape
}

// Build lays out p on a canvas DefaultWidth pixels wide.
func Build(p *plate.Plate) Scene {
	return BuildWidth(p, DefaultWidth)
}

// BuildWidth lays out p on a canvas width pixels wide. The height keeps the
// rows/cols aspect so wells stay circular.
func BuildWidth(p *plate.Plate, width int) Scene {
	f := p.Format()
	if width <= 0 {
		width = DefaultWidth
	}
	s := Scene{
		Rows:       f.Rows,
		Cols:       f.Cols,
		Width:      width,
		Height:     int(math.Round(float64(width) * float64(f.Rows) / float64(f.Cols))),
		Background: Background,
		Wells:      make([]WellShape, 0, f.Wells()),
	}
	p.Each(func(w plate.Well, st plate.WellState) {
		s.Wells = append(s.Wells, WellShape{
			Well:     w,
			CX:       float64(w.Col + 1),
			CY:       float64(f.Rows - w.Row),
			Radius:   0.5 - WellPadding,
			Fill:     st.Color,
			Outline:  Outline,
			Lines:    st.Compounds,
			FontSize: FontSize(len(st.Compounds)),
		})
	})
	return s
}

// Scale is the number of pixels per plot unit. The plot spans
// [0, Cols+1] x [0, Rows+1] with equal aspect.
func (s Scene) Scale() float64 {
	return ScaleFor(float64(s.Width), float64(s.Height), s.Rows, s.Cols)
}

// ScaleFor is Scale for an arbitrary pixel area.
func ScaleFor(width, height float64, rows, cols int) float64 {
	if rows <= 0 || cols <= 0 {
		return 0
	}
	return math.Min(width/float64(cols+1), height/float64(rows+1))
}

// ToPixels maps plot coordinates to pixel coordinates with the origin at
// the top-left of the canvas.
func (s Scene) ToPixels(x, y float64) (float64, float64) {
	return Project(float64(s.Width), float64(s.Height), s.Rows, s.Cols, x, y)
}

// Project maps plot coordinates into a width x height pixel area, centering
// the plot when the area's aspect differs from the plate's.
func Project(width, height float64, rows, cols int, x, y float64) (float64, float64) {
	scale := ScaleFor(width, height, rows, cols)
	offX := (width - scale*float64(cols+1)) / 2
	offY := (height - scale*float64(rows+1)) / 2
	return offX + x*scale, offY + (float64(rows+1)-y)*scale
}

// FontScale converts the nominal font sizes to this canvas.
func (s Scene) FontScale() float64 {
	return float64(s.Width) / DefaultWidth
}

// WellAt returns the well whose circle contains the pixel (px, py) in a
// width x height area, if any.
func WellAt(width, height float64, rows, cols int, px, py float64) (plate.Well, bool) {
	scale := ScaleFor(width, height, rows, cols)
	if scale <= 0 {
		return plate.Well{}, false
	}
	offX := (width - scale*float64(cols+1)) / 2
	offY := (height - scale*float64(rows+1)) / 2
	x := (px - offX) / scale
	y := float64(rows+1) - (py-offY)/scale

	col := int(math.Round(x)) - 1
	row := rows - int(math.Round(y))
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return plate.Well{}, false
	}
	dx := x - float64(col+1)
	dy := y - float64(rows-row)
	r := 0.5 - WellPadding
	if dx*dx+dy*dy > r*r {
		return plate.Well{}, false
	}
	return plate.Well{Row: row, Col: col}, true
}
