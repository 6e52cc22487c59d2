package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/PixPMusic/platemapper/internal/plate"
)

const labelFontFamily = "Times New Roman, serif"

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// WriteSVG draws the scene as an SVG document.
func WriteSVG(w io.Writer, s Scene) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, "fill:"+hex(s.Background))

	scale := s.Scale()
	fontScale := s.FontScale()
	for _, shape := range s.Wells {
		px, py := s.ToPixels(shape.CX, shape.CY)
		cx, cy := int(math.Round(px)), int(math.Round(py))
		r := int(math.Round(shape.Radius * scale))
		canvas.Circle(cx, cy, r, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", hex(shape.Fill), hex(shape.Outline)))

		if len(shape.Lines) == 0 {
			continue
		}
		size := shape.FontSize * fontScale
		style := fmt.Sprintf("text-anchor:middle;dominant-baseline:central;font-family:%s;font-size:%.1fpx;fill:%s",
			labelFontFamily, size, hex(Ink))
		for i, y := range lineOffsets(len(shape.Lines), size) {
			canvas.Text(cx, int(math.Round(py+y)), shape.Lines[i], style)
		}
	}
	canvas.End()
	return ew.err
}

// lineOffsets returns the vertical centre of each label line relative to
// the circle centre, stacking lines symmetrically.
func lineOffsets(n int, size float64) []float64 {
	lineHeight := size * 1.2
	offsets := make([]float64, n)
	top := -lineHeight * float64(n-1) / 2
	for i := range offsets {
		offsets[i] = top + float64(i)*lineHeight
	}
	return offsets
}

func hex(c plate.Color) string {
	return string(plate.ColorOf(c.MustNRGBA()))
}
