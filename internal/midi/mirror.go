package midi

import "github.com/PixPMusic/platemapper/internal/plate"

// Pads is the side of the square pad area below the top row.
const Pads = 8

// Paging buttons on the top row.
const (
	PageLeftCol  = 0
	PageRightCol = 1
)

// pagerLit marks a paging button that can move the window.
var pagerLit = PadColor{R: 20, G: 60, B: 20}

// PressKind says what a pad press did to the mirror.
type PressKind int

const (
	PressIgnored PressKind = iota
	PressWell
	PressPaged
)

// Mirror shows an 8x8 window of a plate on a pad grid. Plates wider than
// eight columns are paged with the two leftmost top-row buttons.
type Mirror struct {
	offset int
}

// NewMirror returns a mirror showing the leftmost columns.
func NewMirror() *Mirror {
	return &Mirror{}
}

// Offset is the plate column shown in the leftmost pad column.
func (m *Mirror) Offset() int {
	return m.offset
}

func maxOffset(f plate.Format) int {
	if f.Cols <= Pads {
		return 0
	}
	return f.Cols - Pads
}

// Fit clamps the offset after a format change.
func (m *Mirror) Fit(f plate.Format) {
	if m.offset > maxOffset(f) {
		m.offset = maxOffset(f)
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// PageRight moves the window right by a page. It reports whether the offset
// changed.
func (m *Mirror) PageRight(f plate.Format) bool {
	next := m.offset + Pads
	if next > maxOffset(f) {
		next = maxOffset(f)
	}
	changed := next != m.offset
	m.offset = next
	return changed
}

// PageLeft moves the window left by a page.
func (m *Mirror) PageLeft(f plate.Format) bool {
	m.Fit(f)
	next := m.offset - Pads
	if next < 0 {
		next = 0
	}
	changed := next != m.offset
	m.offset = next
	return changed
}

// WellAt maps a pad in rows 1-8, columns 0-7 to a plate well.
func (m *Mirror) WellAt(f plate.Format, row, col int) (plate.Well, bool) {
	if row < 1 || row > Pads || col < 0 || col >= Pads {
		return plate.Well{}, false
	}
	w := plate.Well{Row: row - 1, Col: col + m.offset}
	return w, f.Contains(w)
}

// Press interprets a pad press. Presses on wells return the well; the paging
// buttons move the window.
func (m *Mirror) Press(f plate.Format, row, col int) (PressKind, plate.Well) {
	if row == 0 {
		switch col {
		case PageLeftCol:
			if m.PageLeft(f) {
				return PressPaged, plate.Well{}
			}
		case PageRightCol:
			if m.PageRight(f) {
				return PressPaged, plate.Well{}
			}
		}
		return PressIgnored, plate.Well{}
	}
	if w, ok := m.WellAt(f, row, col); ok {
		return PressWell, w
	}
	return PressIgnored, plate.Well{}
}

// Frame renders the visible part of p. Wells in selected show pending instead
// of their stored color. Wells in their initial state stay dark.
func (m *Mirror) Frame(p *plate.Plate, selected map[plate.Well]bool, pending plate.Color) Frame {
	var frame Frame
	f := p.Format()

	if m.offset > 0 {
		frame[0][PageLeftCol] = pagerLit
	}
	if m.offset < maxOffset(f) {
		frame[0][PageRightCol] = pagerLit
	}

	for row := 1; row <= Pads; row++ {
		for col := 0; col < Pads; col++ {
			w, ok := m.WellAt(f, row, col)
			if !ok {
				continue
			}
			switch state := p.At(w); {
			case selected[w]:
				frame[row][col] = PadColorFrom(pending.MustNRGBA())
			case state.IsDefault():
				frame[row][col] = Off
			default:
				frame[row][col] = PadColorFrom(state.Color.MustNRGBA())
			}
		}
	}
	return frame
}
