// Package plate models a multi-well laboratory plate: its geometry, the
// per-well compound/color/note tables and the selections that target them.
package plate

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownFormat is returned when a plate format name is not recognised.
var ErrUnknownFormat = errors.New("unknown plate format")

// Format is a standard plate size expressed as a grid of rows and columns.
type Format struct {
	Name string
	Rows int
	Cols int
}

// Standard plate formats
var (
	Format6  = Format{Name: "6-well", Rows: 2, Cols: 3}
	Format12 = Format{Name: "12-well", Rows: 3, Cols: 4}
	Format24 = Format{Name: "24-well", Rows: 4, Cols: 6}
	Format48 = Format{Name: "48-well", Rows: 6, Cols: 8}
	Format96 = Format{Name: "96-well", Rows: 8, Cols: 12}
)

var formats = []Format{Format6, Format12, Format24, Format48, Format96}

// Formats returns the supported plate formats, smallest first.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// FormatNames returns the names of the supported formats, smallest first.
func FormatNames() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}
	return names
}

// DefaultFormat is the largest supported plate.
func DefaultFormat() Format {
	return Format96
}

// FormatByName looks up a format by its name ("96-well").
func FormatByName(name string) (Format, error) {
	for _, f := range formats {
		if f.Name == name {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Wells returns the number of wells on the plate.
func (f Format) Wells() int {
	return f.Rows * f.Cols
}

func (f Format) String() string {
	return f.Name
}

// RowLabels returns the row letters, "A" first.
func (f Format) RowLabels() []string {
	labels := make([]string, f.Rows)
	for i := range labels {
		labels[i] = rowLetter(i)
	}
	return labels
}

// ColumnLabels returns the column numbers 1..Cols.
func (f Format) ColumnLabels() []int {
	labels := make([]int, f.Cols)
	for i := range labels {
		labels[i] = i + 1
	}
	return labels
}

// ColumnLabelStrings is ColumnLabels formatted for pickers.
func (f Format) ColumnLabelStrings() []string {
	labels := make([]string, f.Cols)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return labels
}

// WellIDs lists every well identifier in row-major order (A1, A2, ... B1, ...).
func (f Format) WellIDs() []string {
	ids := make([]string, 0, f.Wells())
	for _, w := range f.AllWells() {
		ids = append(ids, w.String())
	}
	return ids
}

// AllWells lists every well in row-major order.
func (f Format) AllWells() []Well {
	wells := make([]Well, 0, f.Wells())
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			wells = append(wells, Well{Row: r, Col: c})
		}
	}
	return wells
}

// Contains reports whether w lies on the plate.
func (f Format) Contains(w Well) bool {
	return w.Row >= 0 && w.Row < f.Rows && w.Col >= 0 && w.Col < f.Cols
}
