package plate

import "fmt"

// SelectionMode chooses how a selection is expressed.
type SelectionMode int

const (
	SingleWells SelectionMode = iota
	EntireRows
	EntireColumns
)

var selectionModeNames = []string{"Single Wells", "Entire Rows", "Entire Columns"}

func (m SelectionMode) String() string {
	if m < 0 || int(m) >= len(selectionModeNames) {
		return fmt.Sprintf("SelectionMode(%d)", int(m))
	}
	return selectionModeNames[m]
}

// SelectionModeNames lists the modes in display order.
func SelectionModeNames() []string {
	out := make([]string, len(selectionModeNames))
	copy(out, selectionModeNames)
	return out
}

// ParseSelectionMode is the inverse of SelectionMode.String.
func ParseSelectionMode(s string) (SelectionMode, bool) {
	for i, name := range selectionModeNames {
		if name == s {
			return SelectionMode(i), true
		}
	}
	return SingleWells, false
}

// Selection is the user's pick in each mode; only the active mode's field
// contributes to Resolve.
type Selection struct {
	Mode    SelectionMode
	Wells   []string
	Rows    []string
	Columns []int
}

// Resolve expands the selection to wells on a plate of format f. Rows are
// expanded across every column and columns across every row. Unparseable
// well identifiers and unknown row letters are dropped; wells that fall off
// the plate are kept here and skipped later by Plate.Apply.
func (s Selection) Resolve(f Format) []Well {
	switch s.Mode {
	case EntireRows:
		return rowWells(f, s.Rows)
	case EntireColumns:
		return columnWells(f, s.Columns)
	default:
		return explicitWells(s.Wells)
	}
}

func explicitWells(ids []string) []Well {
	wells := make([]Well, 0, len(ids))
	for _, id := range ids {
		w, err := ParseWell(id)
		if err != nil {
			continue
		}
		wells = append(wells, w)
	}
	return wells
}

func rowWells(f Format, rows []string) []Well {
	wells := make([]Well, 0, len(rows)*f.Cols)
	for _, label := range rows {
		r, ok := RowIndex(label)
		if !ok {
			continue
		}
		for c := 0; c < f.Cols; c++ {
			wells = append(wells, Well{Row: r, Col: c})
		}
	}
	return wells
}

func columnWells(f Format, cols []int) []Well {
	wells := make([]Well, 0, len(cols)*f.Rows)
	for r := 0; r < f.Rows; r++ {
		for _, c := range cols {
			wells = append(wells, Well{Row: r, Col: c - 1})
		}
	}
	return wells
}
