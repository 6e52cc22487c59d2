package plate

// WellState is the content of one well across the three tables.
type WellState struct {
	Compounds []string
	Color     Color
	Note      string
}

// IsDefault reports whether the well holds nothing but the default values.
func (s WellState) IsDefault() bool {
	return len(s.Compounds) == 0 && s.Color == White && s.Note == ""
}

// Plate is the session state of one plate: its format, the compound names
// the user has defined and three tables (compounds, color, note) shaped
// Rows x Cols. Only Apply, Clear and SetFormat mutate the tables.
type Plate struct {
	format    Format
	names     CompoundList
	compounds [][][]string
	colors    [][]Color
	notes     [][]string
}

// New creates an empty plate of the given format.
func New(f Format) *Plate {
	p := &Plate{}
	p.SetFormat(f)
	return p
}

// Format returns the current plate format.
func (p *Plate) Format() Format {
	return p.format
}

// SetFormat switches the plate to f and rebuilds every table empty.
// Compound names survive the switch.
func (p *Plate) SetFormat(f Format) {
	p.format = f
	p.compounds = make([][][]string, f.Rows)
	p.colors = make([][]Color, f.Rows)
	p.notes = make([][]string, f.Rows)
	for r := 0; r < f.Rows; r++ {
		p.compounds[r] = make([][]string, f.Cols)
		p.colors[r] = make([]Color, f.Cols)
		p.notes[r] = make([]string, f.Cols)
	}
	p.Clear()
}

// CompoundNames returns the compound name slots.
func (p *Plate) CompoundNames() CompoundList {
	return p.names
}

// SetCompoundName sets slot i (0-based); out-of-range slots are ignored.
func (p *Plate) SetCompoundName(i int, name string) {
	if i < 0 || i >= MaxCompounds {
		return
	}
	p.names[i] = name
}

// SetCompoundNames replaces every slot.
func (p *Plate) SetCompoundNames(l CompoundList) {
	p.names = l
}

// Apply writes compounds, color and note into every selected well that lies
// on the plate. Wells off the plate are skipped. Previous values are
// overwritten, never merged. It returns the number of distinct wells written.
func (p *Plate) Apply(selection []Well, compounds []string, fill Color, note string) int {
	written := make(map[Well]struct{}, len(selection))
	for _, w := range selection {
		if !p.format.Contains(w) {
			continue
		}
		if _, dup := written[w]; dup {
			continue
		}
		var list []string
		if len(compounds) > 0 {
			list = make([]string, len(compounds))
			copy(list, compounds)
		}
		p.compounds[w.Row][w.Col] = list
		p.colors[w.Row][w.Col] = fill
		p.notes[w.Row][w.Col] = note
		written[w] = struct{}{}
	}
	return len(written)
}

// Clear resets every well to no compounds, white and no note.
func (p *Plate) Clear() {
	for r := 0; r < p.format.Rows; r++ {
		for c := 0; c < p.format.Cols; c++ {
			p.compounds[r][c] = nil
			p.colors[r][c] = White
			p.notes[r][c] = ""
		}
	}
}

// At returns the state of w. Wells off the plate report default values.
func (p *Plate) At(w Well) WellState {
	if !p.format.Contains(w) {
		return WellState{Color: White}
	}
	var list []string
	if src := p.compounds[w.Row][w.Col]; len(src) > 0 {
		list = make([]string, len(src))
		copy(list, src)
	}
	return WellState{
		Compounds: list,
		Color:     p.colors[w.Row][w.Col],
		Note:      p.notes[w.Row][w.Col],
	}
}

// Each visits every well in row-major order.
func (p *Plate) Each(fn func(w Well, s WellState)) {
	for _, w := range p.format.AllWells() {
		fn(w, p.At(w))
	}
}

// Assigned counts the wells that differ from the defaults.
func (p *Plate) Assigned() int {
	n := 0
	p.Each(func(_ Well, s WellState) {
		if !s.IsDefault() {
			n++
		}
	})
	return n
}
