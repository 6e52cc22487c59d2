package plate

import (
	"fmt"
	"strings"
)

// Snapshot is the serialisable form of a plate. Only wells that differ
// from the defaults are listed.
type Snapshot struct {
	Format    string       `json:"format"`
	Compounds []string     `json:"compounds"`
	Wells     []WellRecord `json:"wells"`
}

// WellRecord is one non-default well in a Snapshot.
type WellRecord struct {
	Well      string   `json:"well"`
	Compounds []string `json:"compounds,omitempty"`
	Color     Color    `json:"color"`
	Note      string   `json:"note,omitempty"`
}

// Snapshot captures the current state.
func (p *Plate) Snapshot() Snapshot {
	names := p.names
	s := Snapshot{
		Format:    p.format.Name,
		Compounds: append([]string(nil), names[:]...),
		Wells:     []WellRecord{},
	}
	p.Each(func(w Well, st WellState) {
		if st.IsDefault() {
			return
		}
		s.Wells = append(s.Wells, WellRecord{
			Well:      w.String(),
			Compounds: st.Compounds,
			Color:     st.Color,
			Note:      st.Note,
		})
	})
	return s
}

// Restore builds a plate from a snapshot. Unknown formats, unresolvable
// colors and wells that are malformed or off the plate are errors. Blank
// compound entries are dropped.
func Restore(s Snapshot) (*Plate, error) {
	f, err := FormatByName(s.Format)
	if err != nil {
		return nil, err
	}
	p := New(f)
	p.SetCompoundNames(CompoundListOf(s.Compounds...))
	for _, rec := range s.Wells {
		w, err := ParseWell(rec.Well)
		if err != nil {
			return nil, err
		}
		if !f.Contains(w) {
			return nil, fmt.Errorf("%w: %s is not on a %s plate", ErrInvalidWell, rec.Well, f.Name)
		}
		fill := rec.Color
		if fill == "" {
			fill = White
		}
		if _, err := fill.NRGBA(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidColor, rec.Well, err)
		}
		p.Apply([]Well{w}, nonBlank(rec.Compounds), fill, rec.Note)
	}
	return p, nil
}

func nonBlank(names []string) []string {
	var out []string
	for _, n := range names {
		if strings.TrimSpace(n) != "" {
			out = append(out, n)
		}
	}
	return out
}
