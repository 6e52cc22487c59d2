package plate

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatsGeometry(t *testing.T) {
	want := map[string]int{"6-well": 6, "12-well": 12, "24-well": 24, "48-well": 48, "96-well": 96}
	for _, f := range Formats() {
		assert.Equal(t, want[f.Name], f.Rows*f.Cols, f.Name)
		assert.Equal(t, f.Wells(), len(f.WellIDs()), f.Name)
		assert.Len(t, f.RowLabels(), f.Rows)
		assert.Len(t, f.ColumnLabels(), f.Cols)
	}

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H"}, Format96.RowLabels())
	assert.Equal(t, []int{1, 2, 3}, Format6.ColumnLabels())
	assert.Equal(t, []string{"A1", "A2", "A3", "B1", "B2", "B3"}, Format6.WellIDs())
	assert.Equal(t, Format96, DefaultFormat())
}

func TestFormatByName(t *testing.T) {
	f, err := FormatByName("24-well")
	require.NoError(t, err)
	assert.Equal(t, Format24, f)

	_, err = FormatByName("384-well")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseWell(t *testing.T) {
	w, err := ParseWell("B3")
	require.NoError(t, err)
	assert.Equal(t, Well{Row: 1, Col: 2}, w)
	assert.Equal(t, "B3", w.String())

	w, err = ParseWell("H12")
	require.NoError(t, err)
	assert.Equal(t, Well{Row: 7, Col: 11}, w)

	for _, bad := range []string{"", "A", "a1", "1A", "A0", "A-1", "A+2", "AB"} {
		_, err := ParseWell(bad)
		assert.ErrorIs(t, err, ErrInvalidWell, bad)
	}
}

func TestNewPlateIsEmpty(t *testing.T) {
	p := New(Format96)
	p.Each(func(w Well, s WellState) {
		assert.True(t, s.IsDefault(), w.String())
	})
	assert.Equal(t, 0, p.Assigned())
}

func TestApplySingleWell(t *testing.T) {
	p := New(Format96)
	b3 := Well{Row: 1, Col: 2}

	n := p.Apply([]Well{b3}, []string{"A", "B"}, "#123456", "dose 1")
	assert.Equal(t, 1, n)

	got := p.At(b3)
	assert.Equal(t, []string{"A", "B"}, got.Compounds)
	assert.Equal(t, Color("#123456"), got.Color)
	assert.Equal(t, "dose 1", got.Note)

	p.Each(func(w Well, s WellState) {
		if w == b3 {
			return
		}
		assert.True(t, s.IsDefault(), w.String())
	})
}

func TestApplyEmptySelectionIsNoop(t *testing.T) {
	p := New(Format24)
	p.Apply([]Well{{Row: 0, Col: 0}}, []string{"X"}, "red", "")
	before := p.Snapshot()

	assert.Equal(t, 0, p.Apply(nil, []string{"Y"}, "blue", "n"))
	assert.Equal(t, before, p.Snapshot())
}

func TestApplyOverwritesInsteadOfMerging(t *testing.T) {
	p := New(Format12)
	w := Well{Row: 2, Col: 3}
	p.Apply([]Well{w}, []string{"A", "B", "C"}, "red", "first")
	p.Apply([]Well{w}, []string{"D"}, "blue", "")

	got := p.At(w)
	assert.Equal(t, []string{"D"}, got.Compounds)
	assert.Equal(t, Color("blue"), got.Color)
	assert.Empty(t, got.Note)
}

func TestApplySkipsWellsOffThePlate(t *testing.T) {
	p := New(Format6)
	n := p.Apply([]Well{{Row: 7, Col: 11}, {Row: 0, Col: 3}, {Row: 1, Col: 1}}, []string{"A"}, "red", "")
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, p.Assigned())
}

func TestApplyCountsDistinctWells(t *testing.T) {
	p := New(Format6)
	sel := Selection{Mode: SingleWells, Wells: []string{"A1", "A1", "A01"}}.Resolve(Format6)
	n := p.Apply(sel, []string{"A"}, "red", "")
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, p.Assigned())
}

func TestApplyCopiesCompounds(t *testing.T) {
	p := New(Format6)
	names := []string{"A"}
	p.Apply([]Well{{}}, names, "red", "")
	names[0] = "mutated"
	assert.Equal(t, []string{"A"}, p.At(Well{}).Compounds)
}

func TestClearResetsEveryTable(t *testing.T) {
	p := New(Format96)
	all := Selection{Mode: EntireRows, Rows: Format96.RowLabels()}.Resolve(Format96)
	p.Apply(all, []string{"A", "B", "C", "D"}, "#000000", "note")
	require.Equal(t, 96, p.Assigned())

	p.Clear()
	p.Each(func(w Well, s WellState) {
		assert.Empty(t, s.Compounds, w.String())
		assert.Equal(t, White, s.Color, w.String())
		assert.Empty(t, s.Note, w.String())
	})
}

func TestSetFormatRebuildsTables(t *testing.T) {
	p := New(Format96)
	p.SetCompoundName(0, "DMSO")
	p.Apply([]Well{{Row: 7, Col: 11}}, []string{"DMSO"}, "red", "")

	p.SetFormat(Format6)
	assert.Equal(t, Format6, p.Format())
	assert.Equal(t, 0, p.Assigned())
	assert.Equal(t, WellState{Color: White}, p.At(Well{Row: 7, Col: 11}))
	assert.Equal(t, "DMSO", p.CompoundNames()[0])

	p.Each(func(w Well, s WellState) {
		assert.True(t, Format6.Contains(w))
	})
}

func TestCompoundChoicesSkipBlanks(t *testing.T) {
	l := CompoundListOf("DMSO", "", "  ", "Taxol")
	assert.Equal(t, []string{"DMSO", "Taxol"}, l.Choices())

	l = CompoundListOf("a", "b", "c", "d", "e")
	assert.Equal(t, []string{"a", "b", "c", "d"}, l.Choices())

	p := New(Format6)
	p.SetCompoundName(MaxCompounds, "ignored")
	assert.Empty(t, p.CompoundNames().Choices())
}

func TestColorParsing(t *testing.T) {
	c, err := White.NRGBA()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)

	c, err = DefaultFill.NRGBA()
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{0xF2, 0xD5, 0xDA}, [3]uint8{c.R, c.G, c.B})

	c, err = Color("#0f0").NRGBA()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.G)

	_, err = Color("#12345").NRGBA()
	assert.Error(t, err)
	_, err = Color("chartreuse-ish").NRGBA()
	assert.Error(t, err)

	assert.Equal(t, Color("#F2D5DA"), ColorOf(DefaultFill.MustNRGBA()))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, Color("nope").MustNRGBA())
}

func TestColorNames(t *testing.T) {
	for name, want := range map[Color]color.NRGBA{
		"lightblue": {R: 0xad, G: 0xd8, B: 0xe6, A: 0xff},
		"salmon":    {R: 0xfa, G: 0x80, B: 0x72, A: 0xff},
		"Lavender":  {R: 0xe6, G: 0xe6, B: 0xfa, A: 0xff},
		"magenta":   {R: 0xff, B: 0xff, A: 0xff},
		"grey":      {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	} {
		got, err := name.NRGBA()
		require.NoError(t, err, string(name))
		assert.Equal(t, want, got, string(name))
	}
}
