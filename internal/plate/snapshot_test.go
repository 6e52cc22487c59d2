package plate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore(t *testing.T) {
	p := New(Format48)
	p.SetCompoundNames(CompoundListOf("DMSO", "Taxol", "", "Cisplatin"))
	p.Apply([]Well{{Row: 0, Col: 0}, {Row: 5, Col: 7}}, []string{"DMSO", "Taxol"}, "#AABBCC", "control")
	p.Apply([]Well{{Row: 2, Col: 3}}, nil, "red", "")

	s := p.Snapshot()
	assert.Equal(t, "48-well", s.Format)
	assert.Equal(t, []string{"DMSO", "Taxol", "", "Cisplatin"}, s.Compounds)
	require.Len(t, s.Wells, 3)
	assert.Equal(t, "A1", s.Wells[0].Well)
	assert.Equal(t, "C4", s.Wells[1].Well)
	assert.Equal(t, "F8", s.Wells[2].Well)

	q, err := Restore(s)
	require.NoError(t, err)
	assert.Equal(t, s, q.Snapshot())
	assert.Equal(t, p.CompoundNames(), q.CompoundNames())
}

func TestRestoreRejectsBadInput(t *testing.T) {
	_, err := Restore(Snapshot{Format: "1536-well"})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Restore(Snapshot{Format: "6-well", Wells: []WellRecord{{Well: "Z9"}}})
	assert.ErrorIs(t, err, ErrInvalidWell)

	_, err = Restore(Snapshot{Format: "6-well", Wells: []WellRecord{{Well: "?"}}})
	assert.ErrorIs(t, err, ErrInvalidWell)
}

func TestRestoreDefaultsMissingColor(t *testing.T) {
	p, err := Restore(Snapshot{Format: "6-well", Wells: []WellRecord{{Well: "A1", Compounds: []string{"X"}}}})
	require.NoError(t, err)
	assert.Equal(t, White, p.At(Well{}).Color)
	assert.Equal(t, []string{"X"}, p.At(Well{}).Compounds)
}

func TestRestoreRejectsUnknownColor(t *testing.T) {
	_, err := Restore(Snapshot{Format: "6-well", Wells: []WellRecord{{Well: "A1", Color: "banana"}}})
	assert.ErrorIs(t, err, ErrInvalidColor)

	p, err := Restore(Snapshot{Format: "6-well", Wells: []WellRecord{{Well: "A1", Color: "salmon"}}})
	require.NoError(t, err)
	assert.Equal(t, Color("salmon"), p.At(Well{}).Color)
}

func TestRestoreDropsBlankCompounds(t *testing.T) {
	p, err := Restore(Snapshot{Format: "6-well", Wells: []WellRecord{
		{Well: "A1", Compounds: []string{"", " "}, Color: "red"},
		{Well: "A2", Compounds: []string{"", "DMSO"}, Color: "red"},
	}})
	require.NoError(t, err)
	assert.Empty(t, p.At(Well{Row: 0, Col: 0}).Compounds)
	assert.Equal(t, []string{"DMSO"}, p.At(Well{Row: 0, Col: 1}).Compounds)
}
