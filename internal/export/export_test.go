package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/platemapper/internal/plate"
)

func samplePlate() *plate.Plate {
	p := plate.New(plate.Format12)
	p.SetCompoundNames(plate.CompoundListOf("DMSO", "Taxol"))
	p.Apply([]plate.Well{{Row: 0, Col: 1}}, []string{"DMSO", "Taxol"}, "#F2D5DA", "10 uM, \"fresh\"")
	return p
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samplePlate()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+12)
	assert.Equal(t, []string{"well", "row", "column", "compounds", "color", "note"}, records[0])
	assert.Equal(t, []string{"A1", "A", "1", "", "white", ""}, records[1])
	assert.Equal(t, []string{"A2", "A", "2", "DMSO; Taxol", "#F2D5DA", "10 uM, \"fresh\""}, records[2])
	assert.Equal(t, "C4", records[12][0])
}

func TestLayoutEncodeDecode(t *testing.T) {
	p := samplePlate()
	var buf bytes.Buffer
	require.NoError(t, EncodeLayout(&buf, p))
	assert.True(t, strings.Contains(buf.String(), "\"format\": \"12-well\""))

	q, err := DecodeLayout(&buf)
	require.NoError(t, err)
	assert.Equal(t, p.Snapshot(), q.Snapshot())
}

func TestDecodeLayoutErrors(t *testing.T) {
	_, err := DecodeLayout(strings.NewReader("{not json"))
	assert.Error(t, err)

	_, err = DecodeLayout(strings.NewReader(`{"format":"7-well"}`))
	assert.ErrorIs(t, err, plate.ErrUnknownFormat)
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run1"+LayoutExtension)
	p := samplePlate()
	require.NoError(t, SaveFile(path, p))

	q, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, p.Snapshot(), q.Snapshot())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
