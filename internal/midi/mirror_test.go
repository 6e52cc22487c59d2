package midi

import (
	"image/color"
	"testing"

	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/PixPMusic/platemapper/internal/plate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var fullWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func TestMirrorPaging(t *testing.T) {
	m := NewMirror()
	f := plate.Format96

	assert.False(t, m.PageLeft(f))
	assert.True(t, m.PageRight(f))
	assert.Equal(t, 4, m.Offset())
	assert.False(t, m.PageRight(f))
	assert.True(t, m.PageLeft(f))
	assert.Equal(t, 0, m.Offset())

	// Narrow plates never page.
	assert.False(t, m.PageRight(plate.Format24))

	m.PageRight(f)
	m.Fit(plate.Format48)
	assert.Equal(t, 0, m.Offset())
}

func TestMirrorPress(t *testing.T) {
	m := NewMirror()
	f := plate.Format96

	kind, w := m.Press(f, 1, 0)
	assert.Equal(t, PressWell, kind)
	assert.Equal(t, plate.Well{Row: 0, Col: 0}, w)

	kind, _ = m.Press(f, 0, PageRightCol)
	assert.Equal(t, PressPaged, kind)

	kind, w = m.Press(f, 8, 7)
	assert.Equal(t, PressWell, kind)
	assert.Equal(t, "H12", w.String())

	kind, _ = m.Press(f, 3, 8)
	assert.Equal(t, PressIgnored, kind)
	kind, _ = m.Press(f, 0, 5)
	assert.Equal(t, PressIgnored, kind)

	// Pads outside a small plate do nothing.
	kind, _ = m.Press(plate.Format6, 3, 0)
	assert.Equal(t, PressIgnored, kind)
}

func TestMirrorFrame(t *testing.T) {
	p := plate.New(plate.Format96)
	p.Apply([]plate.Well{{Row: 0, Col: 0}}, []string{"DMSO"}, "#ff0000", "")
	p.Apply([]plate.Well{{Row: 0, Col: 1}}, []string{"DMSO"}, plate.White, "")
	selected := map[plate.Well]bool{{Row: 1, Col: 0}: true}

	m := NewMirror()
	frame := m.Frame(p, selected, "#00ff00")

	assert.Equal(t, PadColor{R: 127}, frame[1][0])
	assert.Equal(t, PadColor{R: 127, G: 127, B: 127}, frame[1][1])
	assert.Equal(t, PadColor{G: 127}, frame[2][0])
	assert.Equal(t, Off, frame[1][2])
	assert.Equal(t, Off, frame[1][8])
	assert.Equal(t, Off, frame[0][PageLeftCol])
	assert.Equal(t, pagerLit, frame[0][PageRightCol])

	m.PageRight(p.Format())
	frame = m.Frame(p, selected, "#00ff00")
	assert.Equal(t, Off, frame[1][0])
	assert.Equal(t, pagerLit, frame[0][PageLeftCol])
	assert.Equal(t, Off, frame[0][PageRightCol])

	small := plate.New(plate.Format6)
	frame = NewMirror().Frame(small, nil, plate.DefaultFill)
	assert.Equal(t, Frame{}, frame)
}

func TestSurfaceShowSendsChangedPads(t *testing.T) {
	rec := &recorder{}
	s := newSurface("S", &ClassicDevice{}, rec.send, nopLog())

	var frame Frame
	require.NoError(t, s.Show(frame))
	assert.Len(t, rec.msgs, GridSize*GridSize-1)

	rec.msgs = nil
	frame[2][5] = PadColor{G: 127}
	require.NoError(t, s.Show(frame))
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, midi.NoteOn(0, 21, 0x3C), rec.msgs[0])

	rec.msgs = nil
	require.NoError(t, s.Show(frame))
	assert.Empty(t, rec.msgs)
}

func TestSurfaceShowWholeFrame(t *testing.T) {
	rec := &recorder{}
	s := newSurface("Mini", &ColorfulDevice{}, rec.send, nopLog())

	var frame Frame
	require.NoError(t, s.Show(frame))
	require.NoError(t, s.Show(frame))
	assert.Len(t, rec.msgs, 1)

	require.NoError(t, s.Close())
	assert.Len(t, rec.msgs, 2)
}

func TestSurfaceHandle(t *testing.T) {
	s := newSurface("S", &ClassicDevice{}, nil, nopLog())
	var got []int
	cb := func(row, col int, on bool) {
		if on {
			got = append(got, row, col)
		}
	}
	s.handle(midi.NoteOn(0, 16, 127), cb)
	s.handle(midi.ControlChange(0, 1, 127), cb)
	assert.Equal(t, []int{2, 0}, got)

	// No output port: frames are dropped silently.
	assert.NoError(t, s.Show(Frame{}))
	assert.NoError(t, s.Close())
}

func TestAttachMissingInputLeavesOutputAlone(t *testing.T) {
	m := NewManager(nopLog())
	outLooked := false
	m.findIn = func(string) drivers.In { return nil }
	m.findOut = func(string) drivers.Out {
		outLooked = true
		return nil
	}

	_, err := m.Attach(Port{Name: "S", InPort: "gone", OutPort: "LP out", Type: DeviceTypeClassic}, nil)
	assert.ErrorIs(t, err, ErrPortNotFound)
	assert.Contains(t, err.Error(), "input")
	assert.False(t, outLooked)
}

func nopLog() logging.Logger { return logging.Nop() }
