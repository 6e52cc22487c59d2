package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

type recorder struct {
	msgs []midi.Message
	err  error
}

func (r *recorder) send(msg midi.Message) error {
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func TestGetDevice(t *testing.T) {
	d, err := GetDevice(DeviceTypeClassic)
	require.NoError(t, err)
	assert.IsType(t, &ClassicDevice{}, d)

	d, err = GetDevice(DeviceTypeColorful)
	require.NoError(t, err)
	assert.IsType(t, &ColorfulDevice{}, d)

	_, err = GetDevice("generic")
	assert.Error(t, err)

	_, err = ParseDeviceType("colorful")
	assert.NoError(t, err)
	_, err = ParseDeviceType("pro")
	assert.Error(t, err)
}

func TestPadColorFrom(t *testing.T) {
	assert.Equal(t, PadColor{R: 127, G: 127, B: 127}, PadColorFrom(fullWhite))
	assert.True(t, Off.IsOff())
	assert.False(t, PadColor{G: 10}.IsOff())
}

func TestClassicVelocity(t *testing.T) {
	d := &ClassicDevice{}
	assert.Equal(t, uint8(0x0C), d.Velocity(Off))
	assert.Equal(t, uint8(0x0F), d.Velocity(PadColor{R: 127}))
	assert.Equal(t, uint8(0x3C), d.Velocity(PadColor{G: 127}))
	assert.Equal(t, uint8(0x3F), d.Velocity(PadColor{R: 127, G: 127, B: 127}))

	r, g := ClassicLevels(PadColor{B: 127})
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(2), g)
}

func TestClassicSetPadColor(t *testing.T) {
	d := &ClassicDevice{}
	rec := &recorder{}

	require.NoError(t, d.SetPadColor(rec.send, 0, 3, PadColor{R: 127}))
	require.NoError(t, d.SetPadColor(rec.send, 2, 5, PadColor{G: 127}))
	require.NoError(t, d.SetPadColor(rec.send, 0, 8, PadColor{G: 127}))
	require.NoError(t, d.SetPadColor(rec.send, 9, 0, PadColor{G: 127}))

	require.Len(t, rec.msgs, 2)
	assert.Equal(t, midi.ControlChange(0, 107, 0x0F), rec.msgs[0])
	assert.Equal(t, midi.NoteOn(0, 21, 0x3C), rec.msgs[1])
}

func TestClassicHandleMessage(t *testing.T) {
	d := &ClassicDevice{}

	row, col, on, ok := d.HandleMessage(midi.NoteOn(0, 21, 127))
	assert.True(t, ok)
	assert.True(t, on)
	assert.Equal(t, 2, row)
	assert.Equal(t, 5, col)

	row, col, on, ok = d.HandleMessage(midi.NoteOff(0, 8))
	assert.True(t, ok)
	assert.False(t, on)
	assert.Equal(t, 1, row)
	assert.Equal(t, 8, col)

	row, col, _, ok = d.HandleMessage(midi.ControlChange(0, 105, 127))
	assert.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 1, col)

	_, _, _, ok = d.HandleMessage(midi.NoteOn(0, 12, 127))
	assert.False(t, ok)
	_, _, _, ok = d.HandleMessage(midi.ControlChange(0, 7, 127))
	assert.False(t, ok)
}

func TestColorfulMessages(t *testing.T) {
	d := &ColorfulDevice{}
	rec := &recorder{}

	require.NoError(t, d.ActivateProgrammerMode(rec.send))
	require.NoError(t, d.SetPadColor(rec.send, 8, 0, PadColor{R: 127}))

	require.Len(t, rec.msgs, 2)
	assert.Equal(t, midi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0D, 0x0E, 0x01}), rec.msgs[0])
	assert.Equal(t, midi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0D, 0x03, 0x03, 11, 127, 0, 0}), rec.msgs[1])

	assert.Equal(t, uint8(99), LEDIndex(0, 8))
	assert.Equal(t, uint8(11), LEDIndex(8, 0))
	assert.Equal(t, uint8(0), scaleColor(0))
	assert.Equal(t, uint8(1), scaleColor(1))
	assert.Equal(t, uint8(127), scaleColor(127))
}

func TestColorfulWriteFrame(t *testing.T) {
	d := &ColorfulDevice{}
	rec := &recorder{}

	var frame Frame
	frame[1][0] = PadColor{G: 127}
	require.NoError(t, d.WriteFrame(rec.send, frame))
	require.Len(t, rec.msgs, 1)

	// header (5) + command (1) + 81 LEDs x 5 bytes, plus SysEx framing
	assert.Len(t, rec.msgs[0], 5+1+GridSize*GridSize*5+2)

	rec.err = errors.New("port closed")
	assert.Error(t, d.WriteFrame(rec.send, frame))
}

func TestColorfulHandleMessage(t *testing.T) {
	d := &ColorfulDevice{}

	row, col, on, ok := d.HandleMessage(midi.NoteOn(0, 81, 100))
	assert.True(t, ok)
	assert.True(t, on)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)

	row, col, _, ok = d.HandleMessage(midi.ControlChange(0, 92, 127))
	assert.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 1, col)

	row, col, _, ok = d.HandleMessage(midi.ControlChange(0, 19, 127))
	assert.True(t, ok)
	assert.Equal(t, 8, row)
	assert.Equal(t, 8, col)

	_, _, _, ok = d.HandleMessage(midi.NoteOn(0, 10, 100))
	assert.False(t, ok)
}
