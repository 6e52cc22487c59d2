package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// sysexHeader prefixes every Launchpad Mini Mk3 SysEx message.
var sysexHeader = []byte{0x00, 0x20, 0x29, 0x02, 0x0D}

const (
	sysexProgrammerMode = 0x0E
	sysexLEDColor       = 0x03

	ledStatic = 0x00
	ledRGB    = 0x03
)

// ColorfulDevice implements Device for Launchpad Mini Mk3
type ColorfulDevice struct{}

func sysex(command byte, body ...byte) midi.Message {
	content := make([]byte, 0, len(sysexHeader)+1+len(body))
	content = append(content, sysexHeader...)
	content = append(content, command)
	content = append(content, body...)
	return midi.SysEx(content)
}

func (d *ColorfulDevice) ActivateProgrammerMode(send func(midi.Message) error) error {
	if err := send(sysex(sysexProgrammerMode, 0x01)); err != nil {
		return fmt.Errorf("failed to send programmer mode message: %w", err)
	}
	return nil
}

// LEDIndex maps a grid position to the programmer-mode LED index: 91-99 on
// the top row, 11-19 on the bottom.
func LEDIndex(row, col int) uint8 {
	return uint8((8-row)*10 + col + 11)
}

// scaleColor squares each channel so mid-range colors stay distinct.
func scaleColor(value uint8) uint8 {
	if value == 0 {
		return 0
	}
	f := float64(value) / 127.0
	scaled := f * f * 127.0
	if scaled < 1 {
		scaled = 1
	}
	return uint8(scaled)
}

func rgbEntry(row, col int, color PadColor) []byte {
	return []byte{
		ledRGB,
		LEDIndex(row, col),
		scaleColor(color.R) & 0x7F,
		scaleColor(color.G) & 0x7F,
		scaleColor(color.B) & 0x7F,
	}
}

func (d *ColorfulDevice) SetPadColor(send func(midi.Message) error, row, col int, color PadColor) error {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return nil
	}
	return send(sysex(sysexLEDColor, rgbEntry(row, col, color)...))
}

// WriteFrame lights all 81 LEDs with one SysEx message.
func (d *ColorfulDevice) WriteFrame(send func(midi.Message) error, frame Frame) error {
	body := make([]byte, 0, GridSize*GridSize*5)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			body = append(body, rgbEntry(row, col, frame[row][col])...)
		}
	}
	return send(sysex(sysexLEDColor, body...))
}

func (d *ColorfulDevice) ClearAllPads(send func(midi.Message) error) error {
	body := make([]byte, 0, GridSize*GridSize*3)
	for i := 11; i <= 99; i++ {
		if i%10 >= 1 && i%10 <= 9 {
			body = append(body, ledStatic, uint8(i), 0x00)
		}
	}
	return send(sysex(sysexLEDColor, body...))
}

func (d *ColorfulDevice) HandleMessage(msg midi.Message) (row, col int, isNoteOn bool, handled bool) {
	var channel, key, velocity uint8

	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		if row, col, ok := d.noteToGrid(key); ok {
			return row, col, velocity > 0, true
		}

	case msg.GetNoteOff(&channel, &key, &velocity):
		if row, col, ok := d.noteToGrid(key); ok {
			return row, col, false, true
		}

	case msg.GetControlChange(&channel, &key, &velocity):
		// Top row 91-98, right column 19 (bottom) to 89 (top)
		if key >= 91 && key <= 98 {
			return 0, int(key - 91), velocity > 0, true
		}
		if key%10 == 9 && key >= 19 && key <= 89 {
			return 8 - int((key-19)/10), 8, velocity > 0, true
		}
	}

	return 0, 0, false, false
}

func (d *ColorfulDevice) noteToGrid(note uint8) (int, int, bool) {
	if note < 11 || note > 99 {
		return 0, 0, false
	}
	row := 8 - int((note-11)/10)
	col := int((note - 11) % 10)
	if row < 0 || row > 8 || col > 8 {
		return 0, 0, false
	}
	return row, col, true
}
