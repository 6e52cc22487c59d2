package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// ClassicDevice implements Device for Launchpad S
type ClassicDevice struct{}

func (d *ClassicDevice) ActivateProgrammerMode(send func(midi.Message) error) error {
	// Send reset: B0 00 00 (CC 0 value 0)
	if err := send(midi.ControlChange(0, 0, 0)); err != nil {
		return fmt.Errorf("failed to reset Launchpad S: %w", err)
	}
	return nil
}

// padAddress returns the CC or note number for a grid position. The top-right
// corner has no button.
func (d *ClassicDevice) padAddress(row, col int) (number uint8, isCC, exists bool) {
	switch {
	case row < 0 || row >= GridSize || col < 0 || col >= GridSize:
		return 0, false, false
	case row == 0 && col == 8:
		return 0, false, false
	case row == 0:
		// Top row: CC 104-111
		return uint8(104 + col), true, true
	default:
		// Row 1 = notes 0-8, Row 2 = notes 16-24, etc.
		return uint8((row-1)*16 + col), false, true
	}
}

// Velocity encodes a color as Launchpad S velocity: bits 4-5 green, bits 0-1
// red, bits 2-3 the copy and clear flags. Blue has no LED and is folded
// mostly into green.
func (d *ClassicDevice) Velocity(color PadColor) uint8 {
	if color.IsOff() {
		return 0x0C
	}
	red, green := ClassicLevels(color)
	return (green << 4) | 0x0C | red
}

// ClassicLevels reduces a color to the Launchpad S red and green intensities (0-3).
func ClassicLevels(color PadColor) (red, green uint8) {
	effectiveR := int(color.R) + int(color.B)/4
	effectiveG := int(color.G) + (int(color.B)*3)/4
	if effectiveR > 127 {
		effectiveR = 127
	}
	if effectiveG > 127 {
		effectiveG = 127
	}
	return colorTo4Level(uint8(effectiveR)), colorTo4Level(uint8(effectiveG))
}

// colorTo4Level converts 0-127 color value to 0-3 intensity for Launchpad S
func colorTo4Level(value uint8) uint8 {
	switch {
	case value < 32:
		return 0
	case value < 64:
		return 1
	case value < 96:
		return 2
	default:
		return 3
	}
}

func (d *ClassicDevice) SetPadColor(send func(midi.Message) error, row, col int, color PadColor) error {
	number, isCC, ok := d.padAddress(row, col)
	if !ok {
		return nil
	}
	velocity := d.Velocity(color)
	if isCC {
		return send(midi.ControlChange(0, number, velocity))
	}
	return send(midi.NoteOn(0, number, velocity))
}

func (d *ClassicDevice) ClearAllPads(send func(midi.Message) error) error {
	return send(midi.ControlChange(0, 0, 0))
}

func (d *ClassicDevice) HandleMessage(msg midi.Message) (row, col int, isNoteOn bool, handled bool) {
	var channel, key, velocity uint8

	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		row, col = int(key/16)+1, int(key%16)
		if row <= 8 && col <= 8 {
			return row, col, velocity > 0, true
		}

	case msg.GetNoteOff(&channel, &key, &velocity):
		row, col = int(key/16)+1, int(key%16)
		if row <= 8 && col <= 8 {
			return row, col, false, true
		}

	case msg.GetControlChange(&channel, &key, &velocity):
		if key >= 104 && key <= 111 {
			return 0, int(key - 104), velocity > 0, true
		}
	}

	return 0, 0, false, false
}
