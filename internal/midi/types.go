package midi

import (
	"fmt"
	"image/color"
)

// DeviceType represents the type of device
type DeviceType string

const (
	DeviceTypeClassic  DeviceType = "classic"  // Launchpad S - no special programmer mode
	DeviceTypeColorful DeviceType = "colorful" // Launchpad Mini Mk3 - requires SysEx
)

// GridSize is the side of the addressable pad grid: the top button row and
// the right button column surround the 8x8 pads.
const GridSize = 9

// PadColor represents an RGB color for a pad
type PadColor struct {
	R, G, B uint8 // 0-127 for each channel
}

// Off is an unlit pad.
var Off = PadColor{}

// PadColorFrom scales an 8-bit color to the 7-bit range pads accept.
func PadColorFrom(c color.Color) PadColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return PadColor{R: n.R >> 1, G: n.G >> 1, B: n.B >> 1}
}

// IsOff reports whether the color is dark enough to leave the LED unlit.
func (c PadColor) IsOff() bool {
	return c.R < 5 && c.G < 5 && c.B < 5
}

// Frame holds a color for every pad, indexed [row][col] with row 0 at the top.
type Frame [GridSize][GridSize]PadColor

// ParseDeviceType validates a device type name.
func ParseDeviceType(s string) (DeviceType, error) {
	switch DeviceType(s) {
	case DeviceTypeClassic, DeviceTypeColorful:
		return DeviceType(s), nil
	default:
		return "", fmt.Errorf("unknown device type %q", s)
	}
}
