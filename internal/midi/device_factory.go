package midi

import "fmt"

// GetDevice returns the appropriate Device implementation for the given type
func GetDevice(deviceType DeviceType) (Device, error) {
	switch deviceType {
	case DeviceTypeClassic:
		return &ClassicDevice{}, nil
	case DeviceTypeColorful:
		return &ColorfulDevice{}, nil
	default:
		return nil, fmt.Errorf("unsupported device type %q", deviceType)
	}
}
