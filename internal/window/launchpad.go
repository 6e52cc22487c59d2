package window

import (
	"fyne.io/fyne/v2"
	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/PixPMusic/platemapper/internal/midi"
)

// InitializeDevices attaches every configured Launchpad and shows the plate
// on it. Devices that fail to attach are logged and skipped.
func (mw *MainWindow) InitializeDevices() {
	if mw.midiManager == nil {
		return
	}
	mw.CloseDevices()

	for _, device := range mw.cfg.Devices {
		if device.InPort == "" && device.OutPort == "" {
			continue
		}
		port := midi.Port{
			Name:    device.Name,
			InPort:  device.InPort,
			OutPort: device.OutPort,
			Type:    midi.DeviceType(device.Type),
		}
		surface, err := mw.midiManager.Attach(port, func(row, col int, isNoteOn bool) {
			fyne.Do(func() { mw.handlePadPress(row, col, isNoteOn) })
		})
		if err != nil {
			mw.log.Warn("failed to attach launchpad", logging.String("device", device.Name), logging.Err(err))
			continue
		}
		mw.surfaces = append(mw.surfaces, surface)
	}
	mw.syncSurfaces()
}

// CloseDevices turns off and releases every attached Launchpad.
func (mw *MainWindow) CloseDevices() {
	for _, s := range mw.surfaces {
		if err := s.Close(); err != nil {
			mw.log.Warn("failed to close launchpad", logging.String("device", s.Name()), logging.Err(err))
		}
	}
	mw.surfaces = nil
}

// handlePadPress runs on the UI goroutine. Well pads toggle the well like a
// click on the plate; the paging buttons scroll the mirror.
func (mw *MainWindow) handlePadPress(row, col int, isNoteOn bool) {
	if !isNoteOn {
		return
	}
	kind, w := mw.mirror.Press(mw.plate.Format(), row, col)
	switch kind {
	case midi.PressWell:
		mw.onWellTapped(w)
	case midi.PressPaged:
		mw.log.Debug("launchpad paged", logging.Int("offset", mw.mirror.Offset()))
		mw.syncSurfaces()
	}
}

// syncSurfaces sends the current plate to every attached Launchpad.
func (mw *MainWindow) syncSurfaces() {
	if len(mw.surfaces) == 0 {
		return
	}
	frame := mw.mirror.Frame(mw.plate, mw.selectedWells(), mw.fill)
	for _, s := range mw.surfaces {
		if err := s.Show(frame); err != nil {
			mw.log.Warn("failed to update launchpad", logging.String("device", s.Name()), logging.Err(err))
		}
	}
}
