package tray

import (
	"bytes"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/PixPMusic/platemapper/internal/plate"
	"github.com/PixPMusic/platemapper/internal/render"
)

// iconWidth is the tray icon size in pixels.
const iconWidth = 64

// Callbacks for tray menu actions
type Callbacks struct {
	OnOpen  func()
	OnClear func()
	OnQuit  func()
}

// Icon renders a small 6-well plate with a few filled wells.
func Icon() (fyne.Resource, error) {
	p := plate.New(plate.Format6)
	p.Apply([]plate.Well{{Row: 0, Col: 0}, {Row: 1, Col: 1}}, nil, plate.DefaultFill, "")
	p.Apply([]plate.Well{{Row: 0, Col: 2}}, nil, "#7FB3D5", "")

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, render.BuildWidth(p, iconWidth)); err != nil {
		return nil, fmt.Errorf("render tray icon: %w", err)
	}
	return fyne.NewStaticResource("icon.png", buf.Bytes()), nil
}

// Menu builds the tray menu.
func Menu(callbacks Callbacks) *fyne.Menu {
	call := func(fn func()) func() {
		return func() {
			if fn != nil {
				fn()
			}
		}
	}
	return fyne.NewMenu("Plate Mapper",
		fyne.NewMenuItem("Open Plate Mapper", call(callbacks.OnOpen)),
		fyne.NewMenuItem("Clear Entire Plate", call(callbacks.OnClear)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", call(callbacks.OnQuit)),
	)
}

// Setup initializes the system tray using Fyne's built-in support. It
// reports whether the app supports a tray.
func Setup(app fyne.App, callbacks Callbacks) (bool, error) {
	desk, ok := app.(desktop.App)
	if !ok {
		return false, nil
	}
	desk.SetSystemTrayMenu(Menu(callbacks))

	icon, err := Icon()
	if err != nil {
		return true, err
	}
	desk.SetSystemTrayIcon(icon)
	return true, nil
}
