package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/platemapper/internal/config"
)

// ============ DEVICES TAB ============

const noPort = "(None)"

var deviceTypeLabels = map[config.DeviceType]string{
	config.DeviceTypeClassic:  "Classic",
	config.DeviceTypeColorful: "Colorful",
}

func (mw *MainWindow) createDevicesTab() fyne.CanvasObject {
	devicesHeader := widget.NewLabel("Launchpads")
	devicesHeader.TextStyle = fyne.TextStyle{Bold: true}

	addBtn := widget.NewButtonWithIcon("Add Device", theme.ContentAddIcon(), func() {
		mw.addDevice()
	})

	devicesToolbar := container.NewBorder(nil, nil, devicesHeader, addBtn)

	headers := []string{"Name", "Input Port", "Output Port", "Type", ""}
	headerCells := make([]fyne.CanvasObject, len(headers))
	for i, h := range headers {
		l := widget.NewLabel(h)
		l.TextStyle = fyne.TextStyle{Bold: true}
		headerCells[i] = l
	}
	columnHeaders := container.NewGridWithColumns(len(headers), headerCells...)

	mw.deviceList = widget.NewList(
		func() int { return len(mw.cfg.Devices) },
		func() fyne.CanvasObject { return mw.createDeviceRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { mw.updateDeviceRow(id, obj) },
	)

	saveBtn := widget.NewButtonWithIcon("Save & Activate Devices", theme.DocumentSaveIcon(), func() {
		mw.saveAndActivate()
	})
	saveBtn.Importance = widget.HighImportance

	hint := widget.NewLabel("Pads mirror eight columns of the plate. The two leftmost top buttons page across wider plates.")
	hint.Wrapping = fyne.TextWrapWord

	actionsSection := container.NewVBox(
		widget.NewSeparator(),
		hint,
		container.NewHBox(saveBtn),
	)

	return container.NewBorder(
		container.NewVBox(devicesToolbar, widget.NewSeparator(), columnHeaders),
		actionsSection,
		nil, nil,
		mw.deviceList,
	)
}

func (mw *MainWindow) createDeviceRow() fyne.CanvasObject {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Device Name")

	inPortSelect := widget.NewSelect([]string{}, nil)
	inPortSelect.PlaceHolder = "Select..."

	outPortSelect := widget.NewSelect([]string{}, nil)
	outPortSelect.PlaceHolder = "Select..."

	typeSelect := widget.NewSelect([]string{"Classic", "Colorful"}, nil)
	typeSelect.PlaceHolder = "Type"

	removeBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)

	return container.NewGridWithColumns(5,
		nameEntry, inPortSelect, outPortSelect, typeSelect,
		container.NewCenter(removeBtn),
	)
}

func (mw *MainWindow) listPorts() (ins, outs []string) {
	if mw.midiManager == nil {
		return nil, nil
	}
	return mw.midiManager.ListInPorts(), mw.midiManager.ListOutPorts()
}

func portOrNone(port string) string {
	if port == "" {
		return noPort
	}
	return port
}

func noneToEmpty(s string) string {
	if s == noPort {
		return ""
	}
	return s
}

func (mw *MainWindow) updateDeviceRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(mw.cfg.Devices) {
		return
	}

	device := &mw.cfg.Devices[id]
	grid := obj.(*fyne.Container)

	nameEntry := grid.Objects[0].(*widget.Entry)
	inPortSelect := grid.Objects[1].(*widget.Select)
	outPortSelect := grid.Objects[2].(*widget.Select)
	typeSelect := grid.Objects[3].(*widget.Select)
	removeBtn := grid.Objects[4].(*fyne.Container).Objects[0].(*widget.Button)

	// Detach callbacks while the row is repopulated.
	nameEntry.OnChanged = nil
	inPortSelect.OnChanged = nil
	outPortSelect.OnChanged = nil
	typeSelect.OnChanged = nil

	ins, outs := mw.listPorts()
	inPortSelect.Options = append([]string{noPort}, ins...)
	outPortSelect.Options = append([]string{noPort}, outs...)

	nameEntry.SetText(device.Name)
	inPortSelect.SetSelected(portOrNone(device.InPort))
	outPortSelect.SetSelected(portOrNone(device.OutPort))
	label, ok := deviceTypeLabels[device.Type]
	if !ok {
		label = deviceTypeLabels[config.DeviceTypeClassic]
	}
	typeSelect.SetSelected(label)

	nameEntry.OnChanged = func(s string) { device.Name = s }
	inPortSelect.OnChanged = func(s string) { device.InPort = noneToEmpty(s) }
	outPortSelect.OnChanged = func(s string) { device.OutPort = noneToEmpty(s) }
	typeSelect.OnChanged = func(s string) {
		for t, l := range deviceTypeLabels {
			if l == s {
				device.Type = t
			}
		}
	}

	deviceID := device.ID
	removeBtn.OnTapped = func() { mw.removeDevice(deviceID) }
}

func (mw *MainWindow) addDevice() {
	newDevice := config.NewDeviceConfig()
	mw.cfg.AddDevice(newDevice)
	mw.deviceList.Refresh()
}

func (mw *MainWindow) removeDevice(id string) {
	mw.cfg.RemoveDevice(id)
	mw.deviceList.Refresh()
}

func (mw *MainWindow) saveAndActivate() {
	if err := mw.cfg.Save(); err != nil {
		mw.showError("save config", err)
		return
	}

	mw.InitializeDevices()

	if mw.onSave != nil {
		mw.onSave()
	}
}
