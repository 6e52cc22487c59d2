package window

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/platemapper/internal/config"
	"github.com/PixPMusic/platemapper/internal/library"
	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/PixPMusic/platemapper/internal/midi"
	"github.com/PixPMusic/platemapper/internal/plate"
)

// Options carries the services the window works with. Library and
// MIDIManager may be nil; the matching tabs are then disabled.
type Options struct {
	Config      *config.Config
	Logger      logging.Logger
	Library     *library.Store
	MIDIManager *midi.Manager
	OnSave      func()
}

// MainWindow manages the main application window
type MainWindow struct {
	window      fyne.Window
	app         fyne.App
	cfg         *config.Config
	log         logging.Logger
	library     *library.Store
	midiManager *midi.Manager
	onSave      func()

	plate *plate.Plate
	mode  plate.SelectionMode
	fill  plate.Color

	// Plate controls
	formatSelect    *widget.Select
	compoundEntries [plate.MaxCompounds]*widget.Entry
	modeRadio       *widget.RadioGroup
	wellChecks      *widget.CheckGroup
	rowChecks       *widget.CheckGroup
	colChecks       *widget.CheckGroup
	selectionArea   *fyne.Container
	compoundChecks  *widget.CheckGroup
	noteEntry       *widget.Entry
	swatch          *colorSwatch
	view            *plateView
	inspector       *widget.Label
	status          *widget.Label

	// Library tab state
	layoutList     *widget.List
	layouts        []library.Entry
	selectedLayout int
	layoutName     *widget.Entry

	// Devices tab state
	deviceList *widget.List
	mirror     *midi.Mirror
	surfaces   []*midi.Surface
}

// NewMainWindow creates the main application window
func NewMainWindow(app fyne.App, opts Options) *MainWindow {
	win := app.NewWindow("Plate Mapper")

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{
			DefaultFormat: plate.DefaultFormat().Name,
			DefaultColor:  string(plate.DefaultFill),
			Devices:       []config.DeviceConfig{},
		}
	}

	mw := &MainWindow{
		window:         win,
		app:            app,
		cfg:            cfg,
		log:            log.Named("window"),
		library:        opts.Library,
		midiManager:    opts.MIDIManager,
		onSave:         opts.OnSave,
		plate:          plate.New(cfg.Format()),
		mode:           plate.SingleWells,
		fill:           plate.Color(cfg.DefaultColor),
		selectedLayout: -1,
		mirror:         midi.NewMirror(),
	}
	if _, err := mw.fill.NRGBA(); err != nil {
		mw.fill = plate.DefaultFill
	}

	mw.setupUI()

	win.Resize(fyne.NewSize(1100, 720))
	win.CenterOnScreen()

	win.SetCloseIntercept(func() {
		win.Hide()
	})

	return mw
}

func (mw *MainWindow) setupUI() {
	plateTab := container.NewTabItem("Plate", mw.createPlateTab())
	libraryTab := container.NewTabItem("Library", mw.createLibraryTab())
	devicesTab := container.NewTabItem("Devices", mw.createDevicesTab())

	tabs := container.NewAppTabs(plateTab, libraryTab, devicesTab)
	tabs.SetTabLocation(container.TabLocationTop)
	if mw.library == nil {
		tabs.DisableItem(libraryTab)
	}
	if mw.midiManager == nil {
		tabs.DisableItem(devicesTab)
	}
	tabs.OnSelected = func(item *container.TabItem) {
		if item == libraryTab {
			mw.reloadLayouts()
		}
	}

	mw.window.SetMainMenu(mw.createMainMenu())
	mw.window.SetContent(tabs)
}

// Show brings the window to the front
func (mw *MainWindow) Show() {
	mw.window.Show()
	mw.window.RequestFocus()
}

// Window exposes the underlying fyne window.
func (mw *MainWindow) Window() fyne.Window {
	return mw.window
}

// Plate returns the plate being edited.
func (mw *MainWindow) Plate() *plate.Plate {
	return mw.plate
}

// selection collects the current selection from the check groups.
func (mw *MainWindow) selection() plate.Selection {
	s := plate.Selection{
		Mode:  mw.mode,
		Wells: append([]string(nil), mw.wellChecks.Selected...),
		Rows:  append([]string(nil), mw.rowChecks.Selected...),
	}
	for _, c := range mw.colChecks.Selected {
		if n, err := strconv.Atoi(c); err == nil {
			s.Columns = append(s.Columns, n)
		}
	}
	return s
}

// selectedWells resolves the selection to the wells it covers.
func (mw *MainWindow) selectedWells() map[plate.Well]bool {
	wells := mw.selection().Resolve(mw.plate.Format())
	set := make(map[plate.Well]bool, len(wells))
	for _, w := range wells {
		set[w] = true
	}
	return set
}

// refresh redraws the plate and pushes the new state to attached Launchpads.
func (mw *MainWindow) refresh() {
	mw.view.setSelected(mw.selectedWells())
	mw.view.Refresh()
	mw.syncSurfaces()
}

func (mw *MainWindow) setStatus(format string, args ...interface{}) {
	mw.status.SetText(fmt.Sprintf(format, args...))
}

// showError logs err and reports it in a dialog.
func (mw *MainWindow) showError(msg string, err error) {
	mw.log.Error(msg, logging.Err(err))
	dialog.ShowError(fmt.Errorf("%s: %w", msg, err), mw.window)
}

// loadPlate replaces the edited plate, e.g. after opening a file.
func (mw *MainWindow) loadPlate(p *plate.Plate) {
	mw.plate = p
	mw.view.setPlate(p)
	names := p.CompoundNames()
	for i, e := range mw.compoundEntries {
		e.SetText(names[i])
	}
	mw.formatSelect.SetSelected(p.Format().Name)
	mw.resetSelectionOptions()
	mw.refreshCompoundChoices()
	mw.mirror.Fit(p.Format())
	mw.refresh()
}

// ClearPlate resets every well, as the "Clear Entire Plate" button does.
func (mw *MainWindow) ClearPlate() {
	mw.clearPlate()
}
