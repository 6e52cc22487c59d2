package window

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/PixPMusic/platemapper/internal/plate"
)

// ============ PLATE TAB ============

func (mw *MainWindow) createPlateTab() fyne.CanvasObject {
	mw.view = newPlateView(mw.plate, mw.onWellTapped)

	mw.formatSelect = widget.NewSelect(plate.FormatNames(), mw.onFormatChanged)
	mw.formatSelect.SetSelected(mw.plate.Format().Name)

	compoundForm := container.NewVBox()
	for i := range mw.compoundEntries {
		idx := i
		entry := widget.NewEntry()
		entry.SetPlaceHolder("Compound " + string(rune('1'+i)))
		entry.OnChanged = func(s string) { mw.onCompoundNameChanged(idx, s) }
		mw.compoundEntries[i] = entry
		compoundForm.Add(entry)
	}

	mw.wellChecks = widget.NewCheckGroup(nil, func([]string) { mw.refresh() })
	mw.wellChecks.Horizontal = true
	mw.rowChecks = widget.NewCheckGroup(nil, func([]string) { mw.refresh() })
	mw.rowChecks.Horizontal = true
	mw.colChecks = widget.NewCheckGroup(nil, func([]string) { mw.refresh() })
	mw.colChecks.Horizontal = true
	mw.selectionArea = container.NewStack()

	mw.modeRadio = widget.NewRadioGroup(plate.SelectionModeNames(), mw.onModeChanged)
	mw.modeRadio.Required = true

	mw.compoundChecks = widget.NewCheckGroup(nil, nil)

	mw.noteEntry = widget.NewEntry()
	mw.noteEntry.SetPlaceHolder("Optional note")

	mw.swatch = newColorSwatch(mw.fill.MustNRGBA(), mw.pickColor)
	colorBtn := widget.NewButtonWithIcon("Fill Color", theme.ColorPaletteIcon(), mw.pickColor)

	applyBtn := widget.NewButtonWithIcon("Apply to Selected Wells", theme.ConfirmIcon(), mw.applyToSelection)
	applyBtn.Importance = widget.HighImportance
	clearBtn := widget.NewButtonWithIcon("Clear Entire Plate", theme.DeleteIcon(), mw.clearPlate)
	clearBtn.Importance = widget.DangerImportance

	mw.inspector = widget.NewLabel("Click a well to select it.")
	mw.inspector.Wrapping = fyne.TextWrapWord
	mw.status = widget.NewLabel("")

	mw.resetSelectionOptions()
	mw.modeRadio.Selected = mw.mode.String()
	mw.onModeChanged(mw.modeRadio.Selected)

	controls := container.NewVBox(
		widget.NewLabelWithStyle("Plate Format", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.formatSelect,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Compounds", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		compoundForm,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Selection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.modeRadio,
		container.NewVScroll(mw.selectionArea),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Assign", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.compoundChecks,
		mw.noteEntry,
		container.NewBorder(nil, nil, mw.swatch, nil, colorBtn),
		container.NewGridWithColumns(2, applyBtn, clearBtn),
	)

	side := container.NewBorder(nil, container.NewVBox(widget.NewSeparator(), mw.inspector, mw.status), nil, nil,
		container.NewVScroll(controls))

	split := container.NewHSplit(side, mw.view)
	split.Offset = 0.32
	return split
}

// resetSelectionOptions rebuilds the well/row/column choices for the current
// format and drops any previous selection.
func (mw *MainWindow) resetSelectionOptions() {
	f := mw.plate.Format()

	mw.wellChecks.Options = f.WellIDs()
	mw.wellChecks.Selected = nil
	mw.rowChecks.Options = f.RowLabels()
	mw.rowChecks.Selected = nil
	mw.colChecks.Options = f.ColumnLabelStrings()
	mw.colChecks.Selected = nil

	mw.wellChecks.Refresh()
	mw.rowChecks.Refresh()
	mw.colChecks.Refresh()
}

func (mw *MainWindow) onFormatChanged(name string) {
	f, err := plate.FormatByName(name)
	if err != nil {
		mw.showError("change format", err)
		return
	}
	if f == mw.plate.Format() {
		return
	}
	mw.plate.SetFormat(f)
	mw.mirror.Fit(f)
	mw.resetSelectionOptions()
	mw.log.Info("plate format changed", logging.String("format", f.Name))
	mw.setStatus("Switched to %s plate", f.Name)
	mw.refresh()
}

func (mw *MainWindow) onCompoundNameChanged(i int, name string) {
	mw.plate.SetCompoundName(i, name)
	mw.refreshCompoundChoices()
}

// refreshCompoundChoices offers the non-blank compound names and keeps any
// still-valid checks.
func (mw *MainWindow) refreshCompoundChoices() {
	choices := mw.plate.CompoundNames().Choices()
	valid := make(map[string]bool, len(choices))
	for _, c := range choices {
		valid[c] = true
	}
	var kept []string
	for _, s := range mw.compoundChecks.Selected {
		if valid[s] {
			kept = append(kept, s)
		}
	}
	mw.compoundChecks.Options = choices
	mw.compoundChecks.Selected = kept
	mw.compoundChecks.Refresh()
}

func (mw *MainWindow) onModeChanged(name string) {
	mode, ok := plate.ParseSelectionMode(name)
	if !ok {
		return
	}
	mw.mode = mode

	var group *widget.CheckGroup
	switch mode {
	case plate.EntireRows:
		group = mw.rowChecks
	case plate.EntireColumns:
		group = mw.colChecks
	default:
		group = mw.wellChecks
	}
	mw.selectionArea.Objects = []fyne.CanvasObject{group}
	mw.selectionArea.Refresh()
	mw.refresh()
}

// onWellTapped toggles a well in the single-well selection, switching to that
// mode first if needed.
func (mw *MainWindow) onWellTapped(w plate.Well) {
	if !mw.plate.Format().Contains(w) {
		return
	}
	if mw.mode != plate.SingleWells {
		mw.modeRadio.Selected = plate.SingleWells.String()
		mw.modeRadio.Refresh()
		mw.onModeChanged(mw.modeRadio.Selected)
	}
	mw.toggleWell(w)
	mw.inspect(w)
}

func (mw *MainWindow) toggleWell(w plate.Well) {
	id := w.String()
	selected := make([]string, 0, len(mw.wellChecks.Selected)+1)
	found := false
	for _, s := range mw.wellChecks.Selected {
		if s == id {
			found = true
			continue
		}
		selected = append(selected, s)
	}
	if !found {
		selected = append(selected, id)
	}
	mw.wellChecks.Selected = selected
	mw.wellChecks.Refresh()
	mw.refresh()
}

// inspect shows everything stored for a well, including its note.
func (mw *MainWindow) inspect(w plate.Well) {
	st := mw.plate.At(w)
	var b strings.Builder
	b.WriteString(w.String())
	if len(st.Compounds) > 0 {
		b.WriteString(": " + strings.Join(st.Compounds, ", "))
	} else {
		b.WriteString(": empty")
	}
	b.WriteString("\nColor: " + string(st.Color))
	if st.Note != "" {
		b.WriteString("\nNote: " + st.Note)
	}
	mw.inspector.SetText(b.String())
}

func (mw *MainWindow) pickColor() {
	picker := dialog.NewColorPicker("Fill Color", "Choose the color for selected wells", func(c color.Color) {
		mw.setFill(plate.ColorOf(c))
	}, mw.window)
	picker.Advanced = true
	picker.SetColor(mw.fill.MustNRGBA())
	picker.Show()
}

func (mw *MainWindow) setFill(c plate.Color) {
	mw.fill = c
	mw.swatch.setColor(c.MustNRGBA())
	mw.syncSurfaces()
}

// applyToSelection writes the checked compounds, fill and note to every
// selected well.
func (mw *MainWindow) applyToSelection() {
	wells := mw.selection().Resolve(mw.plate.Format())
	compounds := append([]string(nil), mw.compoundChecks.Selected...)
	n := mw.plate.Apply(wells, compounds, mw.fill, mw.noteEntry.Text)

	mw.log.Info("applied to selection",
		logging.Int("wells", n),
		logging.String("color", string(mw.fill)),
		logging.Any("compounds", compounds))
	mw.setStatus("Applied to %d wells", n)
	mw.refresh()
}

func (mw *MainWindow) clearPlate() {
	mw.plate.Clear()
	mw.log.Info("plate cleared")
	mw.setStatus("Plate cleared")
	mw.inspector.SetText("")
	mw.refresh()
}
