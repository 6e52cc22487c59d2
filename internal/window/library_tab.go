package window

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/platemapper/internal/library"
)

// ============ LIBRARY TAB ============

func (mw *MainWindow) createLibraryTab() fyne.CanvasObject {
	header := widget.NewLabel("Saved Layouts")
	header.TextStyle = fyne.TextStyle{Bold: true}

	mw.layoutName = widget.NewEntry()
	mw.layoutName.SetPlaceHolder("Layout Name")

	saveBtn := widget.NewButtonWithIcon("Save Current Plate", theme.DocumentSaveIcon(), func() {
		mw.saveToLibrary(mw.layoutName.Text)
	})
	saveBtn.Importance = widget.HighImportance

	mw.layoutList = widget.NewList(
		func() int { return len(mw.layouts) },
		func() fyne.CanvasObject {
			return container.NewGridWithColumns(3, widget.NewLabel("Name"), widget.NewLabel("Format"), widget.NewLabel("Updated"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(mw.layouts) {
				return
			}
			e := mw.layouts[id]
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(e.Name)
			row.Objects[1].(*widget.Label).SetText(e.Format)
			row.Objects[2].(*widget.Label).SetText(e.UpdatedAt.Format("2006-01-02 15:04"))
		},
	)
	mw.layoutList.OnSelected = func(id widget.ListItemID) {
		mw.selectedLayout = id
		if id < len(mw.layouts) {
			mw.layoutName.SetText(mw.layouts[id].Name)
		}
	}
	mw.layoutList.OnUnselected = func(widget.ListItemID) {
		mw.selectedLayout = -1
	}

	loadBtn := widget.NewButtonWithIcon("Load", theme.FolderOpenIcon(), func() {
		if name, ok := mw.selectedLayoutName(); ok {
			mw.loadFromLibrary(name)
		}
	})
	renameBtn := widget.NewButtonWithIcon("Rename", theme.DocumentCreateIcon(), mw.renameSelectedLayout)
	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), mw.deleteSelectedLayout)

	top := container.NewVBox(
		container.NewBorder(nil, nil, header, nil),
		container.NewBorder(nil, nil, nil, saveBtn, mw.layoutName),
		widget.NewSeparator(),
	)
	bottom := container.NewVBox(widget.NewSeparator(), container.NewHBox(loadBtn, renameBtn, deleteBtn))
	return container.NewBorder(top, bottom, nil, nil, mw.layoutList)
}

func (mw *MainWindow) selectedLayoutName() (string, bool) {
	if mw.selectedLayout < 0 || mw.selectedLayout >= len(mw.layouts) {
		return "", false
	}
	return mw.layouts[mw.selectedLayout].Name, true
}

func (mw *MainWindow) reloadLayouts() {
	if mw.library == nil {
		return
	}
	entries, err := mw.library.List(context.Background())
	if err != nil {
		mw.showError("list layouts", err)
		return
	}
	mw.layouts = entries
	mw.selectedLayout = -1
	mw.layoutList.UnselectAll()
	mw.layoutList.Refresh()
}

func (mw *MainWindow) saveToLibrary(name string) {
	if mw.library == nil {
		return
	}
	if err := mw.library.Save(context.Background(), name, mw.plate); err != nil {
		mw.showError("save layout", err)
		return
	}
	mw.setStatus("Saved layout %q", name)
	mw.reloadLayouts()
}

func (mw *MainWindow) loadFromLibrary(name string) {
	if mw.library == nil {
		return
	}
	p, err := mw.library.Load(context.Background(), name)
	if err != nil {
		mw.showError("load layout", err)
		return
	}
	mw.loadPlate(p)
	mw.setStatus("Loaded layout %q", name)
}

func (mw *MainWindow) renameSelectedLayout() {
	oldName, ok := mw.selectedLayoutName()
	if !ok {
		return
	}

	entry := widget.NewEntry()
	entry.SetText(oldName)

	dialog.ShowCustomConfirm("Rename Layout", "Rename", "Cancel",
		container.NewVBox(widget.NewLabel("Enter a new name:"), entry),
		func(confirm bool) {
			if confirm && entry.Text != "" {
				mw.renameLayout(oldName, entry.Text)
			}
		}, mw.window)
}

func (mw *MainWindow) renameLayout(oldName, newName string) {
	err := mw.library.Rename(context.Background(), oldName, newName)
	if errors.Is(err, library.ErrExists) {
		dialog.ShowInformation("Cannot Rename", fmt.Sprintf("A layout named %q already exists.", newName), mw.window)
		return
	}
	if err != nil {
		mw.showError("rename layout", err)
		return
	}
	mw.reloadLayouts()
}

func (mw *MainWindow) deleteSelectedLayout() {
	name, ok := mw.selectedLayoutName()
	if !ok {
		return
	}
	dialog.ShowConfirm("Delete Layout", "Are you sure you want to delete '"+name+"'?",
		func(confirm bool) {
			if confirm {
				mw.deleteLayout(name)
			}
		}, mw.window)
}

func (mw *MainWindow) deleteLayout(name string) {
	if err := mw.library.Delete(context.Background(), name); err != nil {
		mw.showError("delete layout", err)
		return
	}
	mw.reloadLayouts()
}
