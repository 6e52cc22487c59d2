package window

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/PixPMusic/platemapper/internal/export"
	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/PixPMusic/platemapper/internal/render"
)

// exportKind is a file type the File menu can write.
type exportKind string

const (
	exportLayout exportKind = ".json"
	exportSVG    exportKind = ".svg"
	exportPNG    exportKind = ".png"
	exportCSV    exportKind = ".csv"
)

func (mw *MainWindow) createMainMenu() *fyne.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Layout...", mw.openLayoutDialog),
		fyne.NewMenuItem("Save Layout As...", func() { mw.saveDialog(exportLayout, "plate"+export.LayoutExtension) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export SVG...", func() { mw.saveDialog(exportSVG, "plate.svg") }),
		fyne.NewMenuItem("Export PNG...", func() { mw.saveDialog(exportPNG, "plate.png") }),
		fyne.NewMenuItem("Export CSV...", func() { mw.saveDialog(exportCSV, "plate.csv") }),
	)
	edit := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Apply to Selected Wells", mw.applyToSelection),
		fyne.NewMenuItem("Clear Entire Plate", mw.clearPlate),
	)
	return fyne.NewMainMenu(file, edit)
}

// writeExport encodes the current plate as kind.
func (mw *MainWindow) writeExport(w io.Writer, kind exportKind) error {
	switch kind {
	case exportLayout:
		return export.EncodeLayout(w, mw.plate)
	case exportSVG:
		return render.WriteSVG(w, render.Build(mw.plate))
	case exportPNG:
		return render.WritePNG(w, render.Build(mw.plate))
	case exportCSV:
		return export.WriteCSV(w, mw.plate)
	default:
		return fmt.Errorf("unsupported export %q", kind)
	}
}

func (mw *MainWindow) saveDialog(kind exportKind, defaultName string) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			mw.showError("save file", err)
			return
		}
		if wc == nil {
			return
		}
		writeErr := mw.writeExport(wc, kind)
		closeErr := wc.Close()
		if writeErr == nil {
			writeErr = closeErr
		}
		if writeErr != nil {
			mw.showError("write "+wc.URI().Name(), writeErr)
			return
		}
		mw.log.Info("plate exported", logging.String("uri", wc.URI().String()), logging.String("kind", string(kind)))
		mw.setStatus("Saved %s", wc.URI().Name())
	}, mw.window)
	d.SetFileName(defaultName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{string(kind)}))
	d.Show()
}

func (mw *MainWindow) openLayoutDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			mw.showError("open file", err)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		if err := mw.readLayout(rc); err != nil {
			mw.showError("open "+rc.URI().Name(), err)
			return
		}
		mw.log.Info("layout opened", logging.String("uri", rc.URI().String()))
		mw.setStatus("Opened %s", rc.URI().Name())
	}, mw.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{string(exportLayout)}))
	d.Show()
}

// readLayout replaces the plate with a decoded layout file.
func (mw *MainWindow) readLayout(r io.Reader) error {
	p, err := export.DecodeLayout(r)
	if err != nil {
		return err
	}
	mw.loadPlate(p)
	return nil
}
