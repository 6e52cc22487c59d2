package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/PixPMusic/platemapper/internal/cli"
	"github.com/PixPMusic/platemapper/internal/library"
	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/PixPMusic/platemapper/internal/midi"
	"github.com/PixPMusic/platemapper/internal/tray"
	"github.com/PixPMusic/platemapper/internal/window"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

func main() {
	if err := cli.Execute(runGUI); err != nil {
		fmt.Fprintln(os.Stderr, "platemapper:", err)
		os.Exit(1)
	}
}

// runGUI opens the window and blocks until the app quits.
func runGUI(env *cli.Env) error {
	log := env.Logger

	// The window works without a library; the tab is disabled instead.
	var store *library.Store
	if s, err := env.OpenLibrary(); err != nil {
		log.Warn("layout library unavailable", logging.Err(err))
	} else {
		store = s
		defer store.Close()
	}

	// Initialize MIDI manager
	midiManager := midi.NewManager(log.Named("midi"))
	defer midiManager.Close()

	fyneApp := app.NewWithID("com.pixpmusic.platemapper")

	mainWindow := window.NewMainWindow(fyneApp, window.Options{
		Config:      env.Config,
		Logger:      log,
		Library:     store,
		MIDIManager: midiManager,
		OnSave: func() {
			log.Info("config saved", logging.String("path", env.Config.Path()))
		},
	})
	defer mainWindow.CloseDevices()

	hasTray, err := tray.Setup(fyneApp, tray.Callbacks{
		OnOpen:  mainWindow.Show,
		OnClear: mainWindow.ClearPlate,
		OnQuit:  fyneApp.Quit,
	})
	if err != nil {
		log.Warn("tray icon unavailable", logging.Err(err))
	}
	if !hasTray {
		// Nothing could reopen a hidden window.
		mainWindow.Window().SetCloseIntercept(fyneApp.Quit)
	}

	// Activate configured Launchpads and show the empty plate on them
	mainWindow.InitializeDevices()
	mainWindow.Show()

	// Run the Fyne app (this blocks until app.Quit is called)
	fyneApp.Run()
	return nil
}
