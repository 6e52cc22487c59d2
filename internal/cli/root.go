// Package cli defines the platemapper command tree.
package cli

import (
	"fmt"

	"github.com/PixPMusic/platemapper/internal/config"
	"github.com/PixPMusic/platemapper/internal/library"
	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/spf13/cobra"
)

// Version is injected via ldflags.
var Version = "dev"

// Env carries what every command needs once flags are parsed.
type Env struct {
	Config *config.Config
	Logger logging.Logger
}

// OpenLibrary opens the configured layout library.
func (e *Env) OpenLibrary() (*library.Store, error) {
	return library.Open(e.Config.LibraryPath, e.Logger.Named("library"))
}

// GUIFunc launches the desktop window. It lives outside this package so the
// commands build without a graphics driver.
type GUIFunc func(env *Env) error

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root command. Running it without a subcommand
// starts the GUI.
func NewRootCommand(gui GUIFunc) *cobra.Command {
	opts := &rootOptions{}
	env := &Env{}

	runGUI := func(cmd *cobra.Command, args []string) error {
		if gui == nil {
			return fmt.Errorf("gui not available in this build")
		}
		return gui(env)
	}

	cmd := &cobra.Command{
		Use:     "platemapper",
		Short:   "Map compounds onto multi-well plates",
		Long:    "platemapper renders 6- to 96-well plates, assigns up to four compounds per well\nand exports the layout as SVG, PNG, CSV or a reusable layout file.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(env, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.Logger != nil {
				_ = env.Logger.Sync()
			}
		},
		RunE:          runGUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: user config dir)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "gui",
			Short: "Open the plate mapper window",
			Args:  cobra.NoArgs,
			RunE:  runGUI,
		},
		newFormatsCmd(),
		newRenderCmd(env),
		newLayoutsCmd(env),
	)
	return cmd
}

func setup(env *Env, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logCfg := cfg.Log
	if opts.logLevel != "" {
		logCfg.Level = opts.logLevel
	}
	log, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	env.Config = cfg
	env.Logger = log
	log.Debug("config loaded", logging.String("path", cfg.Path()))
	return nil
}

// Execute runs the command tree against os.Args.
func Execute(gui GUIFunc) error {
	return NewRootCommand(gui).Execute()
}
