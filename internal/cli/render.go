package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PixPMusic/platemapper/internal/export"
	"github.com/PixPMusic/platemapper/internal/logging"
	"github.com/PixPMusic/platemapper/internal/plate"
	"github.com/PixPMusic/platemapper/internal/render"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	file   string
	layout string
	out    string
	as     string
	width  int
}

func newRenderCmd(env *Env) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a layout to SVG, PNG, CSV or a layout file",
		Example: "  platemapper render --file screen.plate.json --out screen.svg\n" +
			"  platemapper render --layout \"screen 1\" --out - --as csv",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), env, opts, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "layout file to render")
	f.StringVar(&opts.layout, "layout", "", "library layout to render")
	f.StringVarP(&opts.out, "out", "o", "", "output file, or - for stdout")
	f.StringVar(&opts.as, "as", "", "output type (svg, png, csv, json); default from --out extension")
	f.IntVar(&opts.width, "width", render.DefaultWidth, "image width in pixels")
	cmd.MarkFlagsMutuallyExclusive("file", "layout")
	cmd.MarkFlagsOneRequired("file", "layout")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// outputType resolves the export type from --as or the output extension.
func outputType(opts *renderOptions) (string, error) {
	t := strings.TrimPrefix(strings.ToLower(opts.as), ".")
	if t == "" {
		if opts.out == "-" {
			return "", errors.New("--as is required when writing to stdout")
		}
		t = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.out)), ".")
	}
	switch t {
	case "svg", "png", "csv", "json":
		return t, nil
	default:
		return "", fmt.Errorf("unsupported output type %q", t)
	}
}

func loadPlate(ctx context.Context, env *Env, opts *renderOptions) (*plate.Plate, error) {
	if opts.file != "" {
		return export.LoadFile(opts.file)
	}
	lib, err := env.OpenLibrary()
	if err != nil {
		return nil, err
	}
	defer lib.Close()
	return lib.Load(ctx, opts.layout)
}

func writePlate(w io.Writer, p *plate.Plate, kind string, width int) error {
	switch kind {
	case "svg":
		return render.WriteSVG(w, render.BuildWidth(p, width))
	case "png":
		return render.WritePNG(w, render.BuildWidth(p, width))
	case "csv":
		return export.WriteCSV(w, p)
	default:
		return export.EncodeLayout(w, p)
	}
}

func runRender(ctx context.Context, env *Env, opts *renderOptions, stdout io.Writer) (retErr error) {
	kind, err := outputType(opts)
	if err != nil {
		return err
	}
	p, err := loadPlate(ctx, env, opts)
	if err != nil {
		return err
	}

	if opts.out == "-" {
		return writePlate(stdout, p, kind, opts.width)
	}

	if err := os.MkdirAll(filepath.Dir(opts.out), 0755); err != nil {
		return err
	}
	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); retErr == nil {
			retErr = cerr
		}
	}()
	if err := writePlate(f, p, kind, opts.width); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	env.Logger.Info("plate rendered",
		logging.String("out", opts.out),
		logging.String("type", kind),
		logging.String("format", p.Format().Name))
	return nil
}
