package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/PixPMusic/platemapper/internal/plate"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported plate formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FORMAT\tROWS\tCOLUMNS\tWELLS")
			for _, f := range plate.Formats() {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", f.Name, f.Rows, f.Cols, f.Wells())
			}
			return tw.Flush()
		},
	}
}
