package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/PixPMusic/platemapper/internal/export"
	"github.com/spf13/cobra"
)

func newLayoutsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List and manage saved layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := env.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			entries, err := lib.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFORMAT\tUPDATED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Format, e.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	var file string
	importCmd := &cobra.Command{
		Use:   "import NAME",
		Short: "Save a layout file into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := export.LoadFile(file)
			if err != nil {
				return err
			}
			lib, err := env.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()
			return lib.Save(cmd.Context(), args[0], p)
		},
	}
	importCmd.Flags().StringVar(&file, "file", "", "layout file to import")
	_ = importCmd.MarkFlagRequired("file")

	renameCmd := &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a saved layout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := env.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()
			return lib.Rename(cmd.Context(), args[0], args[1])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := env.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()
			return lib.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(importCmd, renameCmd, deleteCmd)
	return cmd
}
