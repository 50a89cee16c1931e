package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, _, err := opts.loadWorld(cmd.Context())
			if err != nil {
				return err
			}
			defer w.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if verbose {
				fmt.Fprintln(tw, "URI\tNAME\tCLASS\tPORTS\tBUNDLE")
			} else {
				fmt.Fprintln(tw, "URI\tNAME\tCLASS")
			}
			for _, p := range w.Plugins() {
				name, ok := p.Name()
				if !ok {
					name = "-"
				}
				if verbose {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
						p.URI().AsURI(), name, p.Class().Label(), p.NumPorts(), p.BundleURI())
				} else {
					fmt.Fprintf(tw, "%s\t%s\t%s\n",
						p.URI().AsURI(), name, p.Class().Label())
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include port counts and bundle locations")
	return cmd
}
