package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/plughost/host"
)

func newClassesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "Print the plugin class tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, _, err := opts.loadWorld(cmd.Context())
			if err != nil {
				return err
			}
			defer w.Close()

			printClass(cmd.OutOrStdout(), w.PluginClassRoot(), 0)
			return nil
		},
	}
}

func printClass(out io.Writer, c *host.PluginClass, depth int) {
	fmt.Fprintf(out, "%s%s  <%s>\n", strings.Repeat("  ", depth), c.Label(), c.URI())
	for _, child := range c.Children() {
		printClass(out, child, depth+1)
	}
}
