package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/plughost/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the loaded graph as RDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f export.Format
			switch format {
			case "turtle":
				f = export.FormatTurtle
			case "ntriples":
				f = export.FormatNTriples
			default:
				return fmt.Errorf("unknown format %q (want turtle or ntriples)", format)
			}

			w, _, err := opts.loadWorld(cmd.Context())
			if err != nil {
				return err
			}
			defer w.Close()

			// Touch every plugin so data files are in the graph too.
			for _, p := range w.Plugins() {
				p.NumPorts()
			}

			text, err := export.New(w.Namespaces()).Export(w.Store().All().Collect(), f)
			if err != nil {
				return fmt.Errorf("export graph: %w", err)
			}
			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "turtle", "Output format (turtle, ntriples)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
