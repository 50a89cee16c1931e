package commands

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/plughost/host"
	"github.com/c360studio/plughost/value"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <plugin-uri>",
		Short: "Show full metadata for one plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, _, err := opts.loadWorld(cmd.Context())
			if err != nil {
				return err
			}
			defer w.Close()

			p, ok := w.PluginByURI(args[0])
			if !ok {
				return fmt.Errorf("plugin not found: %s", args[0])
			}
			printPlugin(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func printPlugin(out io.Writer, p *host.Plugin) {
	fmt.Fprintf(out, "URI:     %s\n", p.URI().AsURI())
	if name, ok := p.Name(); ok {
		fmt.Fprintf(out, "Name:    %s\n", name)
	}
	fmt.Fprintf(out, "Class:   %s\n", p.Class().Label())
	fmt.Fprintf(out, "Bundle:  %s\n", p.BundleURI())
	if lib, ok := p.LibraryURI(); ok {
		fmt.Fprintf(out, "Binary:  %s\n", lib)
	}
	if author, ok := p.AuthorName(); ok {
		fmt.Fprintf(out, "Author:  %s\n", author)
	}
	if email, ok := p.AuthorEmail(); ok {
		fmt.Fprintf(out, "Email:   %s\n", email)
	}
	if home, ok := p.AuthorHomepage(); ok {
		fmt.Fprintf(out, "Home:    %s\n", home)
	}
	if p.HasLatency() {
		fmt.Fprintf(out, "Latency: reported on port %d\n", p.LatencyPortIndex())
	}
	if p.IsReplaced() {
		fmt.Fprintln(out, "Status:  replaced by a newer plugin")
	}

	if req := p.RequiredFeatures(); len(req) > 0 {
		fmt.Fprintf(out, "Required features:  %s\n", joinURIs(req))
	}
	if opt := p.OptionalFeatures(); len(opt) > 0 {
		fmt.Fprintf(out, "Optional features:  %s\n", joinURIs(opt))
	}

	fmt.Fprintf(out, "Ports (%d):\n", p.NumPorts())
	for _, port := range p.Ports() {
		printPort(out, port)
	}

	if uis := p.UIs(); len(uis) > 0 {
		fmt.Fprintf(out, "UIs (%d):\n", len(uis))
		for _, ui := range uis {
			fmt.Fprintf(out, "  %s\n", ui.URI().AsURI())
			for _, c := range ui.Classes() {
				fmt.Fprintf(out, "    type:   %s\n", c.AsURI())
			}
			if bin := ui.BinaryURI(); bin != "" {
				fmt.Fprintf(out, "    binary: %s\n", bin)
			}
		}
	}
}

func printPort(out io.Writer, port *host.Port) {
	classes := make([]string, 0, len(port.Classes()))
	for _, c := range port.Classes() {
		classes = append(classes, localName(c.AsURI()))
	}
	fmt.Fprintf(out, "  [%d] %s (%s)\n", port.Index(), port.Symbol(), strings.Join(classes, ", "))
	if name, ok := port.Name(); ok {
		fmt.Fprintf(out, "      name:  %s\n", name)
	}
	def, min, max := port.RangeFloat()
	if !math.IsNaN(def) || !math.IsNaN(min) || !math.IsNaN(max) {
		fmt.Fprintf(out, "      range: %s (min %s, max %s)\n",
			formatBound(def), formatBound(min), formatBound(max))
	}
	for _, sp := range port.ScalePoints() {
		fmt.Fprintf(out, "      scale: %s = %s\n", sp.Label(), sp.Value())
	}
}

func formatBound(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}

func joinURIs(vals []value.Value) string {
	uris := make([]string, 0, len(vals))
	for _, v := range vals {
		uris = append(uris, v.AsURI())
	}
	return strings.Join(uris, ", ")
}
