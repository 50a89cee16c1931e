// Package commands implements the plughost CLI subcommands.
//
// Every subcommand builds a World from the shared configuration, loads
// all bundles on the search path, and queries it. The World is cheap to
// construct; plugin metadata loads lazily, so listing a thousand plugins
// only parses their manifests.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/plughost/bundle"
	"github.com/c360studio/plughost/config"
	"github.com/c360studio/plughost/host"
)

// rootOptions holds the persistent flag state shared by all subcommands.
type rootOptions struct {
	configPath string
	lv2Path    string
	languages  []string
	noFilter   bool
	logLevel   string
}

// Root returns the plughost root command with all subcommands attached.
func Root(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "plughost",
		Short: "LV2 plugin discovery and metadata queries",
		Long: `Plughost discovers LV2 plugin bundles on the local search path and
answers metadata queries against them: plugins, ports, classes,
features, and UIs.

Bundles are found via the configured search path (or LV2_PATH), and
plugin data files load lazily on first query.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&opts.lv2Path, "lv2-path", "", "Bundle search path override (colon-separated)")
	pf.StringSliceVar(&opts.languages, "language", nil, "Preferred languages for labels (BCP-47, ordered)")
	pf.BoolVar(&opts.noFilter, "no-filter", false, "Disable language filtering of literal results")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newClassesCmd(opts),
		newExportCmd(opts),
		newPublishCmd(opts),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plughost version %s\n", version)
		},
	})

	return cmd
}

func (o *rootOptions) logger() *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(o.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig layers flag overrides onto the file (or default) configuration.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.lv2Path != "" {
		cfg.Bundles.SearchPath = filepath.SplitList(o.lv2Path)
	}
	if len(o.languages) > 0 {
		cfg.Query.Languages = o.languages
	}
	if o.noFilter {
		cfg.Query.FilterLanguage = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadWorld builds a World from the configuration and loads every bundle
// on the search path. Ingestion warnings surface through the logger.
func (o *rootOptions) loadWorld(ctx context.Context) (*host.World, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := o.logger()

	src := bundle.NewFSSource(cfg.Bundles.SearchPath, bundle.NTriplesReader{},
		bundle.WithFSLogger(logger))

	w := host.New(
		host.WithSource(src),
		host.WithLogger(logger),
		host.WithOptions(host.Options{
			FilterLanguage:      cfg.Query.FilterLanguage,
			DynManifest:         cfg.Bundles.DynManifest,
			LanguagePreferences: cfg.Query.Languages,
		}),
	)
	if err := w.LoadAll(ctx); err != nil {
		w.Close()
		return nil, nil, fmt.Errorf("load bundles: %w", err)
	}
	for _, warn := range w.Warnings() {
		logger.Warn("bundle ingestion problem",
			"bundle", warn.Bundle,
			"message", warn.Message,
			"error", warn.Err)
	}
	return w, cfg, nil
}

// localName trims a URI down to its fragment or final path segment for
// compact display.
func localName(uri string) string {
	if i := strings.LastIndexAny(uri, "#/"); i >= 0 && i+1 < len(uri) {
		return uri[i+1:]
	}
	return uri
}
