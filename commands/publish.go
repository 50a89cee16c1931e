package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/c360studio/semstreams/natsclient"
	"github.com/spf13/cobra"

	"github.com/c360studio/plughost/graph"
)

func newPublishCmd(opts *rootOptions) *cobra.Command {
	var natsURL string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish discovered plugins to the knowledge graph over NATS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, cfg, err := opts.loadWorld(ctx)
			if err != nil {
				return err
			}
			defer w.Close()

			url := natsURL
			if url == "" {
				url = os.Getenv("NATS_URL")
			}
			if url == "" {
				url = cfg.NATS.URL
			}
			if url == "" {
				return fmt.Errorf("no NATS URL configured (set nats.url or pass --url)")
			}

			nc, err := connectNATS(ctx, url)
			if err != nil {
				return err
			}
			defer nc.Close(ctx)

			if err := graph.PublishAll(ctx, nc, w); err != nil {
				return fmt.Errorf("publish plugins: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d plugins\n", len(w.Plugins()))
			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "url", "", "NATS server URL (overrides NATS_URL and config)")
	return cmd
}

func connectNATS(ctx context.Context, url string) (*natsclient.Client, error) {
	nc, err := natsclient.NewClient(url,
		natsclient.WithName("plughost"),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}
	if err := nc.Connect(ctx); err != nil {
		return nil, fmt.Errorf("NATS connection failed: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := nc.WaitForConnection(connCtx); err != nil {
		return nil, fmt.Errorf("NATS connection failed: %w", err)
	}
	return nc, nil
}
