package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPluginEntityID(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			"http uri",
			"http://example.org/plugins/amp",
			"plughost.local.audio.lv2.plugin.example_org_plugins_amp",
		},
		{
			"mixed case flattened",
			"https://Example.org/Amp-2",
			"plughost.local.audio.lv2.plugin.example_org_amp-2",
		},
		{
			"urn scheme",
			"urn:example:amp",
			"plughost.local.audio.lv2.plugin.urn_example_amp",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PluginEntityID(tt.uri))
		})
	}
}

func TestPublishPluginNilClient(t *testing.T) {
	// Without a NATS client publishing is a graceful no-op.
	require.NoError(t, PublishPlugin(context.Background(), nil, nil))
}
