package host

import (
	"context"
	"errors"
)

// ErrNoBackend is returned by Plugin.Instantiate when no native backend is
// installed on the world.
var ErrNoBackend = errors.New("no instantiation backend configured")

// Backend creates native plugin instances. Implementations wrap the
// platform's dynamic loader and the plugin binary ABI; the metadata core
// treats them as an opaque capability.
type Backend interface {
	Instantiate(ctx context.Context, p *Plugin, sampleRate float64, features []string) (Instance, error)
}

// Instance is a live native plugin instance. Its lifetime is independent of
// the World that described it: closing the World does not invalidate an
// Instance, and an Instance must be closed on its own.
//
// ConnectPort, Activate, Run and Deactivate are thin pass-throughs to the
// native ABI and follow its rules: connect all ports before running,
// activate before the first run.
type Instance interface {
	URI() string
	ConnectPort(portIndex int, data []float32)
	Activate()
	Run(sampleCount int)
	Deactivate()
	ExtensionData(uri string) any
	Close() error
}
