package bigpicture

import (
	"log/slog"

	"github.com/aretw0/bigpicture/pkg/adapters/file"
	"github.com/aretw0/bigpicture/pkg/adapters/memory"
	"github.com/aretw0/bigpicture/pkg/ports"
	"github.com/aretw0/bigpicture/pkg/workshop"
)

// Version is the library and CLI release version.
var Version = "0.3.0"

// Option defines a functional option for configuring the facade.
type Option func(*options)

type options struct {
	store  ports.WorkshopStore
	logger *slog.Logger
}

// WithStore injects a custom WorkshopStore, bypassing the default
// filesystem store.
func WithStore(s ports.WorkshopStore) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithLogger sets the logger used by the service.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Open initializes a workshop service persisting to dir. Options can
// replace the store or the logger.
//
// An empty dir with no WithStore option yields an in-memory service,
// useful for tests and throwaway sessions.
func Open(dir string, opts ...Option) *workshop.Service {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.store == nil {
		if dir == "" {
			o.store = memory.New()
		} else {
			o.store = file.New(dir)
		}
	}

	return workshop.NewService(o.store, o.logger)
}

