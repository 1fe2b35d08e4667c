package platform

import (
	"github.com/aretw0/jsonedit/pkg/adapters/fs"
	"github.com/aretw0/jsonedit/pkg/editor"
)

// New wires an editor backed by the filesystem store.
//
//	ed := platform.New(platform.WithIndent(4), platform.WithLogger(logger))
func New(opts ...Option) *editor.Editor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		store = fs.NewStore(fs.Config{
			Indent: o.config.Indent,
			JSONC:  o.config.JSONC,
			Logger: o.logger,
		})
	}

	if o.logger != nil {
		o.logger.Debug("editor configured", "indent", o.config.Indent, "jsonc", o.config.JSONC)
	}
	return editor.New(store, o.logger, o.stdout)
}
