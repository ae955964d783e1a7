package object

import (
	"go.uber.org/zap"

	"github.com/wippyai/memview"
	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/layout"
)

// Engine turns (memory, address, descriptor) triples into views for one
// target configuration. It is immutable after construction and safe for
// concurrent use.
type Engine struct {
	cfg     memview.Config
	layouts *layout.Resolver
	log     *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger replaces the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine builds an engine for the given target configuration.
func NewEngine(cfg memview.Config, opts ...Option) (*Engine, error) {
	layouts, err := layout.NewResolver(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     layouts.Config(),
		layouts: layouts,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's normalized target configuration.
func (e *Engine) Config() memview.Config {
	return e.cfg
}

// Layout resolves the storage layout of a descriptor under the engine's
// configuration.
func (e *Engine) Layout(t ctype.Type) (layout.Info, error) {
	return e.layouts.Resolve(t)
}

// View constructs a lazy view of t at addr inside mem. No memory is
// read; the descriptor is not validated until first use.
func (e *Engine) View(mem memview.MemorySpace, addr uint64, t ctype.Type) *View {
	return &View{
		eng:  e,
		mem:  mem,
		typ:  t,
		addr: addr,
	}
}
