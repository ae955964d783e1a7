package typedb

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/memview/ctype"
	"github.com/wippyai/memview/errors"
)

// DB is a registry of named type descriptors. Safe for concurrent use.
type DB struct {
	mu    sync.RWMutex
	types map[string]ctype.Type
	log   *zap.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger replaces the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(db *DB) {
		if l != nil {
			db.log = l
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *DB {
	db := &DB{
		types: make(map[string]ctype.Type),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Register binds name to a descriptor. Re-registering a name replaces
// the previous descriptor; views already minted keep the old one.
func (db *DB) Register(name string, t ctype.Type) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseRegistry, "empty type name")
	}
	if t == nil {
		return errors.InvalidInput(errors.PhaseRegistry, "nil descriptor")
	}

	db.mu.Lock()
	_, replaced := db.types[name]
	db.types[name] = t
	db.mu.Unlock()

	db.log.Debug("registered type",
		zap.String("name", name),
		zap.String("ctype", t.String()),
		zap.Bool("replaced", replaced))
	return nil
}

// Lookup returns the descriptor bound to name.
func (db *DB) Lookup(name string) (ctype.Type, error) {
	db.mu.RLock()
	t, ok := db.types[name]
	db.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound(errors.PhaseRegistry, "type", name)
	}
	return t, nil
}

// Names returns every registered name, sorted.
func (db *DB) Names() []string {
	db.mu.RLock()
	names := make([]string, 0, len(db.types))
	for name := range db.types {
		names = append(names, name)
	}
	db.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (db *DB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.types)
}
