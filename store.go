// Package cinegraph defines the contracts shared by the movie graph
// API: the store boundary, configuration loading, and the errors that
// cross package lines.
package cinegraph

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoWriteSupport is returned when a store does not support write queries.
var ErrNoWriteSupport = errors.New("store does not support write queries")

// Record is a single query result row, keyed by the column names the
// query returned. Values are plain Go scalars, nil for absent
// properties, or []any for list columns.
type Record map[string]any

// Store is the graph database boundary. Implementations execute one
// parameterized read query per call against a scoped session and
// release the session on every exit path.
//
// Parameters are always bound by name; query text never embeds caller
// input. Identifiers returned by a Store are opaque: stable within the
// current session's lifetime, but not across store restarts or
// compaction, so they must not be persisted as durable keys.
type Store interface {
	// Name returns the store identifier (e.g., "neo4j").
	Name() string

	// Execute runs a read query with named parameters and returns all rows.
	Execute(ctx context.Context, query string, params map[string]any) ([]Record, error)

	// Close releases the underlying connection pool.
	Close() error
}

// Writer is an optional interface for stores that accept write
// queries. The API layer never writes; only bootstrap tooling
// (dataset seeding) uses this.
type Writer interface {
	Store

	// ExecuteWrite runs a write query with named parameters.
	ExecuteWrite(ctx context.Context, query string, params map[string]any) ([]Record, error)
}

// StoreFactory creates a Store from connection configuration.
type StoreFactory func(cfg StoreConfig) (Store, error)

// StoreConfig holds connection settings for a store.
type StoreConfig struct {
	// Connection URI (e.g., "neo4j://localhost:7687")
	URI string `yaml:"uri"`

	// Optional credentials (if not in URI)
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Store-specific options
	Options map[string]any `yaml:"options,omitempty"`
}

var stores = make(map[string]StoreFactory)

// RegisterStore registers a store factory by name.
// Store implementations call this in their init() function.
func RegisterStore(name string, factory StoreFactory) {
	stores[name] = factory
}

// NewStore creates a store instance by name.
func NewStore(name string, cfg StoreConfig) (Store, error) { //nolint:ireturn
	factory, ok := stores[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, name)
	}

	return factory(cfg)
}

// RegisteredStores returns the names of all registered stores.
func RegisteredStores() []string {
	names := make([]string, 0, len(stores))
	for name := range stores {
		names = append(names, name)
	}

	return names
}
