// Package neo4j provides the Neo4j-backed store for the movie graph.
package neo4j

import (
	"context"
	"fmt"

	neo4jgo "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/cinegraph/cinegraph"
)

//nolint:gochecknoinits // Store self-registration pattern
func init() {
	cinegraph.RegisterStore("neo4j", New)
}

// Store implements cinegraph.Store over the Neo4j Bolt driver. The
// driver's connection pool is created once; every query checks out
// its own session and returns it on completion or failure.
type Store struct {
	driver neo4jgo.DriverWithContext
	db     string
}

// New creates a Neo4j store from the given configuration. When
// credentials are configured but rejected, it retries anonymously:
// some deployments run with auth disabled.
func New(cfg cinegraph.StoreConfig) (cinegraph.Store, error) { //nolint:ireturn // Factory returns interface per Store pattern
	ctx := context.Background()

	auth := neo4jgo.NoAuth()
	if cfg.Username != "" {
		auth = neo4jgo.BasicAuth(cfg.Username, cfg.Password, "")
	}

	s, err := connect(ctx, cfg, auth)
	if err == nil {
		return s, nil
	}

	if cfg.Username == "" {
		return nil, err
	}

	anon, anonErr := connect(ctx, cfg, neo4jgo.NoAuth())
	if anonErr != nil {
		// Report the credentialed failure; it is the one worth fixing.
		return nil, err
	}

	return anon, nil
}

func connect(ctx context.Context, cfg cinegraph.StoreConfig, auth neo4jgo.AuthToken) (*Store, error) {
	driver, err := neo4jgo.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to create driver: %w", err)
	}

	err = driver.VerifyConnectivity(ctx)
	if err != nil {
		_ = driver.Close(ctx)

		return nil, fmt.Errorf("neo4j: failed to connect: %w", err)
	}

	s := &Store{driver: driver}

	if db, ok := cfg.Options["database"].(string); ok {
		s.db = db
	}

	return s, nil
}

// Name returns the store identifier.
func (s *Store) Name() string {
	return "neo4j"
}

// Execute runs a read query in its own session and returns all rows.
// Node and relationship values are flattened so their properties are
// accessible as "alias.property" keys.
func (s *Store) Execute(ctx context.Context, query string, params map[string]any) ([]cinegraph.Record, error) {
	return s.run(ctx, neo4jgo.AccessModeRead, query, params)
}

// ExecuteWrite runs a write query in its own session. Only bootstrap
// tooling uses this; the API layer is read-only.
func (s *Store) ExecuteWrite(ctx context.Context, query string, params map[string]any) ([]cinegraph.Record, error) {
	return s.run(ctx, neo4jgo.AccessModeWrite, query, params)
}

func (s *Store) run(ctx context.Context, mode neo4jgo.AccessMode, query string, params map[string]any) ([]cinegraph.Record, error) {
	sessionCfg := neo4jgo.SessionConfig{AccessMode: mode}
	if s.db != "" {
		sessionCfg.DatabaseName = s.db
	}

	session := s.driver.NewSession(ctx, sessionCfg)

	// Released on every exit path, success or error.
	defer func() { _ = session.Close(ctx) }()

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("neo4j: query execution failed: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to collect results: %w", err)
	}

	rows := make([]cinegraph.Record, len(records))
	for i, record := range records {
		rows[i] = flattenRecord(record.Keys, record.Values)
	}

	return rows, nil
}

// Close releases the driver's connection pool.
func (s *Store) Close() error {
	ctx := context.Background()

	if s.driver != nil {
		err := s.driver.Close(ctx)
		if err != nil {
			return fmt.Errorf("neo4j: failed to close driver: %w", err)
		}
	}

	return nil
}

// Ensure Store implements cinegraph.Store and cinegraph.Writer.
var (
	_ cinegraph.Store  = (*Store)(nil)
	_ cinegraph.Writer = (*Store)(nil)
)
