package cinegraph

import "errors"

var (
	// ErrConfigNotFound is returned when no config file exists in the
	// directory tree.
	ErrConfigNotFound = errors.New("no .cinegraph.yaml found")

	// ErrUnknownStore is returned when no factory is registered for a
	// store name.
	ErrUnknownStore = errors.New("unknown store")
)
