// Package movies implements the lazy resolver layer over the movie
// graph: typed entities, lenient record mapping, one traversal query
// per relationship field, and genre-overlap similarity ranking.
//
// Entities are immutable once constructed and carry no relationship
// data of their own; every relationship is re-queried from the store
// when requested. MovieID and PersonID are store-assigned opaque
// identifiers: stable for the lifetime of a session, but NOT across
// store compaction or restart. Callers must not persist them as
// durable keys.
package movies

// Movie is a movie node. Released and Tagline are nil when the
// underlying property is absent; they are never coerced to zero
// values.
type Movie struct {
	MovieID  string
	Title    string
	Released *int64
	Tagline  *string
}

// Person is a person node. Born is nil when absent.
type Person struct {
	PersonID string
	Name     string
	Born     *int64
}

// Genre is a genre node; its name is its natural identifier.
type Genre struct {
	Name string
}
