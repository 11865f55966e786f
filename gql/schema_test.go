package gql_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph"
	"github.com/cinegraph/cinegraph/gql"
	"github.com/cinegraph/cinegraph/movies"
)

// scriptedStore replays canned responses in the order queries arrive.
type scriptedStore struct {
	mu        sync.Mutex
	responses []response
	queries   []string
}

type response struct {
	rows []cinegraph.Record
	err  error
}

func (s *scriptedStore) Name() string { return "scripted" }

func (s *scriptedStore) Execute(_ context.Context, query string, _ map[string]any) ([]cinegraph.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries = append(s.queries, query)

	if len(s.responses) == 0 {
		return nil, nil
	}

	next := s.responses[0]
	s.responses = s.responses[1:]

	return next.rows, next.err
}

func (s *scriptedStore) Close() error { return nil }

func newSchema(t *testing.T, store cinegraph.Store) graphql.Schema {
	t.Helper()

	schema, err := gql.NewSchema(movies.New(store))
	require.NoError(t, err)

	return schema
}

func execute(t *testing.T, schema graphql.Schema, query string) *graphql.Result {
	t.Helper()

	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       context.Background(),
	})
}

func TestSchema_Movies(t *testing.T) {
	store := &scriptedStore{responses: []response{
		{rows: []cinegraph.Record{
			{"movieId": "m1", "title": "The Matrix", "released": int64(1999), "tagline": "Welcome to the Real World"},
			{"movieId": "m2", "title": "The Matrix Reloaded"},
		}},
	}}

	result := execute(t, newSchema(t, store), `{ movies { movieId title released tagline } }`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]any)
	list := data["movies"].([]any)
	require.Len(t, list, 2)

	first := list[0].(map[string]any)
	assert.Equal(t, "The Matrix", first["title"])
	assert.Equal(t, 1999, first["released"])

	second := list[1].(map[string]any)
	assert.Nil(t, second["released"], "absent released serializes as null")
	assert.Nil(t, second["tagline"])
}

func TestSchema_ScalarSelectionIssuesOneQuery(t *testing.T) {
	store := &scriptedStore{responses: []response{
		{rows: []cinegraph.Record{{"movieId": "m1", "title": "The Matrix"}}},
	}}

	result := execute(t, newSchema(t, store), `{ movies { title } }`)
	require.Empty(t, result.Errors)

	assert.Len(t, store.queries, 1,
		"relationship queries must not run unless the field is selected")
}

func TestSchema_MovieWithActors(t *testing.T) {
	store := &scriptedStore{responses: []response{
		{rows: []cinegraph.Record{{"movieId": "m1", "title": "The Matrix", "released": int64(1999)}}},
		{rows: []cinegraph.Record{{"personId": "p1", "name": "Keanu Reeves", "born": int64(1964)}}},
	}}

	result := execute(t, newSchema(t, store),
		`{ movie(movieId: "m1") { title actors { name born } } }`)
	require.Empty(t, result.Errors)

	movie := result.Data.(map[string]any)["movie"].(map[string]any)
	assert.Equal(t, "The Matrix", movie["title"])

	actors := movie["actors"].([]any)
	require.Len(t, actors, 1)
	assert.Equal(t, "Keanu Reeves", actors[0].(map[string]any)["name"])

	assert.Len(t, store.queries, 2, "one lookup plus one traversal")
}

func TestSchema_AbsentSingleLookupsAreNull(t *testing.T) {
	store := &scriptedStore{}
	schema := newSchema(t, store)

	for _, query := range []string{
		`{ movie(movieId: "nope") { title } }`,
		`{ person(personId: "nope") { name } }`,
		`{ genre(name: "nope") { name } }`,
	} {
		result := execute(t, schema, query)
		require.Empty(t, result.Errors, query)

		data := result.Data.(map[string]any)
		for _, v := range data {
			assert.Nil(t, v, query)
		}
	}
}

func TestSchema_EmptyCollections(t *testing.T) {
	store := &scriptedStore{}

	result := execute(t, newSchema(t, store), `{ genres { name } }`)
	require.Empty(t, result.Errors)

	genres := result.Data.(map[string]any)["genres"].([]any)
	assert.Empty(t, genres)
}

func TestSchema_StoreErrorSurfaces(t *testing.T) {
	store := &scriptedStore{responses: []response{
		{err: errors.New("connection refused")},
	}}

	result := execute(t, newSchema(t, store), `{ movies { title } }`)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "connection refused")
}
