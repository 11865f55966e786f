//nolint:testpackage
package movies

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph"
)

type execution struct {
	query  string
	params map[string]any
}

// fakeStore routes by exact query text. Safe for concurrent use so
// sibling-field tests can hammer it.
type fakeStore struct {
	mu       sync.Mutex
	rows     map[string][]cinegraph.Record
	errs     map[string]error
	executed []execution
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows: make(map[string][]cinegraph.Record),
		errs: make(map[string]error),
	}
}

func (f *fakeStore) Name() string { return "fake" }

func (f *fakeStore) Execute(_ context.Context, query string, params map[string]any) ([]cinegraph.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.executed = append(f.executed, execution{query: query, params: params})

	if err, ok := f.errs[query]; ok {
		return nil, err
	}

	return f.rows[query], nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) executions() []execution {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]execution(nil), f.executed...)
}

func TestResolver_Movies(t *testing.T) {
	store := newFakeStore()
	store.rows[queryMovies] = []cinegraph.Record{
		{"movieId": "1", "title": "The Matrix", "released": int64(1999)},
		{"movieId": "2", "title": "The Matrix Reloaded", "released": int64(2003)},
	}

	r := New(store)

	got, err := r.Movies(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "The Matrix", got[0].Title)
	assert.Equal(t, "The Matrix Reloaded", got[1].Title)
}

func TestResolver_Movies_DropsMalformedRow(t *testing.T) {
	store := newFakeStore()
	store.rows[queryMovies] = []cinegraph.Record{
		{"movieId": "1", "title": "Good", "released": int64(2001)},
		{"movieId": "2", "title": "Bad", "released": "not a year"},
	}

	r := New(store)

	got, err := r.Movies(context.Background())
	require.NoError(t, err, "a malformed row must not fail the collection")
	require.Len(t, got, 1)
	assert.Equal(t, "Good", got[0].Title)
}

func TestResolver_Movies_EveryRowMalformed(t *testing.T) {
	store := newFakeStore()
	store.rows[queryMovies] = []cinegraph.Record{
		{"movieId": "1", "title": "Bad", "released": "x"},
		{"movieId": "2", "title": "Worse", "released": true},
	}

	r := New(store)

	got, err := r.Movies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got, "an all-malformed collection is empty, not nil")
}

func TestResolver_Movies_StoreErrorPropagates(t *testing.T) {
	store := newFakeStore()
	storeErr := errors.New("connection refused")
	store.errs[queryMovies] = storeErr

	r := New(store)

	_, err := r.Movies(context.Background())
	require.ErrorIs(t, err, storeErr)
}

func TestResolver_MovieByID_NotFound(t *testing.T) {
	r := New(newFakeStore())

	got, err := r.MovieByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolver_MovieByID_MalformedTreatedAsNotFound(t *testing.T) {
	store := newFakeStore()
	store.rows[queryMovieByID] = []cinegraph.Record{
		{"movieId": "1", "title": "Bad", "released": "x"},
	}

	r := New(store)

	got, err := r.MovieByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolver_MovieByID_BindsIDParam(t *testing.T) {
	store := newFakeStore()
	r := New(store)

	_, err := r.MovieByID(context.Background(), "4:abc:42")
	require.NoError(t, err)

	execs := store.executions()
	require.Len(t, execs, 1)
	assert.Equal(t, "4:abc:42", execs[0].params["movieId"])
}

func TestResolver_GenreByName_NotFound(t *testing.T) {
	r := New(newFakeStore())

	got, err := r.GenreByName(context.Background(), "Nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolver_Genres_EmptyStore(t *testing.T) {
	r := New(newFakeStore())

	got, err := r.Genres(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolver_GenresOf_BindsTitleParam(t *testing.T) {
	store := newFakeStore()
	store.rows[queryMovieGenres] = []cinegraph.Record{{"name": "Action"}}

	r := New(store)
	m := &Movie{MovieID: "1", Title: "The Matrix"}

	got, err := r.GenresOf(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Action", got[0].Name)

	execs := store.executions()
	require.Len(t, execs, 1)
	assert.Equal(t, "The Matrix", execs[0].params["title"],
		"traversals match by title, bound as a named parameter")
}

func TestResolver_ActedIn(t *testing.T) {
	store := newFakeStore()
	store.rows[queryPersonActedIn] = []cinegraph.Record{
		{"movieId": "1", "title": "The Matrix", "released": int64(1999)},
		{"movieId": "2", "title": "The Matrix Reloaded", "released": int64(2003)},
	}

	r := New(store)

	got, err := r.ActedIn(context.Background(), &Person{PersonID: "p1", Name: "Keanu Reeves"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	execs := store.executions()
	require.Len(t, execs, 1)
	assert.Equal(t, "Keanu Reeves", execs[0].params["name"])
}

func TestResolver_MatrixScenario(t *testing.T) {
	store := newFakeStore()
	store.rows[queryMovieByID] = []cinegraph.Record{
		{"movieId": "m1", "title": "The Matrix", "released": int64(1999)},
	}
	store.rows[queryMovieActors] = []cinegraph.Record{
		{"personId": "p1", "name": "Keanu Reeves"},
	}
	store.rows[querySimilar] = []cinegraph.Record{
		{"movieId": "m2", "title": "The Matrix Reloaded", "released": int64(2003), "similarity": 1.0},
	}

	r := New(store)
	ctx := context.Background()

	movie, err := r.MovieByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.Equal(t, "The Matrix", movie.Title)
	require.NotNil(t, movie.Released)
	assert.Equal(t, int64(1999), *movie.Released)

	actors, err := r.ActorsOf(ctx, movie)
	require.NoError(t, err)
	require.Len(t, actors, 1)
	assert.Equal(t, "Keanu Reeves", actors[0].Name)

	similar, err := r.SimilarTo(ctx, movie)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "The Matrix Reloaded", similar[0].Title)
}

func TestResolver_ConcurrentSiblingFields(t *testing.T) {
	store := newFakeStore()
	store.rows[queryMovieGenres] = []cinegraph.Record{
		{"name": "Action"},
		{"name": "Sci-Fi"},
	}
	store.rows[queryMovieActors] = []cinegraph.Record{
		{"personId": "p1", "name": "Keanu Reeves", "born": int64(1964)},
	}

	r := New(store)
	m := &Movie{MovieID: "1", Title: "The Matrix"}

	const iterations = 50

	var wg sync.WaitGroup

	for i := 0; i < iterations; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()

			genres, err := r.GenresOf(context.Background(), m)
			assert.NoError(t, err)
			assert.Len(t, genres, 2)
		}()

		go func() {
			defer wg.Done()

			actors, err := r.ActorsOf(context.Background(), m)
			assert.NoError(t, err)

			if assert.Len(t, actors, 1) {
				assert.Equal(t, "Keanu Reeves", actors[0].Name)
			}
		}()
	}

	wg.Wait()

	assert.Len(t, store.executions(), 2*iterations)
}
