package movies

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph"
)

// Resolver resolves entity lookups and relationship fields against a
// store. Each method issues exactly one parameterized query (the
// similarity ranker may issue two more on its fallback path) and maps
// the result set row by row.
//
// Resolvers share no mutable state, so sibling fields of one response
// may be resolved concurrently. Only store-level failures propagate;
// malformed rows are logged and dropped.
type Resolver struct {
	store        cinegraph.Store
	log          *zap.Logger
	similarLimit int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for the malformed-record diagnostic
// trail and raw-record debug traces.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// WithSimilarLimit overrides how many movies the similarity ranker
// returns.
func WithSimilarLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.similarLimit = n
		}
	}
}

// New creates a Resolver over the given store.
func New(store cinegraph.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:        store,
		log:          zap.NewNop(),
		similarLimit: defaultSimilarLimit,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Movies lists every movie in the store.
func (r *Resolver) Movies(ctx context.Context) ([]*Movie, error) {
	rows, err := r.store.Execute(ctx, queryMovies, nil)
	if err != nil {
		return nil, fmt.Errorf("movies: %w", err)
	}

	return collect(r, "movies", rows, movieFromRecord), nil
}

// MovieByID looks up a single movie by its store-assigned identifier.
// A missing or unmappable row yields nil, not an error.
func (r *Resolver) MovieByID(ctx context.Context, movieID string) (*Movie, error) {
	rows, err := r.store.Execute(ctx, queryMovieByID, map[string]any{"movieId": movieID})
	if err != nil {
		return nil, fmt.Errorf("movie: %w", err)
	}

	return first(r, "movie", rows, movieFromRecord), nil
}

// People lists every person in the store.
func (r *Resolver) People(ctx context.Context) ([]*Person, error) {
	rows, err := r.store.Execute(ctx, queryPeople, nil)
	if err != nil {
		return nil, fmt.Errorf("people: %w", err)
	}

	return collect(r, "people", rows, personFromRecord), nil
}

// PersonByID looks up a single person by its store-assigned identifier.
func (r *Resolver) PersonByID(ctx context.Context, personID string) (*Person, error) {
	rows, err := r.store.Execute(ctx, queryPersonByID, map[string]any{"personId": personID})
	if err != nil {
		return nil, fmt.Errorf("person: %w", err)
	}

	return first(r, "person", rows, personFromRecord), nil
}

// Genres lists every genre in the store.
func (r *Resolver) Genres(ctx context.Context) ([]*Genre, error) {
	rows, err := r.store.Execute(ctx, queryGenres, nil)
	if err != nil {
		return nil, fmt.Errorf("genres: %w", err)
	}

	return collect(r, "genres", rows, genreFromRecord), nil
}

// GenreByName looks up a single genre by name.
func (r *Resolver) GenreByName(ctx context.Context, name string) (*Genre, error) {
	rows, err := r.store.Execute(ctx, queryGenreByName, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("genre: %w", err)
	}

	return first(r, "genre", rows, genreFromRecord), nil
}

// GenresOf resolves Movie.genres: the genres the movie is filed
// under, matched by title.
func (r *Resolver) GenresOf(ctx context.Context, m *Movie) ([]*Genre, error) {
	rows, err := r.store.Execute(ctx, queryMovieGenres, map[string]any{"title": m.Title})
	if err != nil {
		return nil, fmt.Errorf("movie genres: %w", err)
	}

	return collect(r, "movie.genres", rows, genreFromRecord), nil
}

// ActorsOf resolves Movie.actors: the people with an ACTED_IN
// relationship into the movie, matched by title.
func (r *Resolver) ActorsOf(ctx context.Context, m *Movie) ([]*Person, error) {
	rows, err := r.store.Execute(ctx, queryMovieActors, map[string]any{"title": m.Title})
	if err != nil {
		return nil, fmt.Errorf("movie actors: %w", err)
	}

	return collect(r, "movie.actors", rows, personFromRecord), nil
}

// MoviesIn resolves Genre.movies: every movie filed under the genre.
func (r *Resolver) MoviesIn(ctx context.Context, g *Genre) ([]*Movie, error) {
	rows, err := r.store.Execute(ctx, queryGenreMovies, map[string]any{"name": g.Name})
	if err != nil {
		return nil, fmt.Errorf("genre movies: %w", err)
	}

	return collect(r, "genre.movies", rows, movieFromRecord), nil
}

// ActedIn resolves Person.actedIn: every movie the person acted in,
// matched by name.
func (r *Resolver) ActedIn(ctx context.Context, p *Person) ([]*Movie, error) {
	rows, err := r.store.Execute(ctx, queryPersonActedIn, map[string]any{"name": p.Name})
	if err != nil {
		return nil, fmt.Errorf("person actedIn: %w", err)
	}

	return collect(r, "person.actedIn", rows, movieFromRecord), nil
}

// collect maps a result set, dropping rows the mapper rejects and
// recording each drop on the diagnostic trail.
func collect[T any](r *Resolver, field string, rows []cinegraph.Record, from func(cinegraph.Record) (*T, error)) []*T {
	r.trace(field, rows)

	out := make([]*T, 0, len(rows))

	for _, rec := range rows {
		e, err := from(rec)
		if err != nil {
			r.log.Warn("dropping malformed record",
				zap.String("field", field),
				zap.Error(err))

			continue
		}

		out = append(out, e)
	}

	return out
}

// first maps the first row of a single-row lookup. No rows, or a row
// the mapper rejects, yields nil ("not found").
func first[T any](r *Resolver, field string, rows []cinegraph.Record, from func(cinegraph.Record) (*T, error)) *T {
	r.trace(field, rows)

	if len(rows) == 0 {
		return nil
	}

	e, err := from(rows[0])
	if err != nil {
		r.log.Warn("treating malformed record as not found",
			zap.String("field", field),
			zap.Error(err))

		return nil
	}

	return e
}

// trace logs raw result rows at debug level.
func (r *Resolver) trace(field string, rows []cinegraph.Record) {
	if ce := r.log.Check(zap.DebugLevel, "raw records"); ce != nil {
		ce.Write(
			zap.String("field", field),
			zap.Int("rows", len(rows)),
			zap.Any("records", rows),
		)
	}
}
