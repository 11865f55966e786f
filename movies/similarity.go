package movies

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph"
)

// defaultSimilarLimit caps how many movies the similarity ranker
// returns.
const defaultSimilarLimit = 10

// querySimilar ranks every other movie by Jaccard similarity of genre
// id sets, delegated to the store's GDS function. Ties keep the
// store's natural row order; movies with no genres never match.
const querySimilar = `MATCH (m:Movie {title: $title})-[:IN_GENRE]->(g:Genre)
WITH m, collect(id(g)) AS sourceGenres
MATCH (n:Movie)-[:IN_GENRE]->(g:Genre)
WHERE n <> m
WITH m, sourceGenres, n, collect(id(g)) AS candidateGenres
RETURN elementId(n) AS movieId, n.title AS title, n.released AS released, n.tagline AS tagline,
       gds.similarity.jaccard(sourceGenres, candidateGenres) AS similarity
ORDER BY similarity DESC
LIMIT $limit`

// Fallback queries for stores without the GDS plugin: fetch the two
// genre id sets and rank in-process with the same formula.
const (
	querySourceGenreIDs = `MATCH (m:Movie {title: $title})-[:IN_GENRE]->(g:Genre)
RETURN id(g) AS genreId`

	queryCandidateGenreIDs = `MATCH (m:Movie {title: $title})
MATCH (n:Movie)-[:IN_GENRE]->(g:Genre)
WHERE n <> m
RETURN elementId(n) AS movieId, n.title AS title, n.released AS released, n.tagline AS tagline,
       collect(id(g)) AS genreIds`
)

// SimilarTo resolves Movie.similar: up to similarLimit other movies
// ranked by genre overlap, most similar first. The source movie is
// matched by title and excluded from the candidates.
func (r *Resolver) SimilarTo(ctx context.Context, m *Movie) ([]*Movie, error) {
	params := map[string]any{"title": m.Title, "limit": r.similarLimit}

	rows, err := r.store.Execute(ctx, querySimilar, params)
	if err != nil {
		if isUnknownFunction(err) {
			return r.similarInProcess(ctx, m)
		}

		return nil, fmt.Errorf("similar: %w", err)
	}

	return collect(r, "movie.similar", rows, movieFromRecord), nil
}

// similarInProcess replicates the GDS ranking: same formula, same
// limit, ties kept in store row order.
func (r *Resolver) similarInProcess(ctx context.Context, m *Movie) ([]*Movie, error) {
	params := map[string]any{"title": m.Title}

	srcRows, err := r.store.Execute(ctx, querySourceGenreIDs, params)
	if err != nil {
		return nil, fmt.Errorf("similar: source genres: %w", err)
	}

	// The GDS query anchors on the source movie's IN_GENRE match, so a
	// missing or genre-less source yields no candidates at all.
	if len(srcRows) == 0 {
		return []*Movie{}, nil
	}

	source := make([]int64, 0, len(srcRows))

	for _, rec := range srcRows {
		id, err := intValue(rec["genreId"])
		if err != nil {
			r.log.Warn("dropping malformed genre id",
				zap.String("field", "movie.similar"),
				zap.Error(err))

			continue
		}

		source = append(source, id)
	}

	candRows, err := r.store.Execute(ctx, queryCandidateGenreIDs, params)
	if err != nil {
		return nil, fmt.Errorf("similar: candidates: %w", err)
	}

	type candidate struct {
		rec   cinegraph.Record
		score float64
	}

	cands := make([]candidate, 0, len(candRows))

	for _, rec := range candRows {
		ids := genreIDList(rec["genreIds"])
		cands = append(cands, candidate{rec: rec, score: jaccard(source, ids)})
	}

	// Stable sort preserves store order for equal scores.
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})

	if len(cands) > r.similarLimit {
		cands = cands[:r.similarLimit]
	}

	rows := make([]cinegraph.Record, len(cands))
	for i, c := range cands {
		rows[i] = c.rec
	}

	return collect(r, "movie.similar", rows, movieFromRecord), nil
}

// jaccard computes |a∩b| / |a∪b| treating the slices as sets.
// Two empty sets score 0, not NaN.
func jaccard(a, b []int64) float64 {
	union := make(map[int64]struct{}, len(a)+len(b))
	inA := make(map[int64]struct{}, len(a))

	for _, id := range a {
		union[id] = struct{}{}
		inA[id] = struct{}{}
	}

	intersection := 0

	for _, id := range b {
		if _, ok := inA[id]; ok {
			intersection++

			// Count each shared id once even if b repeats it.
			delete(inA, id)
		}

		union[id] = struct{}{}
	}

	if len(union) == 0 {
		return 0
	}

	return float64(intersection) / float64(len(union))
}

// genreIDList converts a collected id column ([]any of integers) into
// a set-ready slice, skipping values of unexpected shape.
func genreIDList(v any) []int64 {
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	ids := make([]int64, 0, len(list))

	for _, item := range list {
		id, err := intValue(item)
		if err != nil {
			continue
		}

		ids = append(ids, id)
	}

	return ids
}

// isUnknownFunction reports whether the store rejected the query
// because the GDS jaccard function is not installed.
func isUnknownFunction(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, "gds.similarity.jaccard") &&
		(strings.Contains(msg, "Unknown function") || strings.Contains(msg, "unknown function"))
}
