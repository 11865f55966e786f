// Package gql exposes the movie graph resolvers as a GraphQL schema
// and HTTP endpoint. Field resolution stays lazy: a relationship
// field's query runs only when the field appears in the selection,
// and sibling fields resolve independently of each other.
package gql

import (
	"github.com/graphql-go/graphql"

	"github.com/cinegraph/cinegraph/movies"
)

// NewSchema builds the executable schema over the given resolver.
func NewSchema(r *movies.Resolver) (graphql.Schema, error) {
	genreType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Genre",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*movies.Genre).Name, nil
				},
			},
		},
	})

	movieType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Movie",
		Fields: graphql.Fields{
			"movieId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*movies.Movie).MovieID, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*movies.Movie).Title, nil
				},
			},
			"released": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					m := p.Source.(*movies.Movie)
					if m.Released == nil {
						return nil, nil
					}

					return *m.Released, nil
				},
			},
			"tagline": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					m := p.Source.(*movies.Movie)
					if m.Tagline == nil {
						return nil, nil
					}

					return *m.Tagline, nil
				},
			},
		},
	})

	personType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Person",
		Fields: graphql.Fields{
			"personId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*movies.Person).PersonID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(*movies.Person).Name, nil
				},
			},
			"born": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					pe := p.Source.(*movies.Person)
					if pe.Born == nil {
						return nil, nil
					}

					return *pe.Born, nil
				},
			},
		},
	})

	// Relationship fields are added after construction so the three
	// types can reference each other.
	movieType.AddFieldConfig("genres", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(genreType))),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return r.GenresOf(p.Context, p.Source.(*movies.Movie))
		},
	})

	movieType.AddFieldConfig("actors", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(personType))),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return r.ActorsOf(p.Context, p.Source.(*movies.Movie))
		},
	})

	movieType.AddFieldConfig("similar", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(movieType))),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return r.SimilarTo(p.Context, p.Source.(*movies.Movie))
		},
	})

	personType.AddFieldConfig("actedIn", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(movieType))),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return r.ActedIn(p.Context, p.Source.(*movies.Person))
		},
	})

	genreType.AddFieldConfig("movies", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(movieType))),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return r.MoviesIn(p.Context, p.Source.(*movies.Genre))
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"movies": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(movieType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.Movies(p.Context)
				},
			},
			"movie": &graphql.Field{
				Type: movieType,
				Args: graphql.FieldConfigArgument{
					"movieId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					m, err := r.MovieByID(p.Context, p.Args["movieId"].(string))
					if err != nil || m == nil {
						return nil, err
					}

					return m, nil
				},
			},
			"people": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(personType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.People(p.Context)
				},
			},
			"person": &graphql.Field{
				Type: personType,
				Args: graphql.FieldConfigArgument{
					"personId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					pe, err := r.PersonByID(p.Context, p.Args["personId"].(string))
					if err != nil || pe == nil {
						return nil, err
					}

					return pe, nil
				},
			},
			"genres": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(genreType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.Genres(p.Context)
				},
			},
			"genre": &graphql.Field{
				Type: genreType,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					g, err := r.GenreByName(p.Context, p.Args["name"].(string))
					if err != nil || g == nil {
						return nil, err
					}

					return g, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}
