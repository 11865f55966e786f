package movies

// One Cypher query per lookup or relationship field. Every caller
// input is bound as a named parameter; nothing is spliced into the
// query text.
//
// The relationship traversals match movies by title, not by id. When
// two Movie nodes share a title the result is the union over all
// matching nodes — a known ambiguity preserved from the query design.
const (
	queryMovies = `MATCH (m:Movie)
RETURN elementId(m) AS movieId, m.title AS title, m.released AS released, m.tagline AS tagline`

	queryMovieByID = `MATCH (m:Movie) WHERE elementId(m) = $movieId
RETURN elementId(m) AS movieId, m.title AS title, m.released AS released, m.tagline AS tagline`

	queryPeople = `MATCH (p:Person)
RETURN elementId(p) AS personId, p.name AS name, p.born AS born`

	queryPersonByID = `MATCH (p:Person) WHERE elementId(p) = $personId
RETURN elementId(p) AS personId, p.name AS name, p.born AS born`

	queryGenres = `MATCH (g:Genre)
RETURN g.name AS name`

	queryGenreByName = `MATCH (g:Genre {name: $name})
RETURN g.name AS name`

	queryMovieGenres = `MATCH (m:Movie {title: $title})-[:IN_GENRE]->(g:Genre)
RETURN g.name AS name`

	queryMovieActors = `MATCH (p:Person)-[:ACTED_IN]->(m:Movie {title: $title})
RETURN elementId(p) AS personId, p.name AS name, p.born AS born`

	queryGenreMovies = `MATCH (g:Genre {name: $name})<-[:IN_GENRE]-(m:Movie)
RETURN elementId(m) AS movieId, m.title AS title, m.released AS released, m.tagline AS tagline`

	queryPersonActedIn = `MATCH (p:Person {name: $name})-[:ACTED_IN]->(m:Movie)
RETURN elementId(m) AS movieId, m.title AS title, m.released AS released, m.tagline AS tagline`
)
