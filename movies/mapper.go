package movies

import (
	"errors"
	"fmt"

	"github.com/cinegraph/cinegraph"
)

// ErrUnexpectedShape is returned when a record value has a type the
// mapper cannot use for the target field.
var ErrUnexpectedShape = errors.New("unexpected value shape")

// The mappers below are deliberately lenient: required string fields
// fall back to "" when the column is absent, optional fields stay nil.
// Only a present-but-mistyped value fails, and that failure never
// leaves the resolver layer — collection resolvers drop the row,
// single-row lookups treat it as not found.

func movieFromRecord(rec cinegraph.Record) (*Movie, error) {
	id, err := stringField(rec, "movieId")
	if err != nil {
		return nil, err
	}

	title, err := stringField(rec, "title")
	if err != nil {
		return nil, err
	}

	released, err := optIntField(rec, "released")
	if err != nil {
		return nil, err
	}

	tagline, err := optStringField(rec, "tagline")
	if err != nil {
		return nil, err
	}

	return &Movie{MovieID: id, Title: title, Released: released, Tagline: tagline}, nil
}

func personFromRecord(rec cinegraph.Record) (*Person, error) {
	id, err := stringField(rec, "personId")
	if err != nil {
		return nil, err
	}

	name, err := stringField(rec, "name")
	if err != nil {
		return nil, err
	}

	born, err := optIntField(rec, "born")
	if err != nil {
		return nil, err
	}

	return &Person{PersonID: id, Name: name, Born: born}, nil
}

func genreFromRecord(rec cinegraph.Record) (*Genre, error) {
	name, err := stringField(rec, "name")
	if err != nil {
		return nil, err
	}

	return &Genre{Name: name}, nil
}

// stringField reads a required string column. Absent or nil values
// map to "" rather than failing.
func stringField(rec cinegraph.Record, key string) (string, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return "", nil
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T", ErrUnexpectedShape, key, v)
	}

	return s, nil
}

// optStringField reads an optional string column. Absence stays nil.
func optStringField(rec cinegraph.Record, key string) (*string, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil, nil
	}

	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T", ErrUnexpectedShape, key, v)
	}

	return &s, nil
}

// optIntField reads an optional integer column. Absence stays nil,
// never 0.
func optIntField(rec cinegraph.Record, key string) (*int64, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil, nil
	}

	n, err := intValue(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	return &n, nil
}

// intValue normalizes the integer types a store may hand back.
func intValue(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: %T is not an integer", ErrUnexpectedShape, v)
	}
}
