package neo4j

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/cinegraph/cinegraph"
)

// flattenRecord converts a Neo4j record into a flat Record. Nodes and
// relationships are expanded so their properties are accessible as
// "alias.property" (e.g., m.title); scalar columns keep their key.
func flattenRecord(keys []string, values []any) cinegraph.Record {
	result := make(cinegraph.Record)

	for i, key := range keys {
		flattenValue(result, key, values[i])
	}

	return result
}

func flattenValue(result cinegraph.Record, key string, value any) {
	switch v := value.(type) {
	case dbtype.Node:
		for prop, propVal := range v.Props {
			result[key+"."+prop] = propVal
		}

		result[key+".labels"] = v.Labels
		result[key+".elementId"] = v.ElementId

	case dbtype.Relationship:
		for prop, propVal := range v.Props {
			result[key+"."+prop] = propVal
		}

		result[key+".type"] = v.Type
		result[key+".elementId"] = v.ElementId

	case map[string]any:
		for k, val := range v {
			result[key+"."+k] = val
		}

	default:
		// Primitives and lists: store directly
		result[key] = v
	}
}
