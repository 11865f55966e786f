package gql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// request is the standard GraphQL-over-HTTP request body.
type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler serves the schema over HTTP: POST with a JSON body, or GET
// with a query parameter. The request context flows into every
// resolver, so closing the connection cancels in-flight store
// queries.
func Handler(schema graphql.Schema, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request

		switch r.Method {
		case http.MethodGet:
			query := r.URL.Query()
			req.Query = query.Get("query")
			req.OperationName = query.Get("operationName")

			if vars := query.Get("variables"); vars != "" {
				err := json.Unmarshal([]byte(vars), &req.Variables)
				if err != nil {
					http.Error(w, "invalid variables", http.StatusBadRequest)

					return
				}
			}
		case http.MethodPost:
			err := json.NewDecoder(r.Body).Decode(&req)
			if err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)

				return
			}
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

			return
		}

		if req.Query == "" {
			http.Error(w, "missing query", http.StatusBadRequest)

			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		if len(result.Errors) > 0 {
			log.Debug("graphql request finished with errors",
				zap.Any("errors", result.Errors))
		}

		w.Header().Set("Content-Type", "application/json")

		err := json.NewEncoder(w).Encode(result)
		if err != nil {
			log.Warn("failed to write response", zap.Error(err))
		}
	})
}
