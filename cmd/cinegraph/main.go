// Package main provides the cinegraph CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	// Register stores.
	_ "github.com/cinegraph/cinegraph/store/neo4j"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "cinegraph",
		Version: version,
		Usage:   "GraphQL API over a Neo4j movie graph",
		Commands: []*cli.Command{
			serveCommand(),
			pingCommand(),
			seedCommand(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
