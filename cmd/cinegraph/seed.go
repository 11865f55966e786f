package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cinegraph/cinegraph"
)

// seedStatements builds the sample dataset: two Matrix movies, their
// two leads, and the Action genre wiring.
var seedStatements = []string{
	`CREATE (m1:Movie {title: 'The Matrix', released: 1999, tagline: 'Welcome to the Real World'})
CREATE (m2:Movie {title: 'The Matrix Reloaded', released: 2003})
CREATE (p1:Person {name: 'Keanu Reeves', born: 1964})
CREATE (p2:Person {name: 'Laurence Fishburne', born: 1961})
CREATE (g:Genre {name: 'Action'})
CREATE (p1)-[:ACTED_IN]->(m1)
CREATE (p1)-[:ACTED_IN]->(m2)
CREATE (p2)-[:ACTED_IN]->(m1)
CREATE (p2)-[:ACTED_IN]->(m2)
CREATE (m1)-[:IN_GENRE]->(g)
CREATE (m2)-[:IN_GENRE]->(g)`,
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load a small sample dataset into an empty store",
		Flags: append(connectionFlags(),
			&cli.BoolFlag{
				Name:  "force",
				Usage: "seed even if the store already has movies",
			},
		),
		Action: runSeed,
	}
}

func runSeed(ctx context.Context, cmd *cli.Command) error {
	styles := newStyles()

	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}

	defer func() { _ = store.Close() }()

	writer, ok := store.(cinegraph.Writer)
	if !ok {
		return fmt.Errorf("%w: %s", cinegraph.ErrNoWriteSupport, store.Name())
	}

	rows, err := store.Execute(ctx, "MATCH (m:Movie) RETURN count(m) AS count", nil)
	if err != nil {
		return fmt.Errorf("counting movies: %w", err)
	}

	if !cmd.Bool("force") && len(rows) == 1 {
		if count, ok := rows[0]["count"].(int64); ok && count > 0 {
			fmt.Println(styles.Dim.Render(fmt.Sprintf("found %d existing movies, nothing to do", count)))

			return nil
		}
	}

	for _, stmt := range seedStatements {
		_, err := writer.ExecuteWrite(ctx, stmt, nil)
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}

	fmt.Println(styles.Pass.Render("✓") + " sample dataset created")

	return nil
}
