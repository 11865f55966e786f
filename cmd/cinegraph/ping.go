package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

var errPingMismatch = errors.New("connectivity probe returned unexpected result")

func pingCommand() *cli.Command {
	return &cli.Command{
		Name:   "ping",
		Usage:  "Check store connectivity",
		Flags:  connectionFlags(),
		Action: runPing,
	}
}

func runPing(ctx context.Context, cmd *cli.Command) error {
	styles := newStyles()

	store, _, err := openStore(cmd)
	if err != nil {
		fmt.Println(styles.Fail.Render("✗") + " connection failed")

		return err
	}

	defer func() { _ = store.Close() }()

	rows, err := store.Execute(ctx, "RETURN 1 AS test", nil)
	if err != nil {
		fmt.Println(styles.Fail.Render("✗") + " probe query failed")

		return err
	}

	if len(rows) != 1 || rows[0]["test"] != int64(1) {
		return errPingMismatch
	}

	fmt.Println(styles.Pass.Render("✓") + " connected to " + store.Name())

	// Database listing is informational; older servers may not
	// support the command.
	dbRows, err := store.Execute(ctx, "SHOW DATABASES", nil)
	if err != nil {
		fmt.Println(styles.Dim.Render("  (database listing unavailable)"))

		return nil
	}

	for _, row := range dbRows {
		name, ok := row["name"].(string)
		if !ok {
			continue
		}

		fmt.Println(styles.Dim.Render("  • " + name))
	}

	return nil
}
