package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph/gql"
	"github.com/cinegraph/cinegraph/movies"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the GraphQL API over HTTP",
		Flags: append(connectionFlags(),
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				Value:   ":8080",
				Sources: cli.EnvVars("CINEGRAPH_ADDR"),
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "GraphQL endpoint path",
				Value: "/graphql",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "log raw store records and resolver diagnostics",
			},
		),
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}

	defer func() { _ = log.Sync() }()

	store, fileCfg, err := openStore(cmd)
	if err != nil {
		return err
	}

	defer func() { _ = store.Close() }()

	resolver := movies.New(store, movies.WithLogger(log))

	schema, err := gql.NewSchema(resolver)
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}

	addr := cmd.String("addr")
	path := cmd.String("path")

	if fileCfg != nil {
		if addr == ":8080" && fileCfg.Server.Addr != "" {
			addr = fileCfg.Server.Addr
		}

		if path == "/graphql" && fileCfg.Server.Path != "" {
			path = fileCfg.Server.Path
		}
	}

	mux := http.NewServeMux()
	mux.Handle(path, gql.Handler(schema, log))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		log.Info("serving GraphQL",
			zap.String("addr", addr),
			zap.String("path", path),
			zap.String("store", store.Name()))

		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
