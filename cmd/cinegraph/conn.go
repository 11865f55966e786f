package main

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/cinegraph/cinegraph"
)

var ErrNoConnectionURI = errors.New("no connection URI specified (use --uri or .cinegraph.yaml)")

// connectionFlags are shared by every command that talks to the store.
func connectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Aliases: []string{"s"},
			Usage:   "store backend to use (overrides config)",
		},
		&cli.StringFlag{
			Name:    "uri",
			Usage:   "store connection URI",
			Sources: cli.EnvVars("NEO4J_URI"),
		},
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "store username",
			Sources: cli.EnvVars("NEO4J_USER"),
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "store password",
			Sources: cli.EnvVars("NEO4J_PASSWORD"),
		},
	}
}

// resolveConfig merges flags with the nearest .cinegraph.yaml. Flags
// win; the config file fills whatever they left blank. A .env file in
// the working directory is folded into the environment first.
func resolveConfig(cmd *cli.Command) (string, cinegraph.StoreConfig, *cinegraph.Config, error) {
	// Optional .env bootstrap; absence is not an error.
	_ = godotenv.Load()

	storeName := cmd.String("store")
	cfg := cinegraph.StoreConfig{
		URI:      cmd.String("uri"),
		Username: cmd.String("username"),
		Password: cmd.String("password"),
	}

	fileCfg, err := cinegraph.LoadConfig(".")
	if err == nil {
		if storeName == "" {
			storeName = fileCfg.Store
		}

		if cfg.URI == "" {
			cfg = fileCfg.Connection
		}
	} else if !errors.Is(err, cinegraph.ErrConfigNotFound) {
		return "", cinegraph.StoreConfig{}, nil, err
	}

	if storeName == "" {
		storeName = "neo4j"
	}

	if cfg.URI == "" {
		return "", cinegraph.StoreConfig{}, nil, ErrNoConnectionURI
	}

	return storeName, cfg, fileCfg, nil
}

// openStore resolves configuration and connects.
func openStore(cmd *cli.Command) (cinegraph.Store, *cinegraph.Config, error) { //nolint:ireturn
	storeName, cfg, fileCfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	store, err := cinegraph.NewStore(storeName, cfg)
	if err != nil {
		return nil, nil, err
	}

	return store, fileCfg, nil
}
