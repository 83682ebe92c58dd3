package main

import (
	"fmt"
	"os"

	"timetrack/internal/api"
	"timetrack/internal/cli"
	"timetrack/internal/config"
	"timetrack/internal/errors"
	"timetrack/internal/store"
	"timetrack/internal/store/archive"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The API is built after persistent flags are applied, so store paths
	// given on the command line take effect.
	factory := func(cfg *config.Config) api.API {
		fileStore := store.New(cfg.StorePath())
		openArchive := func() (archive.Repository, error) {
			return archive.Open(cfg.ArchivePath())
		}
		return api.New(fileStore, openArchive, cfg)
	}

	root := cli.NewRootCommand(cfg, factory)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
