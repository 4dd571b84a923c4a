package cmd

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tknbr/ocivet/internal/envstore"
	"github.com/tknbr/ocivet/internal/logging"
	"github.com/tknbr/ocivet/internal/schema"
	"github.com/tknbr/ocivet/internal/ui"
)

// appDeps bundles the collaborators every subcommand needs: one
// variable-store snapshot, one opened template store, one console,
// one logger. Built once per invocation.
type appDeps struct {
	log     *zap.SugaredLogger
	console *ui.Console
	env     *envstore.Store
	store   *schema.Store
}

func buildDeps() (*appDeps, error) {
	log := logging.New(viper.GetBool("debug"))
	console := ui.NewConsole(nil)

	env, err := envstore.SnapshotWithDotenv(viper.GetString("env_file"))
	if err != nil {
		return nil, err
	}

	dir, err := templatesDir()
	if err != nil {
		return nil, err
	}
	store, err := schema.Open(dir, log)
	if err != nil {
		return nil, err
	}

	return &appDeps{log: log, console: console, env: env, store: store}, nil
}
