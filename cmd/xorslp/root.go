// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/xorslp/config"
	"github.com/katalvlaran/xorslp/logging"
	"github.com/katalvlaran/xorslp/service"
	"github.com/katalvlaran/xorslp/store"
	"github.com/katalvlaran/xorslp/synthesis"
)

// app holds state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "xorslp",
		Short:         "XOR-count synthesis for binary matrices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default $"+config.EnvPath+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(a),
		newSynthCmd(a),
		newInvertCmd(a),
		newImportCmd(a),
		newBulkInvertCmd(a),
	)

	return root
}

// init loads configuration and builds the logger. Logs go to stderr so
// command output on stdout stays machine-readable.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "xorslp",
	})
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	slog.SetDefault(logger)

	return nil
}

// newEngine builds an engine from the config; extra options override it.
func (a *app) newEngine(extra ...synthesis.Option) (*synthesis.Engine, error) {
	opts := append(a.cfg.EngineOptions(), synthesis.WithLogger(a.logger))
	return synthesis.NewEngine(append(opts, extra...)...)
}

// openCatalog opens the configured store and an engine. The returned
// closer releases both.
func (a *app) openCatalog() (*service.Catalog, func(), error) {
	sc := a.cfg.StoreConfig()
	sc.Logger = a.logger
	s, err := store.Open(sc)
	if err != nil {
		return nil, nil, err
	}
	e, err := a.newEngine()
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	c, err := service.NewCatalog(s, e,
		service.WithLogger(a.logger),
		service.WithProcessImmediately(a.cfg.Engine.ProcessImmediately),
	)
	if err != nil {
		e.Close()
		_ = s.Close()
		return nil, nil, err
	}
	closer := func() {
		e.Close()
		if err := s.Close(); err != nil {
			a.logger.Error("closing store", "error", err)
		}
	}

	return c, closer, nil
}
