// ABOUTME: Root command wiring config, logging, storage and the social engine.
// ABOUTME: Subcommands share the engine opened in PersistentPreRunE.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/harper/notely/internal/config"
	"github.com/harper/notely/internal/db"
	"github.com/harper/notely/internal/kv"
	"github.com/harper/notely/internal/logging"
	"github.com/harper/notely/internal/orm"
	"github.com/harper/notely/internal/social"
	"github.com/harper/notely/internal/store"
	"github.com/harper/notely/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"
)

var (
	cfg    *config.Config
	log    *logrus.Logger
	st     store.Store
	engine *social.Engine
)

var rootCmd = &cobra.Command{
	Use:   "notely",
	Short: "Share notes and talk about them",
	Long: `notely keeps notes and the social activity around them: follows,
likes, bookmarks, views, threaded comments and notifications.

Data lives in SQLite by default. Badger and Postgres are available
through the config file or --backend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["skipStore"] == "true" {
			return nil
		}
		return setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().String("backend", "", "storage backend: sqlite, badger or postgres")
	rootCmd.PersistentFlags().String("as", "", "acting user ID (default $NOTELY_USER)")
	cobra.OnFinalize(teardown)
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), ui.Error(err.Error()))
	}
	return err
}

func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	backend, _ := cmd.Flags().GetString("backend")

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err = logging.New(cfg.Log)
	if err != nil {
		return err
	}

	opened, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	st = opened

	engine = social.New(st,
		social.WithLogger(log.WithField("backend", cfg.Backend)),
		social.WithMaxRetries(cfg.Engine.MaxRetries),
	)
	return nil
}

func openStore(cfg *config.Config, log *logrus.Logger) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendBadger:
		opts := []kv.Option{kv.WithLogger(log.WithField("component", "badger"))}
		if cfg.Badger.InMemory {
			opts = append(opts, kv.WithInMemory())
		}
		return kv.Open(cfg.Badger.Dir, opts...)
	case config.BackendPostgres:
		level := gormlogger.Silent
		if log.IsLevelEnabled(logrus.DebugLevel) {
			level = gormlogger.Info
		}
		return orm.Open(cfg.Postgres.DSN, orm.WithLogger(log, level))
	default:
		return db.OpenStore(cfg.SQLite.Path)
	}
}

func teardown() {
	if st == nil {
		return
	}
	if err := st.Close(); err != nil && log != nil {
		log.WithError(err).Warn("failed to close store")
	}
	st = nil
}

// actor returns the user performing the command.
func actor(cmd *cobra.Command) (string, error) {
	id := actingUser(cmd)
	if id == "" {
		return "", errors.New("no acting user: pass --as or set NOTELY_USER")
	}
	return id, nil
}

// actingUser is like actor but returns "" when nobody is acting.
func actingUser(cmd *cobra.Command) string {
	id, _ := cmd.Flags().GetString("as")
	if id == "" {
		id = os.Getenv("NOTELY_USER")
	}
	return id
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
