package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"task-pwa/internal/config"
	"task-pwa/internal/repository"
)

type app struct {
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Load()}

	cmd := &cobra.Command{
		Use:          "taskpwa",
		Short:        "Task list web application",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&a.cfg.DatabaseURL, "db", a.cfg.DatabaseURL, "SQLite database path or DSN (env DATABASE_URL)")

	cmd.AddCommand(newServeCmd(a), newCategoryCmd(a), newTaskCmd(a))
	return cmd
}

// openDB opens the configured database and returns a close func for it.
func (a *app) openDB() (*gorm.DB, func(), error) {
	db, err := repository.NewDB(a.cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("db: %w", err)
	}
	closeFn := func() {}
	if sqlDB, err := db.DB(); err == nil {
		closeFn = func() { _ = sqlDB.Close() }
	}
	return db, closeFn, nil
}
