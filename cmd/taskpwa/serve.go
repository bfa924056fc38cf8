package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"task-pwa/internal/repository"
	"task-pwa/internal/service"
	"task-pwa/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.cfg.HTTPAddr, "addr", a.cfg.HTTPAddr, "listen address (env HTTP_ADDR)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	db, closeDB, err := a.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	taskSvc := service.NewTaskService(repository.NewTaskRepository(db))

	server, err := web.NewServer(taskSvc, a.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}

	httpServer := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[info] listening on %s", a.cfg.HTTPAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("Shutdown complete.")
	return nil
}
