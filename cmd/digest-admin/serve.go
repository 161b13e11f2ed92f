package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"message-digest-admin/internal/form"
	httpapi "message-digest-admin/internal/http"
	"message-digest-admin/internal/metatag"
	"message-digest-admin/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.Digest.FormSecret == "" {
		a.logger.Warn("FORM_SECRET not set, form tokens will not survive a restart")
	}
	tokens, err := form.NewTokens(a.cfg.Digest.FormSecret)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(a.logger)
	router.RegisterHealthRoutes()
	router.RegisterDigestAdminRoutes(httpapi.NewDigestAdminHandler(a.form, tokens, form.Identity{}, a.logger))
	router.RegisterMetatagRoutes(httpapi.NewMetatagHandler(metatag.Default(), a.logger))

	srv := service.NewServer(a.cfg.HTTP.Addr, router, a.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		a.logger.Warn("HTTP server shutdown failed", zap.Error(err))
	}
	return runErr
}
