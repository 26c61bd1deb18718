package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ragchat/internal/httpapi"
)

func serveCMD(cfgPath *string) *cobra.Command {
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			gin.SetMode(gin.ReleaseMode)
			router := httpapi.NewRouter(httpapi.NewController(a.service, a.logger), a.metrics, a.logger)
			srv := &http.Server{
				Addr:         addr,
				Handler:      router,
				ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeoutSecs) * time.Second,
				WriteTimeout: time.Duration(a.cfg.Server.WriteTimeoutSecs) * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", zap.String("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return serve
}
