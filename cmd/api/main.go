package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"healthcommunity/cmd/app"
	"healthcommunity/internal/config"
	handlers "healthcommunity/internal/handler"
)

var logger = loggo.GetLogger("healthcommunity.api")

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logConfig string

	cmd := &cobra.Command{
		Use:          "healthcommunity",
		Short:        "Health community API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// setting up config
			cfg := config.LoadConfig()
			if logConfig != "" {
				cfg.LogConfig = logConfig
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&logConfig, "log-config", "", "loggo levels, e.g. <root>=DEBUG (overrides LOG_CONFIG)")
	return cmd
}

func serve(cfg *config.Config) error {
	if err := loggo.ConfigureLoggers(cfg.LogConfig); err != nil {
		return errors.Annotatef(err, "configuring loggers with %q", cfg.LogConfig)
	}
	if cfg.JWTSecretKey == "" {
		return errors.NotValidf("empty JWT_SECRET_KEY")
	}

	application, err := app.New(cfg)
	if err != nil {
		return errors.Trace(err)
	}
	defer application.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		application.Metrics,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := handlers.NewHandlers(application.Services, application.DB, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           newRouter(h, application.Metrics, registry, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s (database %s)", server.Addr, cfg.DB.DbNAME)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Annotate(err, "http server")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Annotate(err, "shutting down http server")
	}
	return nil
}
