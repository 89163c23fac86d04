package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/kpgo/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over HTTP",
	Long: `Serve the calculators as a JSON API until interrupted.

Endpoints:
  GET  /healthz
  GET  /v1/policy
  POST /v1/national
  POST /v1/basic-pension
  POST /v1/shortfall
  POST /v1/compare
  POST /v1/report`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = env.logger.Sync() }()

		// Request logs are the point of a server; keep info level here.
		logger := env.logger
		if !env.settings.Debug {
			if l, err := zap.NewProduction(); err == nil {
				logger = l
				defer func() { _ = logger.Sync() }()
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := server.DefaultConfig()
		cfg.Address = env.settings.Addr
		if maxBody, _ := cmd.Flags().GetInt("max-body"); maxBody > 0 {
			cfg.MaxBodySize = maxBody
		}

		h := server.NewHandler(env.engine, logger, version)
		return server.ListenAndServe(ctx, cfg, h)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Int("max-body", server.DefaultMaxBodySize, "Maximum request body size in bytes")

	rootCmd.AddCommand(serveCmd)
}
