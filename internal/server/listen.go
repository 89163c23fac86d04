package server

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Config defines runtime parameters for the HTTP server
type Config struct {
	Address      string
	MaxBodySize  int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig listens on :8080
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		MaxBodySize:  DefaultMaxBodySize,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// ListenAndServe serves h until ctx is cancelled, then shuts down gracefully
func ListenAndServe(ctx context.Context, cfg Config, h *Handler) error {
	if cfg.Address == "" {
		cfg.Address = DefaultConfig().Address
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	srv := &fasthttp.Server{
		Handler:            h.ServeHTTP,
		Name:               "kpgo",
		MaxRequestBodySize: cfg.MaxBodySize,
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("server starting", zap.String("op", "server.listen"), zap.String("address", cfg.Address))
		errCh <- srv.ListenAndServe(cfg.Address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		h.logger.Info("server stopping", zap.String("op", "server.listen"))
		return srv.Shutdown()
	}
}
