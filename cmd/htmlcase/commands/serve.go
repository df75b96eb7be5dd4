package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mrjoshuak/htmlcase/internal/config"
	"github.com/mrjoshuak/htmlcase/internal/logger"
	"github.com/mrjoshuak/htmlcase/internal/server"
	"github.com/mrjoshuak/htmlcase/internal/version"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transform endpoint over HTTP",
		Long: `Serve POST /transform along with GET / (liveness), GET /healthz and
GET /version.

The request body is JSON:

  {"transform": "uppercase", "html": "<p>Hello</p>"}

with optional "selector" (CSS) or "xpath" fields to target elements other
than paragraphs. Successful responses carry the transformed fragment as
text/html; failures return 400 with a plain text message.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, a.cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("max-body", "1MB", "maximum request body size (e.g., 512KB, 4MiB)")
	flags.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	flags.Duration("write-timeout", 10*time.Second, "HTTP write timeout")
	flags.Duration("shutdown-timeout", 5*time.Second, "grace period for in-flight requests on shutdown")
	flags.String("normalize", "none", "Unicode normalization of rewritten text: none, nfc, nfd, nfkc, nfkd")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	maxBody, err := cfg.Server.MaxBodyBytes()
	if err != nil {
		return err
	}
	norm, err := cfg.Transform.Normalization()
	if err != nil {
		return err
	}

	logger.Info("starting server",
		"version", version.String(),
		"addr", cfg.Server.Addr,
		"max_body", humanize.Bytes(uint64(maxBody)),
		"normalize", string(norm),
	)

	srv := server.New(server.Options{
		Addr:            cfg.Server.Addr,
		MaxBodySize:     maxBody,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Normalization:   norm,
	})
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
