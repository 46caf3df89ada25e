package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-numerology/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr     string
		basePath string
		mode     string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form and the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("base-path") {
				cfg.Server.BasePath = basePath
			}
			if cmd.Flags().Changed("mode") {
				cfg.Numerology.Mode = mode
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, cfg, a.logger)
			if err != nil {
				return err
			}
			a.logger.Info("listening", zap.String("addr", cfg.Server.Addr))
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&basePath, "base-path", "/", "path prefix for every route")
	cmd.Flags().StringVar(&mode, "mode", "calendar", "default report (calendar, yearly, missing)")
	return cmd
}
