package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/palletpack/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the packing HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.settings()
			if err != nil {
				return err
			}
			cfg := server.DefaultConfig()
			cfg.Addr = c.config.ServerAddr
			if c.v.IsSet("addr") {
				cfg.Addr = c.v.GetString("addr")
			}
			cfg.Defaults = settings
			cfg.Timeout = c.v.GetDuration("timeout")
			cfg.MaxShapes = c.v.GetInt("max-shapes")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg, c.logger).Run(ctx)
		},
	}
	fs := cmd.Flags()
	fs.String("addr", ":8080", "listen address")
	fs.Duration("timeout", 30*time.Second, "per-request packing time limit")
	fs.Int("max-shapes", 10000, "maximum shapes per request")
	addSettingsFlags(fs)
	return cmd
}
