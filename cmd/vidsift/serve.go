package main

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vidsift/vidsift/internal/config"
	"github.com/vidsift/vidsift/internal/server"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analyze/filter service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			detector, err := buildDetector(0)
			if err != nil {
				return err
			}
			srv := server.New(detector, server.Options{
				CacheAddr: cfg.Server.CacheURL,
				CacheTTL:  cfg.CacheTTL(),
			})

			log.Printf("[serve] listening on %s (threshold %.2f)", addr, cfg.SpamThreshold())
			return http.ListenAndServe(addr, srv.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
