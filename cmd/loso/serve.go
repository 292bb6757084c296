package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aosen/loso/config"
	"github.com/aosen/loso/rpcserver"
)

// newServeCmd starts the JSON-over-HTTP segmentation server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run segmentation server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDefault()
			if err != nil {
				return err
			}
			backend, err := buildStore(cfg)
			if err != nil {
				return err
			}
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			svc := buildServiceFromConfig(cfg, backend).WithLogger(logger)
			logger.Info("starting segmentation service",
				zap.String("interface", cfg.XMLRPC.Interface), zap.Int("port", cfg.XMLRPC.Port))

			server := rpcserver.New(svc, logger)
			if err := server.Start(cfg.XMLRPC.Interface, cfg.XMLRPC.Port); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
}
