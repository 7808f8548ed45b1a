// Serve command for the promptlib CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/promptlib/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Serve the prompt catalog as a JSON API. Every route except /health
requires HTTP basic auth with the auth.username and auth.password pair from
config.yaml (or PROMPTLIB_AUTH_USERNAME / PROMPTLIB_AUTH_PASSWORD).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cfg.usesDefaultCredentials() {
			logger.Warn("using the default admin credentials; set auth.username and auth.password")
		}

		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(cat, cfg.Server, cfg.Auth, logger)
		logger.Info("serving prompt catalog", zap.String("addr", srv.Addr()))
		if err := srv.Run(ctx); err != nil {
			return systemError(err)
		}
		return nil
	},
}

// cmdContext returns the command context, or Background when unset.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", server.DefaultHost, "listen host")
	serveCmd.Flags().IntVar(&servePort, "port", server.DefaultPort, "listen port")
}
