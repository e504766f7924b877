package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"resumescore/internal/config"
	"resumescore/internal/engine"
	"resumescore/internal/errors"
	"resumescore/internal/observability"
	"resumescore/internal/server"
	"resumescore/internal/store"
)

func newServeCmd() *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start an HTTP server exposing the resume engine and the resume store.

Available endpoints:
- POST /score, /validate, /suggestions, /export: operate on a posted resume
- POST /resumes, GET|PUT|DELETE /resumes/{id}: store and manage resumes
- GET /resumes/{id}/score: score a stored resume
- GET /health, /stats: health check and runtime statistics

API keys come from server.api_keys or Vault (vault.secrets.api_keys).
Prometheus metrics are served on a separate port when enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := dependencies(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return runServe(cmd.Context(), cmd, cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from config)")
	cmd.Flags().StringVar(&host, "host", "", "Host to bind to (default from config)")
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *errors.Logger) error {
	if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
		return err
	}

	obs, err := newObservability(cfg)
	if err != nil {
		return err
	}
	defer shutdownObservability(obs, logger)

	if cfg.Observability.PrometheusEnabled {
		err := observability.StartPrometheusServer(ctx, obs.PrometheusHandler(),
			cfg.Observability.PrometheusPort, cfg.Observability.PrometheusPath, logger)
		if err != nil {
			return err
		}
	}

	st, err := store.New(ctx, cfg.Store, obs, logger)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	srv := server.NewServer(server.ServerConfig{
		Version:       Version,
		HTTP:          cfg.Server,
		Engine:        engine.NewService(cfg.App, obs, logger),
		Store:         st,
		Observability: obs,
	}, logger)
	srv.Out = cmd.OutOrStdout()

	if err := startKeyWatcher(ctx, cfg, srv, logger); err != nil {
		return err
	}

	return srv.Start(ctx)
}

// startKeyWatcher rotates API keys from Vault when polling is configured.
func startKeyWatcher(ctx context.Context, cfg *config.Config, srv *server.Server, logger *errors.Logger) error {
	vc := cfg.Vault
	if !vc.Enabled || vc.PollInterval <= 0 || vc.Secrets.APIKeys == "" {
		return nil
	}
	client, err := config.NewVaultClient(vc, logger)
	if err != nil {
		return err
	}
	srv.KeyWatcher = server.NewVaultWatcher(client, vc.Secrets.APIKeys, vc.PollInterval, srv.SetAPIKeys, logger)
	go srv.KeyWatcher.Run(ctx)
	return nil
}

func newObservability(cfg *config.Config) (*observability.Manager, error) {
	obsCfg := cfg.Observability
	if obsCfg.ServiceVersion == "" {
		obsCfg.ServiceVersion = Version
	}
	obs, err := observability.NewManager(obsCfg)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "failed to initialize observability", err)
	}
	return obs, nil
}

func shutdownObservability(obs *observability.Manager, logger *errors.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := obs.Shutdown(ctx); err != nil {
		logger.LogError(err, "Failed to shutdown observability")
	}
}

func closeStore(st store.Store, logger *errors.Logger) {
	if c, ok := st.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.LogError(err, "Failed to close resume store")
		}
	}
}
