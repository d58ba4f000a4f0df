package cli

import (
	"fmt"

	"jobscope/internal/ai"
	"jobscope/internal/analysis"
	"jobscope/internal/auth"
	"jobscope/internal/refdata"
	"jobscope/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server for opportunity analysis",
	Long: `Start an HTTP server that provides REST API endpoints for job
opportunity analysis.

Available endpoints:
- POST /analyze: Run a full opportunity analysis (requires API key or session)
- POST /login: Obtain a session token
- POST /logout: Invalidate a session token
- GET /health: Health check endpoint
- GET /stats: Server statistics, rate limiting, and session info

TLS Configuration:
- Use --cert-file and --key-file for TLS certificates`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("server.tls.certfile", "cert-file")
	bindFlag("server.tls.keyfile", "key-file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	aiService, err := ai.NewService(&cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	store := refdata.NewStore()
	var watcher *refdata.Watcher
	if cfg.RefData.OverridesFile != "" {
		if cfg.RefData.Watch {
			// The watcher performs the initial load on Start
			watcher = refdata.NewWatcher(store, cfg.RefData.OverridesFile,
				cfg.RefData.DebounceDelay, logger)
		} else if err := store.LoadOverrides(cfg.RefData.OverridesFile); err != nil {
			return fmt.Errorf("failed to load reference data overrides: %w", err)
		}
	}

	analysisService := analysis.NewService(aiService.Provider, store, logger)
	sessionManager := auth.NewManager(cfg.Auth.Users, cfg.Auth.SessionTTL)

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	deps := server.Dependencies{
		Analyzer:   analysisService,
		AIService:  aiService,
		Auth:       sessionManager,
		Store:      store,
		RefWatcher: watcher,
	}
	return server.NewServer(cfg, serverCfg, deps, logger).Start()
}
