package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mutlukurt/hirelens/internal/config"
	"github.com/mutlukurt/hirelens/internal/server"
	"github.com/mutlukurt/hirelens/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing candidates, job postings, matches and the skill dictionary.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

// rateLimitConfig converts the configured limits into the limiter's form
func rateLimitConfig(cfg config.RateLimitConfig) *ratelimit.Config {
	rl := ratelimit.DefaultConfig(cfg.RPS, cfg.Burst)
	rl.Enabled = cfg.Enabled
	rl.Whitelist = ratelimit.ParseIPList(cfg.Whitelist)
	rl.Blacklist = ratelimit.ParseIPList(cfg.Blacklist)
	return rl
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, log, err := commandService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() { _ = svc.Store.Close() }()

	cfg, _ := loadConfig()
	log.Info("starting server",
		zap.String("store", cfg.Store),
		zap.Int("skills", svc.Dictionary.Len()),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)

	srv := server.New(server.Config{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		RateLimit:      rateLimitConfig(cfg.RateLimit),
	}, svc, log)

	return srv.Start(ctx)
}

// background returns cmd's context, or a fresh one when the command runs outside Execute
func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
