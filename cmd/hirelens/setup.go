package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mutlukurt/hirelens/internal/config"
	"github.com/mutlukurt/hirelens/internal/db"
	"github.com/mutlukurt/hirelens/internal/logger"
	"github.com/mutlukurt/hirelens/internal/pipeline"
	"github.com/mutlukurt/hirelens/internal/skills"
	"github.com/mutlukurt/hirelens/internal/store"
)

var (
	appConfig *config.Config
	configErr error
)

func initConfig() {
	appConfig, configErr = config.Load(viper.GetViper(), cfgFile)
}

// loadConfig returns the validated configuration read during initialization
func loadConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	if appConfig == nil {
		defaults := config.Defaults()
		appConfig = &defaults
	}
	if err := appConfig.Validate(); err != nil {
		return nil, err
	}
	return appConfig, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// openStore connects to the configured backend
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Store != config.StorePostgres {
		return store.NewMemory(), nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}

// loadDictionary returns the dictionary file named by the config, or the built-in one
func loadDictionary(cfg *config.Config) (*skills.Dictionary, error) {
	if cfg.DictionaryPath == "" {
		return skills.Default(), nil
	}
	return skills.LoadFile(cfg.DictionaryPath)
}

// newService wires the store, dictionary and logger into a pipeline service. A dictionary
// previously saved to the store replaces the file or built-in one.
func newService(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pipeline.Service, error) {
	dict, err := loadDictionary(cfg)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := pipeline.NewService(st, dict, cfg.MaxUploadBytes, log)
	if err := svc.LoadDictionary(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}
	return svc, nil
}

// commandService is the config, logger and service setup shared by the store-backed commands
func commandService(ctx context.Context) (*pipeline.Service, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc, err := newService(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return svc, log, nil
}
