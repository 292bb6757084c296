package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aosen/loso/config"
	"github.com/aosen/loso/service"
	"github.com/aosen/loso/store"
)

// buildStore constructs the Store backend named by cfg.Store.Backend.
// Any backend satisfying the capability interface may be plugged in
// here.
func buildStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(store.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		}), nil
	case "localkv":
		path := cfg.Store.Path
		if path == "" {
			path = "loso.kv"
		}
		return store.OpenLocalKV(path)
	case "mongo":
		return store.DialMongo(cfg.Store.URL, cfg.Store.DB, cfg.Store.Coll)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// buildService loads the config at config.Path(), opens its
// configured store backend, and returns a ready-to-use Service wired
// with a production zap logger (mirroring scripts.py's
// `logging.basicConfig` call in every Command.run()).
func buildService() (*service.Service, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	backend, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return buildServiceFromConfig(cfg, backend).WithLogger(logger), nil
}

// buildServiceFromConfig builds a Service over an already-opened backend,
// letting callers (such as newServeCmd) attach their own logger.
func buildServiceFromConfig(cfg *config.Config, backend store.Store) *service.Service {
	return service.New(backend, cfg.Store.Prefix, cfg.Lexicon.NGram)
}

// splitCategories turns a comma-separated --category flag value into a
// slice, or nil when unset (so the service falls back to every
// registered category), matching scripts.py's
// `self.category.split(',')`.
func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
