package config

import (
	"path"
	"time"

	"github.com/modiphy/movie-chain-go/internal/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"

	CatalogBaseURLEnv  = "TMDB_BASE_URL"
	CatalogAPITokenEnv = "TMDB_API_TOKEN"
	CatalogTimeoutEnv  = "TMDB_REQUEST_TIMEOUT"
)

type CatalogConfiguration struct {
	BaseURL        string
	APIToken       string
	RequestTimeout time.Duration
}

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string

	Catalog CatalogConfiguration
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.MustGetInt(PortEnv)
	dbURL := env.MustGetString(DatabaseUrlEnv)

	rootPath := env.MustGetString(RootPathEnv)
	migrationsPath := path.Join(rootPath, "db", "migrations")

	catalog := CatalogConfiguration{
		BaseURL:        env.GetStringOrDefault(CatalogBaseURLEnv, "https://api.themoviedb.org/3"),
		APIToken:       env.MustGetString(CatalogAPITokenEnv),
		RequestTimeout: env.GetDurationOrDefault(CatalogTimeoutEnv, 10*time.Second),
	}

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: migrationsPath,
		Catalog:        catalog,
	}, nil
}
