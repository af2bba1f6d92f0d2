package config

import (
	"errors"

	"github.com/ilyakaznacheev/cleanenv"

	"document-service/internal/MinIO"
	"document-service/pkg/database/postgres"
	"document-service/pkg/database/redis"
)

type Config struct {
	HTTPPort     string `env:"HTTP_PORT" env-default:"8080"`
	AuthAPIURL   string `env:"AUTH_API_URL" env-default:"http://localhost:3001"`
	JWTSecret    string `env:"JWT_TOKEN"`
	TreeCacheTTL int    `env:"TREE_CACHE_TTL_SECONDS" env-default:"60"`
	Postgres     postgres.Config
	Redis        redis.RedisConfig
	MinIO        MinIO.Config
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(".env", &cfg); err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, errors.New("cannot read service config")
		}
	}
	return &cfg, nil
}
